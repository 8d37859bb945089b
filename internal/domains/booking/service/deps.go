package service

//go:generate go run go.uber.org/mock/mockgen -source=./deps.go -destination=../mocks/deps_mock.go -package=mocks

import (
	"context"
	artistModel "salon/internal/domains/artist/model"
	artistDto "salon/internal/domains/artist/model/dto"
	statusModel "salon/internal/domains/status/model"
	"salon/internal/pipeline"
)

// Artists is the part of the artist domain bookings depend on.
type Artists interface {
	FetchArtists(ctx context.Context, ids []int64) ([]pipeline.Artist, error)
	Get(ctx context.Context, id int64) (artistDto.ArtistResponse, error)
	GetByUserID(ctx context.Context, userID string) (artistModel.Artist, error)
}

// Statuses supplies the status vocabulary.
type Statuses interface {
	Normalizer(ctx context.Context) (*statusModel.Normalizer, error)
}
