package service

//go:generate go run go.uber.org/mock/mockgen -source=./deps.go -destination=../mocks/deps_mock.go -package=mocks

import (
	"context"
	statusModel "salon/internal/domains/status/model"
	"salon/internal/pipeline"
)

type Artists interface {
	FetchArtists(ctx context.Context, ids []int64) ([]pipeline.Artist, error)
}

type Statuses interface {
	Normalizer(ctx context.Context) (*statusModel.Normalizer, error)
}
