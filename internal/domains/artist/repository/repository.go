package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/artist/model"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
)

type Artist interface {
	Insert(ctx context.Context, model model.Artist) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Artist, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Artist, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Artist]
}

func New(db *postgres.Connection, otel otel.Otel) Artist {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Artist](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
