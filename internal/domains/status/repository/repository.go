package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/status/model"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
)

type Status interface {
	Insert(ctx context.Context, model model.StatusOption) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.StatusOption, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.StatusOption, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.StatusOption]
}

func New(db *postgres.Connection, otel otel.Otel) Status {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.StatusOption](model.EntityName, model.TableName, model.FieldStatusCode, db, otel),
	}
}
