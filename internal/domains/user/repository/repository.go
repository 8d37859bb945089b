package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/user/model"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gRepo "salon/shared/repository"
	"time"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// GetByEmail returns the zero user when no account uses email.
	GetByEmail(ctx context.Context, email string) (model.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func byEmail(email string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldEmail, model.NormalizeEmail(email), model.TableName)
}

func (repo *repositoryImpl) GetByEmail(ctx context.Context, email string) (user model.User, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.GetByEmail")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if user, err = repo.Get(ctx, byEmail(email)); err != nil {
		return user, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (repo *repositoryImpl) EmailTaken(ctx context.Context, email string) (taken bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.EmailTaken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if taken, err = repo.Exist(ctx, byEmail(email)); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return taken, nil
}

// TouchLastLogin stamps a successful sign-in without touching the audit columns.
func (repo *repositoryImpl) TouchLastLogin(ctx context.Context, id string, at time.Time) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.TouchLastLogin")
	defer scope.End()
	defer scope.TraceIfError(&err)

	fields := map[string]any{model.FieldLastLogin: at}

	if err = repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return fmt.Errorf("failed to record last login: %w", err)
	}

	return nil
}
