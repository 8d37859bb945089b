package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/internal/domains/booking/model"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/logger"
	gRepo "salon/shared/repository"
	"slices"
	"strings"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CreateOrder(ctx context.Context, items []model.Booking) (bookingNo int64, err error)
	UpdateStatus(ctx context.Context, id int64, from string, fields map[string]any) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateOrder allocates a new booking number and inserts every line item under it in one
// transaction.
func (repo *repositoryImpl) CreateOrder(ctx context.Context, items []model.Booking) (bookingNo int64, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	query := fmt.Sprintf("SELECT nextval('%s')", model.SequenceBookingNo)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &bookingNo, query); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to allocate booking number: %w", err)
	}

	for i := range items {
		items[i].BookingNo = bookingNo
	}

	if err = repo.InsertBulkTx(ctx, tx, items); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to commit order (%s): %w", model.EntityName, err)
	}

	return bookingNo, nil
}

// UpdateStatus applies fields only while the booking still has status from. It reports false when
// the row was changed concurrently or no longer exists.
func (repo *repositoryImpl) UpdateStatus(ctx context.Context, id int64, from string, fields map[string]any) (updated bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}

	slices.Sort(columns)

	args := make(map[string]any, len(fields)+2)
	set := make([]string, len(columns))

	for i, column := range columns {
		set[i] = fmt.Sprintf("%s = :%s", column, column)
		args[column] = fields[column]
	}

	args["where_id"] = id
	args["where_status"] = from

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = :where_id AND %s = :where_status",
		model.TableName, strings.Join(set, ", "), model.FieldID, model.FieldStatus)

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to update status (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}
