package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"salon/infras/otel"
	"salon/infras/postgres"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/logger"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	argLimit  = "page_limit"
	argOffset = "page_offset"
)

var errRequiredFilter = errors.New("required filter")

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Repository implements the CRUD statements every table shares. Columns come from the `db` tags of
// T, including embedded structs; a field tagged `insert:"false"` is selected but never inserted.
type Repository[T any] struct {
	db      *postgres.Connection
	otel    otel.Otel
	table   string
	entity  string
	primary string
	columns []string
	insert  []string
}

func NewRepository[T any](entity, table, primary string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insert := collectColumns(reflect.TypeOf(zero))

	return Repository[T]{
		db:      db,
		otel:    otl,
		table:   table,
		entity:  entity,
		primary: primary,
		columns: columns,
		insert:  insert,
	}
}

func collectColumns(typ reflect.Type) (columns, insert []string) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := collectColumns(field.Type)
			columns = append(columns, embedded...)
			insert = append(insert, embeddedInsert...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" {
			continue
		}

		columns = append(columns, name)

		if field.Tag.Get("insert") != "false" {
			insert = append(insert, name)
		}
	}

	return columns, insert
}

func (repo *Repository[T]) scope(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, operation))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, translateError(repo.entity, err))
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.insert))
	for i, col := range repo.insert {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.insert, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) selectColumns(only ...string) string {
	selected := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col) {
			continue
		}

		selected = append(selected, repo.table+"."+col)
	}

	return strings.Join(selected, ", ")
}

// orderBy only honours sort columns the model actually has.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if params.SortBy == constant.Empty || !slices.Contains(repo.columns, params.SortBy) {
		return constant.Empty
	}

	dir := dto.SortDirDesc
	if strings.EqualFold(params.SortDir, dto.SortDirAsc) {
		dir = dto.SortDirAsc
	}

	return fmt.Sprintf(" ORDER BY %s.%s %s", repo.table, params.SortBy, dir)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	query := repo.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

// InsertBulkTx writes all models with a single multi-row insert inside tx.
func (repo *Repository[T]) InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []T) error {
	ctx, scope := repo.scope(ctx, "InsertBulkTx")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, scope, tx, "bulk insert data", repo.insertQuery(), models)
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.table, where)
	if err := repo.get(ctx, scope, &exist, query, args); err != nil {
		return false, repo.fail(scope, "check existence", err)
	}

	return exist, nil
}

// Get returns the zero model when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", repo.selectColumns(columns...), repo.table, where)

	err := repo.get(ctx, scope, &model, query, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var query strings.Builder

	fmt.Fprintf(&query, "SELECT %s FROM %s%s%s", repo.selectColumns(columns...), repo.table, where, repo.orderBy(params))

	if params.Limit > 0 {
		args[argLimit] = params.Limit
		query.WriteString(" LIMIT :" + argLimit)

		if params.Page > 0 {
			args[argOffset] = params.Offset()
			query.WriteString(" OFFSET :" + argOffset)
		}
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query.String())

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query.String())
	if err != nil {
		return nil, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	var models []T

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return nil, repo.fail(scope, "list data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var count int

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s", repo.table, repo.primary, repo.table, where)
	if err := repo.get(ctx, scope, &count, query, args); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) get(ctx context.Context, scope otel.Scope, dest any, query string, args map[string]any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return errRequiredFilter
	}

	return repo.exec(ctx, scope, repo.db.Write, "delete data", fmt.Sprintf("DELETE FROM %s%s", repo.table, where), args)
}

// Update sets the given columns on every row matching filter. Column names are bound as named
// parameters of the same name, so they must not collide with filter argument names.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == constant.Empty {
		return errRequiredFilter
	}

	columns := slices.Sorted(maps.Keys(fields))
	set := make([]string, len(columns))

	for i, col := range columns {
		set[i] = fmt.Sprintf("%s = :%s", col, col)
	}

	maps.Copy(args, fields)

	query := fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(set, ", "), where)

	return repo.exec(ctx, scope, repo.db.Write, "update data", query, args)
}

func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == constant.Empty {
		return constant.Empty, map[string]any{}
	}

	return " WHERE " + where, args
}
