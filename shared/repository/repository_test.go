package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salon/infras/otel/mocks"
	"salon/shared/dto"
)

type audit struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}

type row struct {
	ID     int64  `db:"id"     insert:"false"`
	Name   string `db:"name"`
	Status string `db:"status"`
	Note   string
	audit
}

func newRowRepository() Repository[row] {
	return NewRepository[row]("row", "rows", "id", nil, mocks.NewOtel())
}

func TestCollectColumns(t *testing.T) {
	repo := newRowRepository()

	assert.Equal(t, []string{"id", "name", "status", "created_at", "created_by"}, repo.columns)
	assert.Equal(t, []string{"name", "status", "created_at", "created_by"}, repo.insert)
	assert.Equal(t, "INSERT INTO rows (name, status, created_at, created_by) VALUES (:name, :status, :created_at, :created_by)", repo.insertQuery())
	assert.Equal(t, "rows.id, rows.name", repo.selectColumns("id", "name"))
}

func TestOrderBy(t *testing.T) {
	repo := newRowRepository()

	assert.Equal(t, " ORDER BY rows.created_at DESC", repo.orderBy(dto.QueryParams{SortBy: "created_at"}))
	assert.Equal(t, " ORDER BY rows.name ASC", repo.orderBy(dto.QueryParams{SortBy: "name", SortDir: "asc"}))
	assert.Empty(t, repo.orderBy(dto.QueryParams{SortBy: "name; DROP TABLE rows", SortDir: "ASC"}))
	assert.Empty(t, repo.orderBy(dto.QueryParams{}))
}

func TestBuildWhereClause(t *testing.T) {
	repo := newRowRepository()

	where, args := repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(context.Background(), dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "done", Table: "rows"}},
	})
	assert.Equal(t, " WHERE (rows.status = :status)", where)
	assert.Equal(t, map[string]any{"status": "done"}, args)
}
