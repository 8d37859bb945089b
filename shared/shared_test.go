package shared_test

import (
	"context"
	"net/http"
	"salon/shared"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))

	for raw, want := range map[string]bool{"true": true, "1": true, "false": false, "0": false} {
		got := shared.ConvertStringToBool(raw)
		require.NotNil(t, got, raw)
		assert.Equal(t, want, *got, raw)
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct{ total, limit, want int }{
		{0, 10, 1},
		{5, 0, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit), "%d/%d", tt.total, tt.limit)
	}
}

func TestTransformFields(t *testing.T) {
	type update struct {
		Name     *string   `db:"name"`
		Active   *bool     `db:"active"`
		Price    float64   `db:"price"`
		Note     string    `db:"note"`
		At       time.Time `db:"at"`
		Internal string
	}

	name, inactive := "Dina", false

	fields := shared.TransformFields(update{Name: &name, Active: &inactive, Price: 150000, Internal: "skip"}, "ctl@salon.test")

	assert.Equal(t, &name, fields["name"])
	assert.Equal(t, &inactive, fields["active"])
	assert.Equal(t, float64(150000), fields["price"])
	assert.NotContains(t, fields, "note")
	assert.NotContains(t, fields, "at")
	assert.NotContains(t, fields, "Internal")
	assert.Equal(t, "ctl@salon.test", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("user-1", "id", "users")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(users.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "user-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "artist", shared.BuildCacheKey("artist"))
	assert.Equal(t, "limiter:1.2.3.4:curl", shared.BuildCacheKey("limiter", "1.2.3.4", "curl"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByField("status", "pending", "bookings")

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", params, shared.FilterByField("status", "done", "bookings")))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("booking:gets", dto.QueryParams{Page: 2, Limit: 10}, filter))

	active, inactive := true, false
	on, off := dto.And(), dto.And()
	on.AddIfPresent("active", dto.FilterOperatorEq, &active, "")
	off.AddIfPresent("active", dto.FilterOperatorEq, &inactive, "")

	assert.NotEqual(t, shared.BuildCacheKeyWithQuery("artist", params, on), shared.BuildCacheKeyWithQuery("artist", params, off))
}

func TestActor(t *testing.T) {
	tests := []struct {
		role       string
		staff      bool
		superAdmin bool
	}{
		{role: constant.RoleMember},
		{role: constant.RoleArtist},
		{role: constant.RoleController, staff: true},
		{role: constant.RoleAdmin, staff: true},
		{role: constant.RoleSuperAdmin, staff: true, superAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			actor := shared.Actor{UserID: "u-1", Role: tt.role}

			assert.Equal(t, tt.staff, actor.IsStaff())
			assert.Equal(t, tt.superAdmin, actor.IsSuperAdmin())
		})
	}
}

func TestActorFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "u-9")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "x@salon.test")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleArtist)

	assert.Equal(t, shared.Actor{UserID: "u-9", Email: "x@salon.test", Role: constant.RoleArtist}, shared.ActorFromContext(ctx))
	assert.Equal(t, shared.Actor{}, shared.ActorFromContext(context.Background()))
}

func TestParseID(t *testing.T) {
	id, err := shared.ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := shared.ParseID(raw)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), raw)
	}
}
