package shared

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"fmt"
	"maps"
	"reflect"
	"salon/shared/cache"
	"salon/shared/constant"
	"salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/timezone"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Actor is the authenticated caller, resolved once at the transport edge and passed down explicitly.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

func (a Actor) IsStaff() bool {
	return a.Role == constant.RoleController || a.Role == constant.RoleAdmin || a.Role == constant.RoleSuperAdmin
}

func (a Actor) IsSuperAdmin() bool {
	return a.Role == constant.RoleSuperAdmin
}

// ActorFromContext reads the values put in the request context by the auth middleware.
func ActorFromContext(ctx context.Context) Actor {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return Actor{UserID: userID, Email: email, Role: role}
}

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// ParseID reads a positive numeric path identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid id %q", raw))
	}

	return id, nil
}

// CalculateTotalPage never returns less than one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the non-zero `db` tagged fields of data to an update set and stamps the
// modification metadata.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := val.Type()

	fields := make(map[string]any, typ.NumField()+2)

	for i := range typ.NumField() {
		column := typ.Field(i).Tag.Get("db")
		if column == "" || val.Field(i).IsZero() {
			continue
		}

		fields[column] = val.Field(i).Interface()
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = username

	return fields
}

// FilterByField matches a single column for equality.
func FilterByField(field string, value any, table string) dto.FilterGroup {
	return dto.And(dto.Filter{Field: field, Value: value, Operator: dto.FilterOperatorEq, Table: table})
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return FilterByField(fieldID, id, table)
}

// BuildCacheKey joins a prefix and its parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a stable key from the paging params and the filter arguments.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	var builder strings.Builder

	builder.WriteString(where)

	for _, key := range slices.Sorted(maps.Keys(args)) {
		fmt.Fprintf(&builder, "|%s=%v", key, args[key])
	}

	fmt.Fprintf(&builder, "|%d|%d|%s|%s", params.Page, params.Limit, params.SortBy, params.SortDir)

	sum := sha1.Sum([]byte(builder.String())) //nolint:gosec

	return BuildCacheKey(prefix, hex.EncodeToString(sum[:]))
}

// InvalidateCaches removes every key stored under prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
