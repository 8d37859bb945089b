package constant

import "time"

// ContextGuest is recorded as created_by for rows written before anyone is signed in.
const ContextGuest = "guest"

type contextKey string

// Request context keys set by the auth middleware.
const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

// Roles, from most to least privileged.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleController = "controller"
	RoleArtist     = "artist"
	RoleMember     = "member"
)

// Paging.
const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	DefaultValuePage  = 1
	DefaultValueLimit = 10
)

// Booking list filter state.
const (
	RequestParamSearch        = "search"
	RequestParamStatus        = "status"
	RequestParamArtist        = "artist"
	RequestParamStartDate     = "start_date"
	RequestParamEndDate       = "end_date"
	RequestParamDateType      = "date_type"
	RequestParamSortField     = "sort_field"
	RequestParamSortDirection = "sort_direction"
)

// Path and misc query params.
const (
	RequestParamID        = "id"
	RequestParamBookingNo = "booking_no"
	RequestParamAction    = "action"
	RequestParamCode      = "code"
	RequestParamActive    = "active"
)

const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// SQLSTATE codes mapped to 409 and 400.
const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	DateFormat   = time.RFC3339
	ExportFormat = "20060102_150405"
)

// Otel tracer names, one per layer.
const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
