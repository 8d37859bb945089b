package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"salon/config"
	"salon/infras/jwt"
	"salon/infras/otel"
	"salon/permissions"
	"salon/shared/constant"
	"salon/shared/failure"
	"salon/transport/http/response"
	"slices"

	"github.com/go-chi/chi/v5"
)

type internalCallKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// findRoute resolves the route pattern for the request before chi has routed it, so permissions can be
// looked up by pattern rather than by concrete path.
func findRoute(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

func (m *authRoleImpl) skipRoute(request *http.Request) bool {
	return m.permission != nil && m.permission.FindPermissions(findRoute(request), request.Method).Skip
}

func deny(writer http.ResponseWriter, request *http.Request, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(writer, request, err)
}

var tokenErrors = map[error]string{
	jwt.ErrExpiredToken: "Token has expired",
	jwt.ErrInvalidToken: "Invalid token",
	jwt.ErrInvalidClaim: "Invalid token claims",
}

// Auth validates the bearer access token and stores the caller's identity in the context. Internal
// calls and routes marked skip pass through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if isInternal(ctx) || m.skipRoute(request) {
			next.ServeHTTP(writer, request)

			return
		}

		token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			deny(writer, request, scope, failure.Unauthorized("Missing or malformed authorization header"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
		if err != nil {
			msg := "Token validation failed"

			for known, text := range tokenErrors {
				if errors.Is(err, known) {
					msg = text
				}
			}

			deny(writer, request, scope, failure.Unauthorized(msg))

			return
		}

		scope.SetAttributes(map[string]any{"user.id": claims.Subject, "user.role": claims.Role})

		ctx = request.Context()
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.Subject)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC admits the caller when the route lists no roles or lists the caller's role. It must run
// after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if isInternal(ctx) {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			deny(writer, request, scope, failure.ForbiddenError)

			return
		}

		allowed := m.permission.FindPermissions(findRoute(request), request.Method)
		if m.permission.Skip || allowed.Skip || len(allowed.Permissions) == 0 {
			next.ServeHTTP(writer, request)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
		if !slices.Contains(allowed.Permissions, role) {
			scope.SetAttributes(map[string]any{"user.role": role, "allowed_roles": allowed.Permissions})
			deny(writer, request, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey marks requests carrying the configured X-API-Key as internal, which bypasses Auth and RBAC.
// A wrong key is rejected; no key means a normal client request.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == constant.Empty {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == constant.Empty || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			deny(writer, request, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(writer, request.WithContext(context.WithValue(request.Context(), internalCallKey{}, true)))
	})
}
