package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"salon/config"
	"salon/infras/jwt"
	otelMocks "salon/infras/otel/mocks"
	"salon/permissions"
	"salon/shared/constant"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecuredRouter(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "salon"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.JWT.AccessExpireMin = 5
	cfg.JWT.RefreshExpireMin = 60

	tokens := jwt.New(cfg)
	perms := permissions.Get()
	require.NotNil(t, perms)

	mw := NewAuthRoleMiddleware(tokens, otelMocks.NewOtel(), perms, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusNoContent)
	}

	mux := chi.NewRouter()
	mux.Group(func(r chi.Router) {
		r.Use(mw.APIKey, mw.Auth, mw.RBAC)
		r.Post("/v1/auth/login", echo)
		r.Post("/v1/bookings/{id}/actions/{action}", echo)
	})

	return mux, tokens
}

func bearer(t *testing.T, tokens jwt.JWT, role string) string {
	t.Helper()

	pair, err := tokens.GenerateTokenPair(context.Background(), "user-"+role, role+"@salon.test", role)
	require.NoError(t, err)

	return "Bearer " + pair.AccessToken
}

func TestAuthAndRBAC(t *testing.T) {
	handler, tokens := newSecuredRouter(t)

	tests := []struct {
		name     string
		path     string
		headers  map[string]string
		wantCode int
		wantRole string
	}{
		{"skipped route needs no token", "/v1/auth/login", nil, http.StatusNoContent, ""},
		{"missing token", "/v1/bookings/7/actions/start", nil, http.StatusUnauthorized, ""},
		{"garbage token", "/v1/bookings/7/actions/start", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"artist allowed", "/v1/bookings/7/actions/start", map[string]string{"Authorization": bearer(t, tokens, constant.RoleArtist)}, http.StatusNoContent, constant.RoleArtist},
		{"member forbidden", "/v1/bookings/7/actions/start", map[string]string{"Authorization": bearer(t, tokens, constant.RoleMember)}, http.StatusForbidden, ""},
		{"internal key bypasses", "/v1/bookings/7/actions/start", map[string]string{constant.RequestHeaderAPIKey: "internal-key"}, http.StatusNoContent, ""},
		{"wrong internal key", "/v1/bookings/7/actions/start", map[string]string{constant.RequestHeaderAPIKey: "guess"}, http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
		})
	}
}
