package auth

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/auth/model/dto"
	"salon/internal/domains/auth/service"
	"salon/shared"
	"salon/shared/constant"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Handler serves the public sign-up and token endpoints. Only change-password needs a bearer token.
type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// bind decodes and validates the body into T, answering 400 itself when that fails.
func bind[T any](w http.ResponseWriter, r *http.Request, scope otel.Scope) (T, bool) {
	var req T
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid auth request body")

		return req, false
	}

	return req, true
}

// Register signs up a member account.
// @Summary Member sign-up
// @Description Creates an active, unverified member. Staff accounts are opened through /v1/users.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Sign-up"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Email taken"
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req, ok := bind[dto.RegisterRequest](w, r, scope)
	if !ok {
		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		response.Fail(w, r, scope, err, "register failed")

		return
	}

	response.WithMessage(w, http.StatusCreated, "Account registered")
}

// Login exchanges email and password for an access and refresh token pair.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error "Unknown email or wrong password"
// @Failure 403 {object} response.Error "Account deactivated"
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req, ok := bind[dto.LoginRequest](w, r, scope)
	if !ok {
		return
	}

	tokens, err := handler.service.Login(ctx, req)
	if err != nil {
		response.Fail(w, r, scope, err, "login failed")

		return
	}

	response.WithJSON(w, http.StatusOK, tokens)
}

// RefreshToken
// @Summary Rotate tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req, ok := bind[dto.RefreshTokenRequest](w, r, scope)
	if !ok {
		return
	}

	tokens, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		response.Fail(w, r, scope, err, "token refresh failed")

		return
	}

	response.WithJSON(w, http.StatusOK, tokens)
}

// ChangePassword
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req, ok := bind[dto.ChangePasswordRequest](w, r, scope)
	if !ok {
		return
	}

	if err := handler.service.ChangePassword(ctx, shared.ActorFromContext(ctx), req); err != nil {
		response.Fail(w, r, scope, err, "password change failed")

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed")
}
