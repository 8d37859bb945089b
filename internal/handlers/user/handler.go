package user

import (
	"context"
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/user/model"
	"salon/internal/domains/user/model/dto"
	"salon/internal/domains/user/service"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Handler exposes account management. Staff manage every account under /users/{id}; anyone signed
// in manages their own under /users/me.
type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(r chi.Router) {
		r.Post("/", handler.CreateUser)
		r.Get("/", handler.GetUsers)
		r.Get("/me", handler.GetProfile)
		r.Patch("/me", handler.UpdateProfile)
		r.Get("/{id}", handler.GetUserByID)
		r.Patch("/{id}", handler.UpdateUser)
		r.Delete("/{id}", handler.DeleteUser)
	})
}

type ctxScope struct {
	ctx   context.Context
	actor shared.Actor
}

func (handler *Handler) scope(r *http.Request, name string) (ctxScope, otel.Scope) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)

	return ctxScope{ctx: ctx, actor: shared.ActorFromContext(ctx)}, scope
}

// CreateUser provisions a back office account.
// @Summary Create account
// @Description Staff create artist, controller or member accounts; admin roles need a superadmin.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error "Email taken"
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	c, scope := handler.scope(r, "CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid create user body")

		return
	}

	if err := handler.service.Create(c.ctx, c.actor, req); err != nil {
		response.Fail(w, r, scope, err, "failed to create user")

		return
	}

	response.WithMessage(w, http.StatusCreated, "User created successfully")
}

// GetUsers lists accounts.
// @Summary List accounts
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Paging and sorting"
// @Param email query string false "Email contains"
// @Param full_name query string false "Name contains"
// @Param level query string false "Exact role"
// @Param active query bool false "Active flag"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	c, scope := handler.scope(r, "GetUsers")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	query := r.URL.Query()

	filter := gDto.And()
	filter.AddIfPresent(model.FieldEmail, gDto.FilterOperatorLike, query.Get(model.FieldEmail), model.TableName)
	filter.AddIfPresent(model.FieldFullName, gDto.FilterOperatorLike, query.Get(model.FieldFullName), model.TableName)
	filter.AddIfPresent(model.FieldLevel, gDto.FilterOperatorEq, query.Get(model.FieldLevel), model.TableName)
	filter.AddIfPresent(model.FieldActive, gDto.FilterOperatorEq, shared.ConvertStringToBool(query.Get(model.FieldActive)), model.TableName)

	users, err := handler.service.GetAll(c.ctx, params, filter)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to list users")

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID
// @Summary Get account
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	c, scope := handler.scope(r, "GetUserByID")
	defer scope.End()

	user, err := handler.service.Get(c.ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get user")

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser changes another account's role, name or active flag.
// @Summary Update account
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	c, scope := handler.scope(r, "UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid update user body")

		return
	}

	if err := handler.service.Update(c.ctx, c.actor, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		response.Fail(w, r, scope, err, "failed to update user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser
// @Summary Delete account
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	c, scope := handler.scope(r, "DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(c.ctx, c.actor, chi.URLParam(r, constant.RequestParamID)); err != nil {
		response.Fail(w, r, scope, err, "failed to delete user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}

// GetProfile returns the caller's own account.
// @Summary Get own profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 401 {object} response.Error
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	c, scope := handler.scope(r, "GetProfile")
	defer scope.End()

	user, err := handler.service.Get(c.ctx, c.actor.UserID)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get profile")

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateProfile updates the caller's own name and picture. A data uri picture is uploaded first.
// @Summary Update own profile
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/users/me [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	c, scope := handler.scope(r, "UpdateProfile")
	defer scope.End()

	var req dto.UpdateProfileRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid profile body")

		return
	}

	if err := handler.service.UpdateProfile(c.ctx, c.actor, req); err != nil {
		response.Fail(w, r, scope, err, "failed to update profile")

		return
	}

	response.WithMessage(w, http.StatusOK, "Profile updated successfully")
}
