package status

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/status/model/dto"
	"salon/internal/domains/status/service"
	"salon/shared"
	"salon/shared/constant"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Handler manages the status_options rows layered over the built-in booking statuses.
type Handler struct {
	service service.Status
	otel    otel.Otel
}

func New(service service.Status, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/statuses", func(r chi.Router) {
		r.Post("/", handler.CreateStatus)
		r.Get("/", handler.GetStatuses)
		r.Get("/{code}", handler.GetStatus)
		r.Patch("/{code}", handler.UpdateStatus)
		r.Delete("/{code}", handler.DeleteStatus)
	})
}

// CreateStatus registers a status option.
// @Summary Create a status option
// @Tags Status
// @Accept json
// @Produce json
// @Param request body dto.CreateStatusRequest true "Create Status Request"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/statuses [post]
// @Security BearerAuth
func (handler *Handler) CreateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateStatus")
	defer scope.End()

	var req dto.CreateStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid status option body")

		return
	}

	if err := handler.service.Create(ctx, shared.ActorFromContext(ctx), req); err != nil {
		response.Fail(w, r, scope, err, "failed to create status option")

		return
	}

	response.WithMessage(w, http.StatusCreated, "Status option created")
}

// GetStatuses lists the status options.
// @Summary Get status options
// @Tags Status
// @Produce json
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetStatusesResponse]
// @Router /v1/statuses [get]
// @Security BearerAuth
func (handler *Handler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatuses")
	defer scope.End()

	active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive))

	res, err := handler.service.GetAll(ctx, active)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get status options")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetStatus retrieves one status option by code.
// @Summary Get a status option
// @Tags Status
// @Produce json
// @Param code path string true "Status code"
// @Success 200 {object} response.Data[dto.StatusResponse]
// @Failure 404 {object} response.Error
// @Router /v1/statuses/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatus")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamCode))
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get status option")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus renames or (de)activates a status option.
// @Summary Update a status option
// @Tags Status
// @Accept json
// @Produce json
// @Param code path string true "Status code"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/statuses/{code} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	var req dto.UpdateStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid status option body")

		return
	}

	if err := handler.service.Update(ctx, shared.ActorFromContext(ctx), req, chi.URLParam(r, constant.RequestParamCode)); err != nil {
		response.Fail(w, r, scope, err, "failed to update status option")

		return
	}

	response.WithMessage(w, http.StatusOK, "Status option updated")
}

// DeleteStatus removes a custom status option.
// @Summary Delete a status option
// @Tags Status
// @Produce json
// @Param code path string true "Status code"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/statuses/{code} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteStatus")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamCode)); err != nil {
		response.Fail(w, r, scope, err, "failed to delete status option")

		return
	}

	response.WithMessage(w, http.StatusOK, "Status option deleted")
}
