package booking

import (
	"net/http"
	"salon/infras/otel"
	"salon/internal/domains/booking/model/dto"
	"salon/internal/domains/booking/service"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/validator"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(r chi.Router) {
		r.Post("/", handler.CreateBooking)
		r.Get("/", handler.GetBookings)
		r.Get("/{id}", handler.GetBookingByID)
		r.Patch("/{id}", handler.UpdateBooking)
		r.Delete("/{id}", handler.DeleteBooking)
		r.Post("/{id}/assign", handler.AssignArtist)
		r.Post("/{id}/status", handler.ChangeStatus)
		r.Post("/{id}/cancel", handler.CancelBooking)
		r.Post("/{id}/actions/{action}/otp", handler.RequestActionOTP)
		r.Post("/{id}/actions/{action}", handler.PerformAction)
	})

	router.Get("/orders/{booking_no}", handler.GetOrder)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create one order; every item becomes a booking row sharing one booking number.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	var req dto.CreateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid booking body")

		return
	}

	res, err := handler.service.Create(ctx, shared.ActorFromContext(ctx), req)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to create booking")

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookings lists the bookings visible to the caller after search, filters and sorting.
// @Summary List bookings
// @Description Staff see every booking, members their own and artists the ones assigned to them.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param search query string false "Free text search"
// @Param status query string false "Status code or all"
// @Param artist query string false "Artist id or all"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Param date_type query string false "booking_date or created_at"
// @Param sort_field query string false "Sort field"
// @Param sort_direction query string false "asc or desc"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	state := dto.FilterStateFromRequest(r)

	res, err := handler.service.List(ctx, shared.ActorFromContext(ctx), queryParams, state)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to list bookings")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetBookingByID retrieves a single booking row.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	res, err := handler.service.Get(ctx, shared.ActorFromContext(ctx), id)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get booking")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetOrder retrieves every row of one booking number with the order total.
// @Summary Get an order by booking number
// @Tags Booking
// @Produce json
// @Param booking_no path int true "Booking number"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 404 {object} response.Error
// @Router /v1/orders/{booking_no} [get]
// @Security BearerAuth
func (handler *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrder")
	defer scope.End()

	bookingNo, err := shared.ParseID(chi.URLParam(r, constant.RequestParamBookingNo))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking number")

		return
	}

	res, err := handler.service.GetOrder(ctx, shared.ActorFromContext(ctx), bookingNo)
	if err != nil {
		response.Fail(w, r, scope, err, "failed to get order")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateBooking updates customer and schedule details.
// @Summary Update a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	var req dto.UpdateBookingRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid booking body")

		return
	}

	if err := handler.service.Update(ctx, shared.ActorFromContext(ctx), req, id); err != nil {
		response.Fail(w, r, scope, err, "failed to update booking")

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}

// DeleteBooking removes a booking row.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		response.Fail(w, r, scope, err, "failed to delete booking")

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

// AssignArtist assigns an active artist to a booking.
// @Summary Assign an artist
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.AssignArtistRequest true "Assign Artist Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/assign [post]
// @Security BearerAuth
func (handler *Handler) AssignArtist(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignArtist")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	var req dto.AssignArtistRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid booking body")

		return
	}

	if err := handler.service.AssignArtist(ctx, shared.ActorFromContext(ctx), req, id); err != nil {
		response.Fail(w, r, scope, err, "failed to assign artist")

		return
	}

	response.WithMessage(w, http.StatusOK, "Artist assigned successfully")
}

// ChangeStatus moves a booking to another status.
// @Summary Change booking status
// @Description Staff move bookings along the lifecycle; force skips the transition check and is superadmin only.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param request body dto.ChangeStatusRequest true "Change Status Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/status [post]
// @Security BearerAuth
func (handler *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangeStatus")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	var req dto.ChangeStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, r, scope, err, "invalid booking body")

		return
	}

	if err := handler.service.ChangeStatus(ctx, shared.ActorFromContext(ctx), req, id); err != nil {
		response.Fail(w, r, scope, err, "failed to change booking status")

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking status updated successfully")
}

// CancelBooking cancels a booking.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	if err := handler.service.Cancel(ctx, shared.ActorFromContext(ctx), id); err != nil {
		response.Fail(w, r, scope, err, "failed to cancel booking")

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// RequestActionOTP sends the customer a one-time code for an artist action.
// @Summary Request an action OTP
// @Tags Booking
// @Produce json
// @Param id path int true "Booking ID"
// @Param action path string true "start or complete"
// @Success 200 {object} response.Data[dto.RequestOTPResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/bookings/{id}/actions/{action}/otp [post]
// @Security BearerAuth
func (handler *Handler) RequestActionOTP(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestActionOTP")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	res, err := handler.service.RequestActionOTP(ctx, shared.ActorFromContext(ctx), id, chi.URLParam(r, constant.RequestParamAction))
	if err != nil {
		response.Fail(w, r, scope, err, "failed to request action otp")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// PerformAction runs an artist action, verifying the OTP when the action needs one.
// @Summary Perform an artist action
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param action path string true "on_the_way, start or complete"
// @Param request body dto.ActionRequest false "OTP"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/actions/{action} [post]
// @Security BearerAuth
func (handler *Handler) PerformAction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PerformAction")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, r, scope, err, "invalid booking id")

		return
	}

	req := dto.ActionRequest{}

	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			response.Fail(w, r, scope, err, "invalid booking body")

			return
		}
	}

	if err := handler.service.PerformAction(ctx, shared.ActorFromContext(ctx), id, chi.URLParam(r, constant.RequestParamAction), req); err != nil {
		response.Fail(w, r, scope, err, "failed to perform booking action")

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking updated successfully")
}
