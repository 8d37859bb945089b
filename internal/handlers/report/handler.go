package report

import (
	"net/http"
	"salon/infras/otel"
	bookingDto "salon/internal/domains/booking/model/dto"
	"salon/internal/domains/report/service"
	"salon/shared"
	"salon/shared/constant"
	"salon/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(r chi.Router) {
		r.Get("/summary", handler.GetSummary)
		r.Post("/export", handler.Export)
	})
}

// GetSummary aggregates the filtered bookings by status and artist.
// @Summary Booking summary
// @Description Takes the same filters as the booking list.
// @Tags Report
// @Produce json
// @Param search query string false "Free text search"
// @Param status query string false "Status code or all"
// @Param artist query string false "Artist id or all"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Param date_type query string false "booking_date or created_at"
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 500 {object} response.Error
// @Router /v1/reports/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	res, err := handler.service.Summary(ctx, bookingDto.FilterStateFromRequest(r))
	if err != nil {
		response.Fail(w, r, scope, err, "failed to build booking summary")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Export writes the filtered bookings to an xlsx workbook and returns its download URL.
// @Summary Export bookings
// @Tags Report
// @Produce json
// @Param status query string false "Status code or all"
// @Param artist query string false "Artist id or all"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 201 {object} response.Data[dto.ExportResponse]
// @Failure 500 {object} response.Error
// @Router /v1/reports/export [post]
// @Security BearerAuth
func (handler *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Export")
	defer scope.End()

	res, err := handler.service.Export(ctx, shared.ActorFromContext(ctx), bookingDto.FilterStateFromRequest(r))
	if err != nil {
		response.Fail(w, r, scope, err, "failed to export bookings")

		return
	}

	scope.AddEvent("Bookings exported")

	response.WithJSON(w, http.StatusCreated, res)
}
