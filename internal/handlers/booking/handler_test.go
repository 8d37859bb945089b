package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "salon/infras/otel/mocks"
	bookingMocks "salon/internal/domains/booking/mocks"
	"salon/internal/domains/booking/model/dto"
	"salon/internal/handlers/booking"
	"salon/internal/pipeline"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
)

var artist = shared.Actor{UserID: "artist-user", Email: "ayu@salon.id", Role: constant.RoleArtist}

func newRouter(t *testing.T, actor shared.Actor) (http.Handler, *bookingMocks.MockBookingService) {
	t.Helper()

	svc := bookingMocks.NewMockBookingService(gomock.NewController(t))
	handler := booking.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constant.ContextKeyUserID, actor.UserID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, actor.Email)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, actor.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetBookings(t *testing.T) {
	router, svc := newRouter(t, artist)

	svc.EXPECT().
		List(gomock.Any(), artist, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ shared.Actor, params gDto.QueryParams, state pipeline.FilterState) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, "ayu", state.Search)
			assert.Equal(t, "done", state.Status)
			assert.Equal(t, pipeline.AllFlag, state.Artist)
			assert.Equal(t, pipeline.SortAsc, state.SortDirection)

			return dto.GetBookingsResponse{TotalData: 1, Bookings: []dto.BookingResponse{{ID: 3}}}, nil
		})

	rec := serve(router, http.MethodGet, "/bookings?page=2&search=ayu&status=done&sort_direction=asc", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.GetBookingsResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Data.TotalData)
	assert.Equal(t, int64(3), body.Data.Bookings[0].ID)
}

func TestHandler_InvalidID(t *testing.T) {
	router, _ := newRouter(t, artist)

	rec := serve(router, http.MethodGet, "/bookings/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_PerformAction(t *testing.T) {
	t.Run("with otp", func(t *testing.T) {
		router, svc := newRouter(t, artist)

		svc.EXPECT().
			PerformAction(gomock.Any(), artist, int64(5), "start", dto.ActionRequest{OTP: "123456"}).
			Return(nil)

		rec := serve(router, http.MethodPost, "/bookings/5/actions/start", `{"otp":"123456"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("without body", func(t *testing.T) {
		router, svc := newRouter(t, artist)

		svc.EXPECT().
			PerformAction(gomock.Any(), artist, int64(5), "on_the_way", dto.ActionRequest{}).
			Return(nil)

		rec := serve(router, http.MethodPost, "/bookings/5/actions/on_the_way", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("service error keeps its code", func(t *testing.T) {
		router, svc := newRouter(t, artist)

		svc.EXPECT().
			PerformAction(gomock.Any(), artist, int64(5), "complete", gomock.Any()).
			Return(failure.Conflict("booking status changed"))

		rec := serve(router, http.MethodPost, "/bookings/5/actions/complete", `{"otp":"654321"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("non numeric otp", func(t *testing.T) {
		router, _ := newRouter(t, artist)

		rec := serve(router, http.MethodPost, "/bookings/5/actions/start", `{"otp":"12ab"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_CreateBooking(t *testing.T) {
	member := shared.Actor{UserID: "member-1", Role: constant.RoleMember}
	router, svc := newRouter(t, member)

	svc.EXPECT().
		Create(gomock.Any(), member, gomock.Any()).
		Return(dto.CreateBookingResponse{BookingNo: 1001}, nil)

	body := `{"name":"Sinta","email":"sinta@example.com","phone_no":"0812","address":"Jl. Mawar 1",
		"booking_date":"2024-05-10","booking_time":"09:30",
		"items":[{"service_name":"Make up","price":"250000","qty":1}]}`

	rec := serve(router, http.MethodPost, "/bookings", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"booking_no":1001`)

	rec = serve(router, http.MethodPost, "/bookings", `{"name":"Sinta"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetOrder(t *testing.T) {
	router, svc := newRouter(t, artist)

	svc.EXPECT().GetOrder(gomock.Any(), artist, int64(1001)).Return(dto.OrderResponse{BookingNo: 1001}, nil)

	rec := serve(router, http.MethodGet, "/orders/1001", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
