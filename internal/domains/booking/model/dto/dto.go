package dto

import (
	"net/http"
	"salon/internal/domains/booking/model"
	statusModel "salon/internal/domains/status/model"
	statusDto "salon/internal/domains/status/model/dto"
	"salon/internal/pipeline"
	"salon/shared"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	gModel "salon/shared/model"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BookingItemRequest struct {
	ServiceName string          `json:"service_name" validate:"required,max=150"`
	SubService  string          `json:"sub_service"  validate:"omitempty,max=150"`
	ProductName string          `json:"product_name" validate:"omitempty,max=150"`
	Price       decimal.Decimal `json:"price"        swaggertype:"string"`
	Qty         int             `json:"qty"          validate:"required,min=1,max=100"`
}

// CreateBookingRequest is one customer order; every item becomes a booking row sharing the same
// booking number.
type CreateBookingRequest struct {
	Name        string               `json:"name"         validate:"required,max=100"`
	Email       string               `json:"email"        validate:"required,email,max=100"`
	PhoneNo     string               `json:"phone_no"     validate:"required,max=20"`
	Address     string               `json:"address"      validate:"required,max=255"`
	BookingDate string               `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime string               `json:"booking_time" validate:"required,datetime=15:04"`
	Purpose     string               `json:"purpose"      validate:"omitempty,max=255"`
	Items       []BookingItemRequest `json:"items"        validate:"required,min=1,dive"`
}

// HasNegativePrice reports a line item priced below zero.
func (c *CreateBookingRequest) HasNegativePrice() bool {
	for _, item := range c.Items {
		if item.Price.IsNegative() {
			return true
		}
	}

	return false
}

func (c *CreateBookingRequest) ToModels(actor shared.Actor) []model.Booking {
	var memberID *string
	if actor.Role == constant.RoleMember && actor.UserID != constant.Empty {
		id := actor.UserID
		memberID = &id
	}

	meta := gModel.NewMetadata(actor.UserID)
	res := make([]model.Booking, len(c.Items))

	for i, item := range c.Items {
		res[i] = model.Booking{
			Name:        strings.TrimSpace(c.Name),
			Email:       strings.TrimSpace(c.Email),
			PhoneNo:     strings.TrimSpace(c.PhoneNo),
			Address:     c.Address,
			BookingDate: c.BookingDate,
			BookingTime: c.BookingTime,
			Status:      string(statusModel.CodePending),
			Price:       item.Price,
			Qty:         item.Qty,
			Purpose:     c.Purpose,
			ServiceName: item.ServiceName,
			SubService:  item.SubService,
			ProductName: item.ProductName,
			MemberID:    memberID,
			Metadata:    meta,
		}
	}

	return res
}

type CreateBookingResponse struct {
	BookingNo int64 `json:"booking_no"`
}

type UpdateBookingRequest struct {
	Name        string `db:"name"         json:"name"         validate:"omitempty,max=100"`
	Email       string `db:"email"        json:"email"        validate:"omitempty,email,max=100"`
	PhoneNo     string `db:"phone_no"     json:"phone_no"     validate:"omitempty,max=20"`
	Address     string `db:"address"      json:"address"      validate:"omitempty,max=255"`
	BookingDate string `db:"booking_date" json:"booking_date" validate:"omitempty,datetime=2006-01-02"`
	BookingTime string `db:"booking_time" json:"booking_time" validate:"omitempty,datetime=15:04"`
	Purpose     string `db:"purpose"      json:"purpose"      validate:"omitempty,max=255"`
}

type AssignArtistRequest struct {
	ArtistID int64 `json:"artist_id" validate:"required,gt=0"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
	Force  bool   `json:"force"`
}

type BookingResponse struct {
	ID          int64           `json:"id"`
	BookingNo   int64           `json:"booking_no"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PhoneNo     string          `json:"phone_no"`
	Address     string          `json:"address"`
	BookingDate string          `json:"booking_date"`
	BookingTime string          `json:"booking_time"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	StatusBadge string          `json:"status_badge"`
	ArtistID    *int64          `json:"artist_id"`
	ArtistName  string          `json:"artist_name"`
	Price       decimal.Decimal `json:"price"        swaggertype:"string"`
	Qty         int             `json:"qty"`
	Total       decimal.Decimal `json:"total"        swaggertype:"string"`
	Purpose     string          `json:"purpose"`
	ServiceName string          `json:"service_name"`
	SubService  string          `json:"sub_service"`
	ProductName string          `json:"product_name"`
	MemberID    *string         `json:"member_id"`
	Actions     []string        `json:"actions"`
	gDto.Metadata
}

// FromModel fills the response. artistName comes from the list's artist lookup; normalizer supplies
// the status label, badge and the artist actions.
func (r *BookingResponse) FromModel(booking model.Booking, artistName string, normalizer *statusModel.Normalizer) {
	r.ID = booking.ID
	r.BookingNo = booking.BookingNo
	r.Name = booking.Name
	r.Email = booking.Email
	r.PhoneNo = booking.PhoneNo
	r.Address = booking.Address
	r.BookingDate = booking.BookingDate
	r.BookingTime = booking.BookingTime
	r.Status = booking.Status
	r.StatusLabel = normalizer.Label(booking.Status)
	r.StatusBadge = normalizer.Badge(booking.Status)
	r.ArtistID = booking.ArtistID
	r.ArtistName = artistName
	r.Price = booking.Price
	r.Qty = booking.Qty
	r.Total = booking.Total()
	r.Purpose = booking.Purpose
	r.ServiceName = booking.ServiceName
	r.SubService = booking.SubService
	r.ProductName = booking.ProductName
	r.MemberID = booking.MemberID
	r.Metadata.FromModel(booking.Metadata)

	r.Actions = []string{}
	if booking.ArtistID != nil {
		for _, action := range normalizer.AvailableActions(booking.Status) {
			r.Actions = append(r.Actions, string(action))
		}
	}
}

type ActionRequest struct {
	OTP string `json:"otp" validate:"omitempty,numeric,min=4,max=8"`
}

type RequestOTPResponse struct {
	Action      string    `json:"action"`
	ExpiresAt   time.Time `json:"expires_at"`
	Length      int       `json:"length"`
	MaxAttempts int       `json:"max_attempts"`
}

type GetBookingsResponse struct {
	Bookings      []BookingResponse        `json:"bookings"`
	TotalPage     int                      `json:"total_page"`
	TotalData     int                      `json:"total_data"`
	Filters       pipeline.FilterState     `json:"filters"`
	ArtistOptions []pipeline.ArtistOption  `json:"artist_options"`
	StatusOptions []statusDto.StatusOption `json:"status_options"`
}

type OrderResponse struct {
	BookingNo int64             `json:"booking_no"`
	Items     []BookingResponse `json:"items"`
	Total     decimal.Decimal   `json:"total" swaggertype:"string"`
}

func ToPipeline(booking model.Booking) pipeline.Booking {
	return pipeline.Booking{
		ID:          booking.ID,
		BookingNo:   booking.BookingNo,
		Name:        booking.Name,
		Email:       booking.Email,
		PhoneNo:     booking.PhoneNo,
		Address:     booking.Address,
		BookingDate: booking.BookingDate,
		BookingTime: booking.BookingTime,
		CreatedAt:   booking.CreatedAt.Format(constant.DateFormat),
		Status:      booking.Status,
		ArtistID:    booking.ArtistID,
		Purpose:     booking.Purpose,
		ServiceName: booking.ServiceName,
		SubService:  booking.SubService,
		ProductName: booking.ProductName,
	}
}

func ToPipelineList(bookings []model.Booking) []pipeline.Booking {
	res := make([]pipeline.Booking, len(bookings))
	for i, booking := range bookings {
		res[i] = ToPipeline(booking)
	}

	return res
}

// FilterStateFromRequest reads the list filters from the query string. Missing parameters keep
// their defaults.
func FilterStateFromRequest(r *http.Request) pipeline.FilterState {
	query := r.URL.Query()
	state := pipeline.DefaultFilterState()

	state.Search = query.Get(constant.RequestParamSearch)

	if status := query.Get(constant.RequestParamStatus); status != constant.Empty {
		state.Status = status
	}

	if artist := query.Get(constant.RequestParamArtist); artist != constant.Empty {
		state.Artist = artist
	}

	state.StartDate = query.Get(constant.RequestParamStartDate)
	state.EndDate = query.Get(constant.RequestParamEndDate)

	if dateType := query.Get(constant.RequestParamDateType); dateType != constant.Empty {
		state.DateType = pipeline.ParseDateType(dateType)
	}

	if field := query.Get(constant.RequestParamSortField); field != constant.Empty {
		state.SortField = pipeline.ParseSortField(field)
	}

	if direction := query.Get(constant.RequestParamSortDirection); direction != constant.Empty {
		state.SortDirection = pipeline.ParseSortDirection(direction)
	}

	return state
}
