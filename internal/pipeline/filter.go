package pipeline

import (
	"salon/internal/domains/status/model"
	"strconv"
	"strings"
)

// AllFlag is the filter value meaning "no constraint".
const AllFlag = "all"

type DateType string

const (
	DateTypeBooking  DateType = "booking"
	DateTypeCreation DateType = "creation"
)

type SortField string

const (
	SortFieldBookingDate  SortField = "booking_date"
	SortFieldCreationDate SortField = "creation_date"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// FilterState holds every user-chosen filter and sort parameter. It is comparable so it can key
// the memoized result.
type FilterState struct {
	Search        string        `json:"search"`
	Status        string        `json:"status"`
	Artist        string        `json:"artist"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	DateType      DateType      `json:"date_type"`
	SortField     SortField     `json:"sort_field"`
	SortDirection SortDirection `json:"sort_direction"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		Status:        AllFlag,
		Artist:        AllFlag,
		DateType:      DateTypeBooking,
		SortField:     SortFieldCreationDate,
		SortDirection: SortDesc,
	}
}

func ParseDateType(raw string) DateType {
	if DateType(strings.ToLower(strings.TrimSpace(raw))) == DateTypeCreation {
		return DateTypeCreation
	}

	return DateTypeBooking
}

func ParseSortField(raw string) SortField {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SortFieldBookingDate), "booking":
		return SortFieldBookingDate
	default:
		return SortFieldCreationDate
	}
}

func ParseSortDirection(raw string) SortDirection {
	if SortDirection(strings.ToLower(strings.TrimSpace(raw))) == SortAsc {
		return SortAsc
	}

	return SortDesc
}

func isAll(raw string) bool {
	raw = strings.TrimSpace(raw)

	return raw == "" || strings.EqualFold(raw, AllFlag)
}

// MatchSearch is a case-insensitive substring match over the customer, order and service fields.
// The status is deliberately not searched.
func MatchSearch(booking Booking, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	fields := [...]string{
		booking.Name,
		booking.Email,
		booking.PhoneNo,
		strconv.FormatInt(booking.BookingNo, 10),
		booking.Address,
		booking.Purpose,
		booking.ServiceName,
		booking.ProductName,
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}

// MatchStatus compares canonical codes, so a code, a display name or an alias all select the same
// bookings.
func MatchStatus(booking Booking, selected string, normalizer *model.Normalizer) bool {
	if isAll(selected) {
		return true
	}

	return normalizer.Equal(booking.Status, selected)
}

// MatchArtist compares the numeric artist id. An unparsable selector matches nothing.
func MatchArtist(booking Booking, selected string) bool {
	if isAll(selected) {
		return true
	}

	id, err := strconv.ParseInt(strings.TrimSpace(selected), 10, 64)
	if err != nil {
		return false
	}

	return booking.ArtistID != nil && *booking.ArtistID == id
}

// MatchDateRange checks the chosen date field against inclusive day bounds. Unparsable bounds are
// ignored; an unparsable booking date fails whenever a bound is active.
func MatchDateRange(booking Booking, start, end string, dateType DateType) bool {
	startDate, hasStart := ParseDate(start)
	endDate, hasEnd := ParseDate(end)

	if !hasStart && !hasEnd {
		return true
	}

	raw := booking.BookingDate
	if dateType == DateTypeCreation {
		raw = booking.CreatedAt
	}

	value, ok := ParseDate(raw)
	if !ok {
		return false
	}

	day := dayKey(value)

	if hasStart && day < dayKey(startDate) {
		return false
	}

	if hasEnd && day > dayKey(endDate) {
		return false
	}

	return true
}

// Match applies every predicate of state to booking.
func Match(booking Booking, state FilterState, normalizer *model.Normalizer) bool {
	return MatchSearch(booking, state.Search) &&
		MatchStatus(booking, state.Status, normalizer) &&
		MatchDateRange(booking, state.StartDate, state.EndDate, state.DateType) &&
		MatchArtist(booking, state.Artist)
}

// Filter keeps the bookings matching state, preserving input order.
func Filter(bookings []Booking, state FilterState, normalizer *model.Normalizer) []Booking {
	res := make([]Booking, 0, len(bookings))

	for _, booking := range bookings {
		if Match(booking, state, normalizer) {
			res = append(res, booking)
		}
	}

	return res
}
