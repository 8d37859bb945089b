// Package pipeline derives the booking list shown to operators: it resolves artist names, applies
// the search/status/date/artist filters and orders the result. Everything except the artist fetch
// is pure and synchronous.
package pipeline

import (
	"strings"
	"time"
)

// Booking is the read-only view of one booking line item. Dates are kept as the strings the store
// produced so malformed values can be tolerated instead of rejected.
type Booking struct {
	ID          int64  `json:"id"`
	BookingNo   int64  `json:"booking_no"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNo     string `json:"phone_no"`
	Address     string `json:"address"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	CreatedAt   string `json:"created_at"`
	Status      string `json:"status"`
	ArtistID    *int64 `json:"artist_id"`
	Purpose     string `json:"purpose"`
	ServiceName string `json:"service_name"`
	SubService  string `json:"sub_service"`
	ProductName string `json:"product_name"`
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05.999999-07:00",
}

// ParseDate accepts a calendar date or a timestamp. ok is false for empty or malformed input.
func ParseDate(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// dayKey collapses a time to its calendar day, in the time's own location.
func dayKey(t time.Time) int {
	y, m, d := t.Date()

	return y*10000 + int(m)*100 + d
}
