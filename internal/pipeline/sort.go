package pipeline

import (
	"slices"
	"time"
)

type sortKey struct {
	valid bool
	at    time.Time
}

func compareKeys(a, b sortKey) int {
	switch {
	case !a.valid && !b.valid:
		return 0
	case !a.valid:
		return -1
	case !b.valid:
		return 1
	default:
		return a.at.Compare(b.at)
	}
}

// Sort orders bookings by the chosen date field. Equal keys keep their input order in both
// directions, and malformed dates sort as the oldest value.
func Sort(bookings []Booking, field SortField, direction SortDirection) []Booking {
	type keyed struct {
		booking Booking
		key     sortKey
	}

	items := make([]keyed, len(bookings))

	for i, booking := range bookings {
		raw := booking.CreatedAt
		if field == SortFieldBookingDate {
			raw = booking.BookingDate
		}

		at, ok := ParseDate(raw)
		items[i] = keyed{booking: booking, key: sortKey{valid: ok, at: at}}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if direction == SortAsc {
			return compareKeys(a.key, b.key)
		}

		return compareKeys(b.key, a.key)
	})

	res := make([]Booking, len(items))
	for i, item := range items {
		res[i] = item.booking
	}

	return res
}
