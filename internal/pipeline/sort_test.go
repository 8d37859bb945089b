package pipeline_test

import (
	"salon/internal/pipeline"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSort_CreationAscending(t *testing.T) {
	bookings := []pipeline.Booking{
		{ID: 2, CreatedAt: "2024-01-02"},
		{ID: 1, CreatedAt: "2024-01-01"},
	}

	got := pipeline.Sort(bookings, pipeline.SortFieldCreationDate, pipeline.SortAsc)

	assert.Equal(t, []int64{1, 2}, ids(got))
	assert.Equal(t, []int64{2, 1}, ids(bookings), "input must not be reordered")
}

func TestSort_BookingDateDescending(t *testing.T) {
	bookings := []pipeline.Booking{
		{ID: 1, BookingDate: "2024-01-05"},
		{ID: 2, BookingDate: "2024-02-10"},
		{ID: 3, BookingDate: "2023-12-31"},
	}

	got := pipeline.Sort(bookings, pipeline.SortFieldBookingDate, pipeline.SortDesc)

	assert.Equal(t, []int64{2, 1, 3}, ids(got))
}

func TestSort_StableOnTies(t *testing.T) {
	bookings := []pipeline.Booking{
		{ID: 1, CreatedAt: "2024-01-01T10:00:00Z"},
		{ID: 2, CreatedAt: "2024-01-01T10:00:00Z"},
		{ID: 3, CreatedAt: "2024-01-01T09:00:00Z"},
		{ID: 4, CreatedAt: "2024-01-01T10:00:00Z"},
	}

	asc := pipeline.Sort(bookings, pipeline.SortFieldCreationDate, pipeline.SortAsc)
	desc := pipeline.Sort(bookings, pipeline.SortFieldCreationDate, pipeline.SortDesc)

	assert.Equal(t, []int64{3, 1, 2, 4}, ids(asc))
	assert.Equal(t, []int64{1, 2, 4, 3}, ids(desc))
	assert.Equal(t, asc, pipeline.Sort(asc, pipeline.SortFieldCreationDate, pipeline.SortAsc))
	assert.Equal(t, desc, pipeline.Sort(desc, pipeline.SortFieldCreationDate, pipeline.SortDesc))
}

func TestSort_MalformedDatesAreOldest(t *testing.T) {
	bookings := []pipeline.Booking{
		{ID: 1, BookingDate: "2024-03-01"},
		{ID: 2, BookingDate: "31/12/2024"},
		{ID: 3, BookingDate: ""},
		{ID: 4, BookingDate: "2024-01-01"},
	}

	asc := pipeline.Sort(bookings, pipeline.SortFieldBookingDate, pipeline.SortAsc)
	desc := pipeline.Sort(bookings, pipeline.SortFieldBookingDate, pipeline.SortDesc)

	assert.Equal(t, []int64{2, 3, 4, 1}, ids(asc))
	assert.Equal(t, []int64{1, 4, 2, 3}, ids(desc))
}

func TestParseDate(t *testing.T) {
	for _, raw := range []string{
		"2024-01-05",
		"2024-01-05T10:11:12Z",
		"2024-01-05T10:11:12.123456+07:00",
		"2024-01-05 10:11:12",
		"2024-01-05T10:11:12",
	} {
		parsed, ok := pipeline.ParseDate(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, 5, parsed.Day(), raw)
	}

	_, ok := pipeline.ParseDate("05-01-2024")
	assert.False(t, ok)
}
