package dto

import (
	"salon/internal/pipeline"
	"time"

	"github.com/shopspring/decimal"
)

type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Badge  string `json:"badge"`
	Count  int    `json:"count"`
}

type ArtistSummary struct {
	ArtistID *int64          `json:"artist_id"`
	Name     string          `json:"name"`
	Bookings int             `json:"bookings"`
	Done     int             `json:"done"`
	Revenue  decimal.Decimal `json:"revenue" swaggertype:"string"`
}

// SummaryResponse aggregates the bookings left after applying Filters. Revenue only counts done
// line items.
type SummaryResponse struct {
	Filters       pipeline.FilterState `json:"filters"`
	TotalBookings int                  `json:"total_bookings"`
	TotalOrders   int                  `json:"total_orders"`
	ByStatus      []StatusCount        `json:"by_status"`
	ByArtist      []ArtistSummary      `json:"by_artist"`
	Revenue       decimal.Decimal      `json:"revenue" swaggertype:"string"`
}

type ExportResponse struct {
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}
