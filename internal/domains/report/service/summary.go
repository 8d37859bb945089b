package service

import (
	"salon/internal/domains/booking/model"
	"salon/internal/domains/report/model/dto"
	statusModel "salon/internal/domains/status/model"
	"salon/internal/pipeline"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// summarize aggregates rows, which are the pipeline's output joined back to the stored bookings.
// Status buckets follow the canonical status so spelling variants are counted together.
func summarize(rows []model.Booking, artistName func(id *int64) string, normalizer *statusModel.Normalizer) dto.SummaryResponse {
	res := dto.SummaryResponse{
		TotalBookings: len(rows),
		ByStatus:      []dto.StatusCount{},
		ByArtist:      []dto.ArtistSummary{},
		Revenue:       decimal.Zero,
	}

	orders := map[int64]struct{}{}
	statusIndex := map[statusModel.Code]int{}
	artistIndex := map[int64]int{}
	unassigned := -1

	for _, opt := range normalizer.Options() {
		code := statusModel.Code(opt.StatusCode)
		statusIndex[code] = len(res.ByStatus)
		res.ByStatus = append(res.ByStatus, dto.StatusCount{
			Status: opt.StatusCode,
			Label:  opt.StatusName,
			Badge:  normalizer.Badge(opt.StatusCode),
		})
	}

	for _, row := range rows {
		orders[row.BookingNo] = struct{}{}

		code := normalizer.Normalize(row.Status)

		idx, ok := statusIndex[code]
		if !ok {
			idx = len(res.ByStatus)
			statusIndex[code] = idx
			res.ByStatus = append(res.ByStatus, dto.StatusCount{
				Status: string(code),
				Label:  normalizer.Label(row.Status),
				Badge:  normalizer.Badge(row.Status),
			})
		}

		res.ByStatus[idx].Count++

		done := code == statusModel.CodeDone
		if done {
			res.Revenue = res.Revenue.Add(row.Total())
		}

		var summary *dto.ArtistSummary

		switch {
		case row.ArtistID == nil:
			if unassigned < 0 {
				unassigned = len(res.ByArtist)
				res.ByArtist = append(res.ByArtist, dto.ArtistSummary{Name: artistName(nil), Revenue: decimal.Zero})
			}

			summary = &res.ByArtist[unassigned]
		default:
			i, ok := artistIndex[*row.ArtistID]
			if !ok {
				i = len(res.ByArtist)
				artistIndex[*row.ArtistID] = i

				id := *row.ArtistID
				res.ByArtist = append(res.ByArtist, dto.ArtistSummary{ArtistID: &id, Name: artistName(&id), Revenue: decimal.Zero})
			}

			summary = &res.ByArtist[i]
		}

		summary.Bookings++

		if done {
			summary.Done++
			summary.Revenue = summary.Revenue.Add(row.Total())
		}
	}

	res.TotalOrders = len(orders)

	sortArtists(res.ByArtist)

	return res
}

// sortArtists orders by revenue, then booking count, then name.
func sortArtists(artists []dto.ArtistSummary) {
	slices.SortStableFunc(artists, func(a, b dto.ArtistSummary) int {
		if c := b.Revenue.Cmp(a.Revenue); c != 0 {
			return c
		}

		if a.Bookings != b.Bookings {
			return b.Bookings - a.Bookings
		}

		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}

// joinRows maps pipeline rows back to the stored bookings, keeping the pipeline's order.
func joinRows(derived []pipeline.Booking, bookings []model.Booking) []model.Booking {
	byID := make(map[int64]model.Booking, len(bookings))
	for _, booking := range bookings {
		byID[booking.ID] = booking
	}

	rows := make([]model.Booking, 0, len(derived))
	for _, row := range derived {
		if booking, ok := byID[row.ID]; ok {
			rows = append(rows, booking)
		}
	}

	return rows
}
