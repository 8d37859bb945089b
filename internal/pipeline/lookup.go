package pipeline

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	UnknownArtist = "Unknown Artist"
	NotAssigned   = "Not assigned"
)

// Artist carries only what the list needs to label and filter by artist.
type Artist struct {
	ID        int64
	FirstName string
	LastName  string
	EmpCode   string
	Active    bool
	Group     string
}

// ArtistOption is one entry of the artist filter control.
type ArtistOption struct {
	Value   int64  `json:"value"`
	Label   string `json:"label"`
	EmpCode string `json:"emp_code"`
}

// ArtistFetcher resolves artist ids. Missing ids are simply absent from the result.
type ArtistFetcher interface {
	FetchArtists(ctx context.Context, ids []int64) ([]Artist, error)
}

// Lookup maps artist ids referenced by a booking set to display names.
type Lookup struct {
	names   map[int64]string
	options []ArtistOption
}

func DisplayName(artist Artist) string {
	name := strings.TrimSpace(strings.TrimSpace(artist.FirstName) + " " + strings.TrimSpace(artist.LastName))
	if name == "" {
		return UnknownArtist
	}

	return name
}

// ArtistIDs returns the sorted distinct artist ids referenced by bookings.
func ArtistIDs(bookings []Booking) []int64 {
	ids := []int64{}

	for _, booking := range bookings {
		if booking.ArtistID != nil {
			ids = append(ids, *booking.ArtistID)
		}
	}

	slices.Sort(ids)

	return slices.Compact(ids)
}

// BuildLookup indexes artists, keeping only those referenced by bookings. Artists need not be
// active; deleted ones are just missing.
func BuildLookup(bookings []Booking, artists []Artist) Lookup {
	referenced := ArtistIDs(bookings)

	lookup := Lookup{
		names:   make(map[int64]string, len(referenced)),
		options: []ArtistOption{},
	}

	for _, artist := range artists {
		if _, found := slices.BinarySearch(referenced, artist.ID); !found {
			continue
		}

		if _, dup := lookup.names[artist.ID]; dup {
			continue
		}

		name := DisplayName(artist)

		lookup.names[artist.ID] = name
		lookup.options = append(lookup.options, ArtistOption{
			Value:   artist.ID,
			Label:   name,
			EmpCode: artist.EmpCode,
		})
	}

	slices.SortStableFunc(lookup.options, func(a, b ArtistOption) int {
		if c := strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)); c != 0 {
			return c
		}

		switch {
		case a.Value < b.Value:
			return -1
		case a.Value > b.Value:
			return 1
		default:
			return 0
		}
	})

	return lookup
}

// ResolveLookup fetches the artists referenced by bookings. A failing fetcher yields an empty
// lookup so the list still renders with "Not assigned" labels.
func ResolveLookup(ctx context.Context, fetcher ArtistFetcher, bookings []Booking) Lookup {
	ids := ArtistIDs(bookings)
	if len(ids) == 0 || fetcher == nil {
		return BuildLookup(bookings, nil)
	}

	artists, err := fetcher.FetchArtists(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Ints64("artist_ids", ids).Msg("artist lookup failed, rendering bookings without artist names")

		return BuildLookup(bookings, nil)
	}

	return BuildLookup(bookings, artists)
}

// Name resolves an artist id for display.
func (l Lookup) Name(id *int64) string {
	if id == nil {
		return NotAssigned
	}

	if name, ok := l.names[*id]; ok {
		return name
	}

	return NotAssigned
}

func (l Lookup) Options() []ArtistOption {
	if len(l.options) == 0 {
		return []ArtistOption{}
	}

	return slices.Clone(l.options)
}
