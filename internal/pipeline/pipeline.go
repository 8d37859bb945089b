package pipeline

import (
	"context"
	"salon/internal/domains/status/model"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Derive filters then sorts bookings. It does not modify its input.
func Derive(bookings []Booking, state FilterState, normalizer *model.Normalizer) []Booking {
	return Sort(Filter(bookings, state, normalizer), state.SortField, state.SortDirection)
}

type memo struct {
	generation uint64
	state      FilterState
	result     []Booking
}

// Pipeline owns one filter state over one booking collection. Setters change a single field;
// ClearFilters and Apply replace the whole state at once so no reader sees a half-applied change.
// The derived list is recomputed lazily and memoized until the state or the collection changes.
type Pipeline struct {
	mu sync.Mutex

	fetcher    ArtistFetcher
	normalizer *model.Normalizer

	bookings   []Booking
	generation uint64
	state      FilterState
	memo       *memo

	lookup           Lookup
	lookupPendingKey string
	lookupRequested  uint64
}

func New(fetcher ArtistFetcher, normalizer *model.Normalizer) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		normalizer: normalizer,
		state:      DefaultFilterState(),
		lookup:     BuildLookup(nil, nil),
	}
}

// SetBookings replaces the collection and refreshes the artist lookup when the set of referenced
// artists changed.
func (p *Pipeline) SetBookings(ctx context.Context, bookings []Booking) {
	p.mu.Lock()
	p.bookings = slices.Clone(bookings)
	p.generation++
	p.memo = nil
	p.mu.Unlock()

	p.RefreshArtists(ctx)
}

// RefreshArtists re-resolves artist names. Each request is tagged with a generation; a response
// arriving after a newer request was issued is dropped. A request for the same artist set as the
// latest one issued is skipped, since that one already carries the newest generation.
func (p *Pipeline) RefreshArtists(ctx context.Context) {
	p.mu.Lock()

	bookings := p.bookings
	key := artistKey(ArtistIDs(bookings))

	if key == p.lookupPendingKey && p.lookupRequested > 0 {
		p.mu.Unlock()

		return
	}

	p.lookupRequested++
	p.lookupPendingKey = key
	generation := p.lookupRequested
	p.mu.Unlock()

	lookup := ResolveLookup(ctx, p.fetcher, bookings)

	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.lookupRequested {
		return
	}

	p.lookup = lookup
}

func artistKey(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	return strings.Join(parts, ",")
}

func (p *Pipeline) SetNormalizer(normalizer *model.Normalizer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.normalizer = normalizer
	p.memo = nil
}

func (p *Pipeline) update(fn func(state *FilterState)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fn(&p.state)
}

func (p *Pipeline) SetSearch(search string) {
	p.update(func(state *FilterState) { state.Search = search })
}

func (p *Pipeline) SetStatus(status string) {
	p.update(func(state *FilterState) { state.Status = status })
}

func (p *Pipeline) SetArtist(artist string) {
	p.update(func(state *FilterState) { state.Artist = artist })
}

func (p *Pipeline) SetStartDate(date string) {
	p.update(func(state *FilterState) { state.StartDate = date })
}

func (p *Pipeline) SetEndDate(date string) {
	p.update(func(state *FilterState) { state.EndDate = date })
}

func (p *Pipeline) SetDateType(dateType DateType) {
	p.update(func(state *FilterState) { state.DateType = dateType })
}

func (p *Pipeline) SetSortField(field SortField) {
	p.update(func(state *FilterState) { state.SortField = field })
}

func (p *Pipeline) SetSortDirection(direction SortDirection) {
	p.update(func(state *FilterState) { state.SortDirection = direction })
}

// Apply replaces the whole filter state in one step.
func (p *Pipeline) Apply(state FilterState) {
	p.update(func(current *FilterState) { *current = state })
}

// ClearFilters restores every field to its default in one step.
func (p *Pipeline) ClearFilters() {
	p.Apply(DefaultFilterState())
}

func (p *Pipeline) Filters() FilterState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

// Result returns the filtered and sorted bookings for the current state.
func (p *Pipeline) Result() []Booking {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.memo == nil || p.memo.generation != p.generation || p.memo.state != p.state {
		p.memo = &memo{
			generation: p.generation,
			state:      p.state,
			result:     Derive(p.bookings, p.state, p.normalizer),
		}
	}

	return slices.Clone(p.memo.result)
}

func (p *Pipeline) ArtistOptions() []ArtistOption {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lookup.Options()
}

func (p *Pipeline) ArtistName(id *int64) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lookup.Name(id)
}

func (p *Pipeline) StatusOptions() []model.StatusOption {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.normalizer.Options()
}
