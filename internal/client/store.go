package client

import (
	"context"
	"sync"
	"time"
)

// Status is the lifecycle state of a fetched resource
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// Resource holds one fetched value and its lifecycle state. A failure keeps
// the previously loaded data.
type Resource[T any] struct {
	Status Status
	Data   T
	Err    string
}

// State is a snapshot of everything the presentation layer renders
type State struct {
	Filters Filters
	// QueryInput is the visible free-text value; it updates on every
	// keystroke while Filters.Q lags behind by the debounce interval
	QueryInput string

	Songs      Resource[SongPage]
	Overview   Resource[Overview]
	Breakdowns Resource[Breakdowns]
}

// resource identifies a fetchable resource for supersession bookkeeping
type resource int

const (
	resSongs resource = iota
	resOverview
	resBreakdowns
	resourceCount
)

// DefaultDebounce is the quiet period after the last keystroke before the
// free-text filter is applied.
const DefaultDebounce = 300 * time.Millisecond

// Option configures a Store
type Option func(*Store)

// WithDebounce overrides the free-text debounce interval
func WithDebounce(d time.Duration) Option {
	return func(s *Store) { s.debounce = d }
}

// Store owns the client-side state. Intents are dispatched onto a channel and
// handled by a single goroutine; fetch completions come back on the same
// channel tagged with a generation counter, so only the most recently issued
// fetch for a resource may update visible state.
type Store struct {
	api      *API
	debounce time.Duration

	actions chan action
	done    chan struct{}
	closing sync.Once

	mu    sync.RWMutex
	state State
	subs  []chan struct{}

	// dispatcher-owned, never touched outside the run goroutine
	gen        [resourceCount]uint64
	queryTimer *time.Timer
}

// NewStore creates a Store and starts its dispatcher
func NewStore(api *API, opts ...Option) *Store {
	s := &Store{
		api:      api,
		debounce: DefaultDebounce,
		actions:  make(chan action, 16),
		done:     make(chan struct{}),
		state: State{
			Filters:    DefaultFilters(),
			Songs:      Resource[SongPage]{Status: StatusIdle},
			Overview:   Resource[Overview]{Status: StatusIdle},
			Breakdowns: Resource[Breakdowns]{Status: StatusIdle},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// Close stops the dispatcher. Pending completions are dropped.
func (s *Store) Close() {
	s.closing.Do(func() { close(s.done) })
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel that receives a signal after every state
// change. The signal is coalesced: a slow subscriber sees at least one.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// Intents

// SetQuery updates the visible free-text input immediately; the filter (and
// fetch) applies after the debounce quiet period.
func (s *Store) SetQuery(q string) { s.send(setQuery{q}) }

// SetGenre applies an exact-match genre filter and resets to page 1
func (s *Store) SetGenre(genre string) { s.send(setGenre{genre}) }

// SetArtist applies an exact-match artist filter and resets to page 1
func (s *Store) SetArtist(artist string) { s.send(setArtist{artist}) }

// SetAlbum applies an exact-match album filter and resets to page 1
func (s *Store) SetAlbum(album string) { s.send(setAlbum{album}) }

// SetSort changes the ordering; the current page is kept
func (s *Store) SetSort(sortBy, sortOrder string) { s.send(setSort{sortBy, sortOrder}) }

// SetPage moves to another page
func (s *Store) SetPage(page int) { s.send(setPage{page}) }

// SetLimit changes the page size and resets to page 1
func (s *Store) SetLimit(limit int) { s.send(setLimit{limit}) }

// Refresh refetches the song list and both statistics views
func (s *Store) Refresh() { s.send(refresh{}) }

// CreateSong inserts a song; on success all resources are refetched
func (s *Store) CreateSong(input SongInput) { s.send(createSong{input}) }

// UpdateSong replaces a song; on success all resources are refetched
func (s *Store) UpdateSong(id string, input SongInput) { s.send(updateSong{id, input}) }

// DeleteSong removes a song; on success all resources are refetched
func (s *Store) DeleteSong(id string) { s.send(deleteSong{id}) }

type action interface{ isAction() }

type setQuery struct{ value string }
type querySettled struct{ value string }
type setGenre struct{ value string }
type setArtist struct{ value string }
type setAlbum struct{ value string }
type setSort struct{ sortBy, sortOrder string }
type setPage struct{ page int }
type setLimit struct{ limit int }
type refresh struct{}
type createSong struct{ input SongInput }
type updateSong struct {
	id    string
	input SongInput
}
type deleteSong struct{ id string }

type songsLoaded struct {
	gen  uint64
	page *SongPage
	err  error
}
type overviewLoaded struct {
	gen  uint64
	data *Overview
	err  error
}
type breakdownsLoaded struct {
	gen  uint64
	data *Breakdowns
	err  error
}
type mutationDone struct{ err error }

func (setQuery) isAction()         {}
func (querySettled) isAction()     {}
func (setGenre) isAction()         {}
func (setArtist) isAction()        {}
func (setAlbum) isAction()         {}
func (setSort) isAction()          {}
func (setPage) isAction()          {}
func (setLimit) isAction()         {}
func (refresh) isAction()          {}
func (createSong) isAction()       {}
func (updateSong) isAction()       {}
func (deleteSong) isAction()       {}
func (songsLoaded) isAction()      {}
func (overviewLoaded) isAction()   {}
func (breakdownsLoaded) isAction() {}
func (mutationDone) isAction()     {}

func (s *Store) send(a action) {
	select {
	case s.actions <- a:
	case <-s.done:
	}
}

func (s *Store) run() {
	for {
		select {
		case <-s.done:
			if s.queryTimer != nil {
				s.queryTimer.Stop()
			}
			return
		case a := <-s.actions:
			s.handle(a)
		}
	}
}

func (s *Store) handle(a action) {
	switch a := a.(type) {
	case setQuery:
		s.update(func(st *State) { st.QueryInput = a.value })
		if s.queryTimer != nil {
			s.queryTimer.Stop()
		}
		value := a.value
		s.queryTimer = time.AfterFunc(s.debounce, func() {
			s.send(querySettled{value})
		})

	case querySettled:
		s.update(func(st *State) {
			st.Filters.Q = a.value
			st.Filters.Page = 1
		})
		s.fetchSongs()

	case setGenre:
		s.update(func(st *State) {
			st.Filters.Genre = a.value
			st.Filters.Page = 1
		})
		s.fetchSongs()

	case setArtist:
		s.update(func(st *State) {
			st.Filters.Artist = a.value
			st.Filters.Page = 1
		})
		s.fetchSongs()

	case setAlbum:
		s.update(func(st *State) {
			st.Filters.Album = a.value
			st.Filters.Page = 1
		})
		s.fetchSongs()

	case setSort:
		// sort changes keep the current page
		s.update(func(st *State) {
			st.Filters.SortBy = a.sortBy
			st.Filters.SortOrder = a.sortOrder
		})
		s.fetchSongs()

	case setPage:
		s.update(func(st *State) { st.Filters.Page = a.page })
		s.fetchSongs()

	case setLimit:
		s.update(func(st *State) {
			st.Filters.Limit = a.limit
			st.Filters.Page = 1
		})
		s.fetchSongs()

	case refresh:
		s.fetchSongs()
		s.fetchOverview()
		s.fetchBreakdowns()

	case createSong:
		go func() {
			_, err := s.api.CreateSong(context.Background(), a.input)
			s.send(mutationDone{err})
		}()

	case updateSong:
		go func() {
			_, err := s.api.UpdateSong(context.Background(), a.id, a.input)
			s.send(mutationDone{err})
		}()

	case deleteSong:
		go func() {
			s.send(mutationDone{s.api.DeleteSong(context.Background(), a.id)})
		}()

	case mutationDone:
		if a.err != nil {
			s.update(func(st *State) {
				st.Songs.Status = StatusFailed
				st.Songs.Err = a.err.Error()
			})
			return
		}
		// no optimistic patching: re-derive everything from the store
		s.fetchSongs()
		s.fetchOverview()
		s.fetchBreakdowns()

	case songsLoaded:
		if a.gen != s.gen[resSongs] {
			return // superseded by a newer fetch
		}
		s.update(func(st *State) {
			if a.err != nil {
				st.Songs.Status = StatusFailed
				st.Songs.Err = a.err.Error()
				return
			}
			st.Songs = Resource[SongPage]{Status: StatusLoaded, Data: *a.page}
		})

	case overviewLoaded:
		if a.gen != s.gen[resOverview] {
			return
		}
		s.update(func(st *State) {
			if a.err != nil {
				st.Overview.Status = StatusFailed
				st.Overview.Err = a.err.Error()
				return
			}
			st.Overview = Resource[Overview]{Status: StatusLoaded, Data: *a.data}
		})

	case breakdownsLoaded:
		if a.gen != s.gen[resBreakdowns] {
			return
		}
		s.update(func(st *State) {
			if a.err != nil {
				st.Breakdowns.Status = StatusFailed
				st.Breakdowns.Err = a.err.Error()
				return
			}
			st.Breakdowns = Resource[Breakdowns]{Status: StatusLoaded, Data: *a.data}
		})
	}
}

func (s *Store) fetchSongs() {
	s.gen[resSongs]++
	gen := s.gen[resSongs]

	var filters Filters
	s.update(func(st *State) {
		st.Songs.Status = StatusLoading
		st.Songs.Err = ""
		filters = st.Filters
	})

	go func() {
		page, err := s.api.ListSongs(context.Background(), filters)
		s.send(songsLoaded{gen: gen, page: page, err: err})
	}()
}

func (s *Store) fetchOverview() {
	s.gen[resOverview]++
	gen := s.gen[resOverview]

	s.update(func(st *State) {
		st.Overview.Status = StatusLoading
		st.Overview.Err = ""
	})

	go func() {
		data, err := s.api.GetOverview(context.Background())
		s.send(overviewLoaded{gen: gen, data: data, err: err})
	}()
}

func (s *Store) fetchBreakdowns() {
	s.gen[resBreakdowns]++
	gen := s.gen[resBreakdowns]

	s.update(func(st *State) {
		st.Breakdowns.Status = StatusLoading
		st.Breakdowns.Err = ""
	})

	go func() {
		data, err := s.api.GetBreakdowns(context.Background())
		s.send(breakdownsLoaded{gen: gen, data: data, err: err})
	}()
}

// update mutates state under the lock and notifies subscribers
func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
