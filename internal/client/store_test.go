package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statsStub registers working stats endpoints on a mux
func statsStub(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats/overview", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Overview{SongsCount: 20, ArtistsCount: 13, AlbumsCount: 16, GenresCount: 4})
	})
	mux.HandleFunc("/api/stats/by-genre", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []GenreCount{{Genre: "pop", SongsCount: 8}})
	})
	mux.HandleFunc("/api/stats/by-artist", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []ArtistCount{{Artist: "ed sheeran", SongsCount: 3, AlbumsCount: 2}})
	})
	mux.HandleFunc("/api/stats/by-album", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []AlbumCount{{Album: "divide", SongsCount: 2}})
	})
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	assert.Eventually(t, cond, 3*time.Second, 10*time.Millisecond, msg)
}

func TestStoreRefreshLoadsAllResources(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, SongPage{
			Data:       []Song{{ID: "a1", Title: "Shape of You"}},
			Page:       1,
			Limit:      10,
			Total:      20,
			TotalPages: 2,
		})
	})
	statsStub(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL))
	defer store.Close()

	store.Refresh()

	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Songs.Status == StatusLoaded &&
			st.Overview.Status == StatusLoaded &&
			st.Breakdowns.Status == StatusLoaded
	}, "all resources should load")

	st := store.Snapshot()
	assert.Equal(t, int64(20), st.Songs.Data.Total)
	require.Len(t, st.Songs.Data.Data, 1)
	assert.Equal(t, "Shape of You", st.Songs.Data.Data[0].Title)
	assert.Equal(t, 13, st.Overview.Data.ArtistsCount)
	require.Len(t, st.Breakdowns.Data.ByGenre, 1)
	assert.Equal(t, int64(8), st.Breakdowns.Data.ByGenre[0].SongsCount)
}

func TestStoreDebouncesFreeTextInput(t *testing.T) {
	var calls int32
	var mu sync.Mutex
	var lastQ string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		mu.Lock()
		lastQ = r.URL.Query().Get("q")
		mu.Unlock()
		writeJSON(w, http.StatusOK, SongPage{Data: []Song{}, Page: 1, Limit: 10})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL), WithDebounce(60*time.Millisecond))
	defer store.Close()

	// three keystrokes within the quiet period produce a single fetch
	store.SetQuery("a")
	store.SetQuery("ab")
	store.SetQuery("abc")

	eventually(t, func() bool {
		return store.Snapshot().Songs.Status == StatusLoaded
	}, "debounced fetch should complete")

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	mu.Lock()
	assert.Equal(t, "abc", lastQ)
	mu.Unlock()

	st := store.Snapshot()
	assert.Equal(t, "abc", st.Filters.Q)
	assert.Equal(t, 1, st.Filters.Page)
}

func TestStoreQueryInputUpdatesBeforeDebounce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, SongPage{Data: []Song{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL), WithDebounce(time.Hour))
	defer store.Close()

	store.SetQuery("nirvana")

	eventually(t, func() bool {
		return store.Snapshot().QueryInput == "nirvana"
	}, "visible input should update immediately")
	assert.Empty(t, store.Snapshot().Filters.Q, "filter must wait for the quiet period")
}

func TestStoreSupersedesStaleFetches(t *testing.T) {
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "2" {
			<-release // hold the older request until after the newer lands
		}
		total, _ := strconv.ParseInt(page, 10, 64)
		writeJSON(w, http.StatusOK, SongPage{Data: []Song{}, Total: total})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL))
	defer store.Close()

	store.SetPage(2)
	store.SetPage(3)

	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Songs.Status == StatusLoaded && st.Songs.Data.Total == 3
	}, "newest fetch should land")

	close(release)
	time.Sleep(150 * time.Millisecond)

	st := store.Snapshot()
	assert.Equal(t, StatusLoaded, st.Songs.Status)
	assert.Equal(t, int64(3), st.Songs.Data.Total, "stale result must be discarded")
}

func TestStoreMutationTriggersFullRefetch(t *testing.T) {
	var songFetches, overviewFetches, genreFetches int32
	var mu sync.Mutex
	var created SongInput

	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			mu.Lock()
			_ = json.NewDecoder(r.Body).Decode(&created)
			mu.Unlock()
			writeJSON(w, http.StatusCreated, Song{ID: "new", Title: "Numb"})
			return
		}
		atomic.AddInt32(&songFetches, 1)
		writeJSON(w, http.StatusOK, SongPage{Data: []Song{}})
	})
	mux.HandleFunc("/api/stats/overview", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&overviewFetches, 1)
		writeJSON(w, http.StatusOK, Overview{})
	})
	mux.HandleFunc("/api/stats/by-genre", func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&genreFetches, 1)
		writeJSON(w, http.StatusOK, []GenreCount{})
	})
	mux.HandleFunc("/api/stats/by-artist", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []ArtistCount{})
	})
	mux.HandleFunc("/api/stats/by-album", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []AlbumCount{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL))
	defer store.Close()

	store.CreateSong(SongInput{Title: "Numb", Artist: "Linkin Park", Album: "Meteora", Genre: "Rock"})

	eventually(t, func() bool {
		return atomic.LoadInt32(&songFetches) == 1 &&
			atomic.LoadInt32(&overviewFetches) == 1 &&
			atomic.LoadInt32(&genreFetches) == 1
	}, "a successful mutation refetches the list and both stats views")

	mu.Lock()
	assert.Equal(t, "Numb", created.Title)
	mu.Unlock()
}

func TestStoreMutationFailureRetainsData(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, SongPage{Data: []Song{{ID: "a1"}}, Total: 5})
	})
	mux.HandleFunc("/api/songs/gone", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "store unavailable"})
	})
	statsStub(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL))
	defer store.Close()

	store.Refresh()
	eventually(t, func() bool {
		return store.Snapshot().Songs.Status == StatusLoaded
	}, "initial load")

	store.DeleteSong("gone")

	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Songs.Status == StatusFailed && st.Songs.Err == "store unavailable"
	}, "failure surfaces the server message")

	st := store.Snapshot()
	assert.Equal(t, int64(5), st.Songs.Data.Total, "prior data is not discarded")
}

func TestStorePageResetRules(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, SongPage{Data: []Song{}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL))
	defer store.Close()

	store.SetPage(5)
	eventually(t, func() bool { return store.Snapshot().Filters.Page == 5 }, "page applied")

	store.SetGenre("Rock")
	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Filters.Genre == "Rock" && st.Filters.Page == 1
	}, "filter change resets page")

	store.SetPage(3)
	eventually(t, func() bool { return store.Snapshot().Filters.Page == 3 }, "page applied again")

	store.SetSort("title", "asc")
	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Filters.SortBy == "title" && st.Filters.SortOrder == "asc"
	}, "sort applied")
	assert.Equal(t, 3, store.Snapshot().Filters.Page, "sort change keeps the page")

	store.SetLimit(50)
	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Filters.Limit == 50 && st.Filters.Page == 1
	}, "page size change resets page")
}

func TestAPIErrorPrefersServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/songs/missing", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Song not found"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	api := NewAPI(srv.URL)
	err := api.DeleteSong(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Song not found", err.Error())
}
