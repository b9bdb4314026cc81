package client

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"songlibrary/internal/config"
	"songlibrary/internal/server"
	"songlibrary/internal/testutil"
)

// Runs the full stack: Store -> resty -> gin router -> repository.
func TestStoreAgainstRealServer(t *testing.T) {
	cfg := &config.Config{
		Port:       "0",
		GinMode:    gin.TestMode,
		CorsOrigin: "http://localhost:5173",
	}
	repo := testutil.NewMemorySongRepository(testutil.SeedSongs()...)
	srv := httptest.NewServer(server.New(cfg, repo).Router())
	defer srv.Close()

	store := NewStore(NewAPI(srv.URL), WithDebounce(20*time.Millisecond))
	defer store.Close()

	store.Refresh()
	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Songs.Status == StatusLoaded && st.Overview.Status == StatusLoaded &&
			st.Breakdowns.Status == StatusLoaded
	}, "initial load")

	st := store.Snapshot()
	assert.Equal(t, int64(20), st.Songs.Data.Total)
	assert.Equal(t, 13, st.Overview.Data.ArtistsCount)
	assert.Equal(t, 4, st.Overview.Data.GenresCount)

	// exact-match filter narrows the list and resets the page
	store.SetGenre("pop")
	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Songs.Status == StatusLoaded && st.Songs.Data.Total == 8
	}, "genre filter applied case-insensitively")

	// debounced free-text search on top of the genre filter
	store.SetQuery("billie")
	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Songs.Status == StatusLoaded && st.Songs.Data.Total == 3
	}, "free text combines with the genre filter")

	// a mutation re-derives everything from the store
	store.SetGenre("")
	store.SetQuery("")
	store.CreateSong(SongInput{Title: "Creep", Artist: "Radiohead", Album: "Pablo Honey", Genre: "Rock"})
	eventually(t, func() bool {
		st := store.Snapshot()
		return st.Overview.Status == StatusLoaded && st.Overview.Data.SongsCount == 21
	}, "overview reflects the insert after refetch")
}
