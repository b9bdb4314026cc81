package testutil

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"songlibrary/internal/models"
	"songlibrary/internal/query"
)

// MemorySongRepository is an in-memory SongRepository for tests. It interprets
// the same query descriptors the Mongo implementation sends to the store, so
// handler tests exercise the full filter/sort/paginate contract.
type MemorySongRepository struct {
	mu    sync.Mutex
	songs []*models.Song
}

// NewMemorySongRepository creates a repository pre-populated with seed songs
func NewMemorySongRepository(seed ...*models.Song) *MemorySongRepository {
	return &MemorySongRepository{songs: append([]*models.Song{}, seed...)}
}

func (r *MemorySongRepository) List(_ context.Context, q query.ListQuery) ([]*models.Song, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*models.Song, 0, len(r.songs))
	for _, song := range r.songs {
		if matchFilter(song, q.Filter) {
			matched = append(matched, song)
		}
	}
	total := int64(len(matched))

	sortSongs(matched, q.Sort)

	start := q.Skip
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *MemorySongRepository) FindByID(_ context.Context, id string) (*models.Song, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSongNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, song := range r.songs {
		if song.ID == objectID {
			return song, nil
		}
	}
	return nil, models.ErrSongNotFound
}

func (r *MemorySongRepository) Insert(_ context.Context, song *models.Song) error {
	now := time.Now()
	song.ID = primitive.NewObjectID()
	song.CreatedAt = now
	song.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	r.songs = append(r.songs, song)
	return nil
}

func (r *MemorySongRepository) Replace(_ context.Context, id string, input *models.SongInput) (*models.Song, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSongNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, song := range r.songs {
		if song.ID == objectID {
			song.Title = input.Title
			song.Artist = input.Artist
			song.Album = input.Album
			song.Genre = input.Genre
			song.UpdatedAt = time.Now()
			return song, nil
		}
	}
	return nil, models.ErrSongNotFound
}

func (r *MemorySongRepository) DeleteByID(_ context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrSongNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, song := range r.songs {
		if song.ID == objectID {
			r.songs = append(r.songs[:i], r.songs[i+1:]...)
			return nil
		}
	}
	return models.ErrSongNotFound
}

func (r *MemorySongRepository) Overview(_ context.Context) (*models.LibraryOverview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	artists := map[string]bool{}
	albums := map[string]bool{}
	genres := map[string]bool{}
	for _, song := range r.songs {
		artists[song.Artist] = true
		albums[song.Album] = true
		genres[song.Genre] = true
	}
	return &models.LibraryOverview{
		SongsCount:   int64(len(r.songs)),
		ArtistsCount: len(artists),
		AlbumsCount:  len(albums),
		GenresCount:  len(genres),
	}, nil
}

func (r *MemorySongRepository) CountByGenre(_ context.Context) ([]models.GenreCount, error) {
	counts := r.groupCounts(func(s *models.Song) string { return s.Genre })

	rows := make([]models.GenreCount, 0, len(counts))
	for genre, n := range counts {
		rows = append(rows, models.GenreCount{Genre: genre, SongsCount: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SongsCount != rows[j].SongsCount {
			return rows[i].SongsCount > rows[j].SongsCount
		}
		return rows[i].Genre < rows[j].Genre
	})
	return rows, nil
}

func (r *MemorySongRepository) CountByArtist(_ context.Context) ([]models.ArtistCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := map[string]int64{}
	albums := map[string]map[string]bool{}
	for _, song := range r.songs {
		artist := strings.ToLower(song.Artist)
		counts[artist]++
		if albums[artist] == nil {
			albums[artist] = map[string]bool{}
		}
		albums[artist][strings.ToLower(song.Album)] = true
	}

	rows := make([]models.ArtistCount, 0, len(counts))
	for artist, n := range counts {
		rows = append(rows, models.ArtistCount{
			Artist:      artist,
			SongsCount:  n,
			AlbumsCount: int64(len(albums[artist])),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SongsCount != rows[j].SongsCount {
			return rows[i].SongsCount > rows[j].SongsCount
		}
		return rows[i].Artist < rows[j].Artist
	})
	return rows, nil
}

func (r *MemorySongRepository) CountByAlbum(_ context.Context) ([]models.AlbumCount, error) {
	counts := r.groupCounts(func(s *models.Song) string { return s.Album })

	rows := make([]models.AlbumCount, 0, len(counts))
	for album, n := range counts {
		rows = append(rows, models.AlbumCount{Album: album, SongsCount: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SongsCount != rows[j].SongsCount {
			return rows[i].SongsCount > rows[j].SongsCount
		}
		return rows[i].Album < rows[j].Album
	})
	return rows, nil
}

func (r *MemorySongRepository) DistinctValues(_ context.Context, field string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw := make([]interface{}, 0, len(r.songs))
	for _, song := range r.songs {
		value, err := fieldValue(song, field)
		if err != nil {
			return nil, err
		}
		raw = append(raw, value)
	}
	return models.CleanDistinct(raw), nil
}

func (r *MemorySongRepository) groupCounts(key func(*models.Song) string) map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := map[string]int64{}
	for _, song := range r.songs {
		counts[strings.ToLower(key(song))]++
	}
	return counts
}

// matchFilter interprets the bson filter the query builder produced
func matchFilter(song *models.Song, filter bson.M) bool {
	for key, value := range filter {
		if key == "$or" {
			clauses := value.(bson.A)
			any := false
			for _, clause := range clauses {
				if matchFilter(song, clause.(bson.M)) {
					any = true
					break
				}
			}
			if !any {
				return false
			}
			continue
		}

		pattern := value.(primitive.Regex)
		field, err := fieldValue(song, key)
		if err != nil {
			return false
		}
		if !compileRegex(pattern).MatchString(field) {
			return false
		}
	}
	return true
}

func compileRegex(r primitive.Regex) *regexp.Regexp {
	pattern := r.Pattern
	if strings.Contains(r.Options, "i") {
		pattern = "(?i)" + pattern
	}
	return regexp.MustCompile(pattern)
}

func fieldValue(song *models.Song, field string) (string, error) {
	switch field {
	case "title":
		return song.Title, nil
	case "artist":
		return song.Artist, nil
	case "album":
		return song.Album, nil
	case "genre":
		return song.Genre, nil
	}
	return "", fmt.Errorf("field %q does not support distinct values", field)
}

func sortSongs(songs []*models.Song, spec bson.D) {
	if len(spec) == 0 {
		return
	}
	key := spec[0].Key
	asc := spec[0].Value == 1

	sort.SliceStable(songs, func(i, j int) bool {
		less := songLess(songs[i], songs[j], key)
		if asc {
			return less
		}
		return songLess(songs[j], songs[i], key)
	})
}

func songLess(a, b *models.Song, key string) bool {
	switch key {
	case "title":
		return a.Title < b.Title
	case "artist":
		return a.Artist < b.Artist
	case "album":
		return a.Album < b.Album
	case "genre":
		return a.Genre < b.Genre
	case "updatedAt":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
