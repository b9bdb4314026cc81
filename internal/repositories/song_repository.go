package repositories

import (
	"context"

	"songlibrary/internal/models"
	"songlibrary/internal/query"
)

// SongRepository defines the interface for song data operations
type SongRepository interface {
	// List returns the matching page of songs and the total match count
	List(ctx context.Context, q query.ListQuery) ([]*models.Song, int64, error)
	FindByID(ctx context.Context, id string) (*models.Song, error)
	Insert(ctx context.Context, song *models.Song) error
	// Replace overwrites all four text fields of an existing song
	Replace(ctx context.Context, id string, input *models.SongInput) (*models.Song, error)
	DeleteByID(ctx context.Context, id string) error

	// Statistics, recomputed on demand from the store
	Overview(ctx context.Context) (*models.LibraryOverview, error)
	CountByGenre(ctx context.Context) ([]models.GenreCount, error)
	CountByArtist(ctx context.Context) ([]models.ArtistCount, error)
	CountByAlbum(ctx context.Context) ([]models.AlbumCount, error)
	DistinctValues(ctx context.Context, field string) ([]string, error)
}
