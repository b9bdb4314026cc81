package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"songlibrary/internal/models"
	"songlibrary/internal/query"
)

// MockSongRepository is a testify mock of repositories.SongRepository
type MockSongRepository struct {
	mock.Mock
}

func (m *MockSongRepository) List(ctx context.Context, q query.ListQuery) ([]*models.Song, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Song), args.Get(1).(int64), args.Error(2)
}

func (m *MockSongRepository) FindByID(ctx context.Context, id string) (*models.Song, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockSongRepository) Insert(ctx context.Context, song *models.Song) error {
	args := m.Called(ctx, song)
	return args.Error(0)
}

func (m *MockSongRepository) Replace(ctx context.Context, id string, input *models.SongInput) (*models.Song, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockSongRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSongRepository) Overview(ctx context.Context) (*models.LibraryOverview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryOverview), args.Error(1)
}

func (m *MockSongRepository) CountByGenre(ctx context.Context) ([]models.GenreCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GenreCount), args.Error(1)
}

func (m *MockSongRepository) CountByArtist(ctx context.Context) ([]models.ArtistCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ArtistCount), args.Error(1)
}

func (m *MockSongRepository) CountByAlbum(ctx context.Context) ([]models.AlbumCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AlbumCount), args.Error(1)
}

func (m *MockSongRepository) DistinctValues(ctx context.Context, field string) ([]string, error) {
	args := m.Called(ctx, field)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
