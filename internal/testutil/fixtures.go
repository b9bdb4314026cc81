package testutil

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"songlibrary/internal/models"
)

// SongBuilder provides a fluent interface for creating test songs
type SongBuilder struct {
	song *models.Song
}

// NewSongBuilder creates a new song builder with default values
func NewSongBuilder() *SongBuilder {
	return &SongBuilder{
		song: models.NewSong("Test Song", "Test Artist", "Test Album", "Test Genre"),
	}
}

// WithID sets the song ID
func (b *SongBuilder) WithID(id string) *SongBuilder {
	objID, _ := primitive.ObjectIDFromHex(id)
	b.song.ID = objID
	return b
}

// WithTitle sets the song title
func (b *SongBuilder) WithTitle(title string) *SongBuilder {
	b.song.Title = title
	return b
}

// WithArtist sets the song artist
func (b *SongBuilder) WithArtist(artist string) *SongBuilder {
	b.song.Artist = artist
	return b
}

// WithAlbum sets the song album
func (b *SongBuilder) WithAlbum(album string) *SongBuilder {
	b.song.Album = album
	return b
}

// WithGenre sets the song genre
func (b *SongBuilder) WithGenre(genre string) *SongBuilder {
	b.song.Genre = genre
	return b
}

// WithCreatedAt sets the creation timestamp
func (b *SongBuilder) WithCreatedAt(t time.Time) *SongBuilder {
	b.song.CreatedAt = t
	return b
}

// Build returns the constructed song
func (b *SongBuilder) Build() *models.Song {
	return b.song
}

// SeedSongs returns the canonical 20-song fixture set
func SeedSongs() []*models.Song {
	samples := []struct {
		title, artist, album, genre string
	}{
		{"Shape of You", "Ed Sheeran", "Divide", "Pop"},
		{"Blinding Lights", "The Weeknd", "After Hours", "R&B"},
		{"Lose Yourself", "Eminem", "8 Mile", "Hip-Hop"},
		{"Billie Jean", "Michael Jackson", "Thriller", "Pop"},
		{"Smells Like Teen Spirit", "Nirvana", "Nevermind", "Rock"},
		{"Thinking Out Loud", "Ed Sheeran", "X", "Pop"},
		{"Starboy", "The Weeknd", "Starboy", "R&B"},
		{"HUMBLE.", "Kendrick Lamar", "DAMN.", "Hip-Hop"},
		{"Come As You Are", "Nirvana", "Nevermind", "Rock"},
		{"Beat It", "Michael Jackson", "Thriller", "Pop"},
		{"Bad Guy", "Billie Eilish", "When We All Fall Asleep, Where Do We Go?", "Pop"},
		{"Levitating", "Dua Lipa", "Future Nostalgia", "Pop"},
		{"Thunderstruck", "AC/DC", "The Razors Edge", "Rock"},
		{"Numb", "Linkin Park", "Meteora", "Rock"},
		{"Hey Ya!", "Outkast", "Speakerboxxx/The Love Below", "Hip-Hop"},
		{"Save Your Tears", "The Weeknd", "After Hours", "R&B"},
		{"Perfect", "Ed Sheeran", "Divide", "Pop"},
		{"Rockstar", "Post Malone", "Beerbongs & Bentleys", "Hip-Hop"},
		{"Billie Bossa Nova", "Billie Eilish", "Happier Than Ever", "Pop"},
		{"All of the Lights", "Kanye West", "My Beautiful Dark Twisted Fantasy", "Hip-Hop"},
	}

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	songs := make([]*models.Song, len(samples))
	for i, s := range samples {
		songs[i] = &models.Song{
			ID:        primitive.NewObjectID(),
			Title:     s.title,
			Artist:    s.artist,
			Album:     s.album,
			Genre:     s.genre,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return songs
}
