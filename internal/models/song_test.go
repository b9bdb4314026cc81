package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSongInputNormalize(t *testing.T) {
	in := SongInput{
		Title:  "  Shape of You ",
		Artist: "\tEd Sheeran\n",
		Album:  " Divide",
		Genre:  "Pop ",
	}
	in.Normalize()

	assert.Equal(t, "Shape of You", in.Title)
	assert.Equal(t, "Ed Sheeran", in.Artist)
	assert.Equal(t, "Divide", in.Album)
	assert.Equal(t, "Pop", in.Genre)
}

func TestSongInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		input     SongInput
		wantField []string
	}{
		{
			name:  "valid input",
			input: SongInput{Title: "Numb", Artist: "Linkin Park", Album: "Meteora", Genre: "Rock"},
		},
		{
			name:      "empty title",
			input:     SongInput{Title: "", Artist: "Linkin Park", Album: "Meteora", Genre: "Rock"},
			wantField: []string{"title"},
		},
		{
			name:      "whitespace-only artist",
			input:     SongInput{Title: "Numb", Artist: "   ", Album: "Meteora", Genre: "Rock"},
			wantField: []string{"artist"},
		},
		{
			name:      "title too long",
			input:     SongInput{Title: strings.Repeat("a", 201), Artist: "Linkin Park", Album: "Meteora", Genre: "Rock"},
			wantField: []string{"title"},
		},
		{
			name:      "all fields missing",
			input:     SongInput{},
			wantField: []string{"title", "artist", "album", "genre"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Normalize()
			err := tt.input.Validate()
			if len(tt.wantField) == 0 {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			require.Len(t, err.Details, len(tt.wantField))
			for i, field := range tt.wantField {
				assert.Equal(t, field, err.Details[i].Field)
			}
		})
	}
}

func TestSongInputValidateMaxLengthBoundary(t *testing.T) {
	in := SongInput{
		Title:  strings.Repeat("a", MaxFieldLength),
		Artist: "Artist",
		Album:  "Album",
		Genre:  "Genre",
	}
	assert.Nil(t, in.Validate())
}

func TestNewSong(t *testing.T) {
	song := NewSong("HUMBLE.", "Kendrick Lamar", "DAMN.", "Hip-Hop")

	assert.True(t, song.ID.IsZero())
	assert.Equal(t, "HUMBLE.", song.Title)
	assert.Equal(t, "Kendrick Lamar", song.Artist)
	assert.False(t, song.CreatedAt.IsZero())
	assert.False(t, song.UpdatedAt.Before(song.CreatedAt))
}
