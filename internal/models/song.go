package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxFieldLength is the maximum length of each song text field after trimming.
const MaxFieldLength = 200

// Song represents a song record in the library
type Song struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Artist    string             `bson:"artist" json:"artist"`
	Album     string             `bson:"album" json:"album"`
	Genre     string             `bson:"genre" json:"genre"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewSong creates a new Song with store-assigned timestamps
func NewSong(title, artist, album, genre string) *Song {
	now := time.Now()
	return &Song{
		Title:     title,
		Artist:    artist,
		Album:     album,
		Genre:     genre,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SongInput is the request body for creating or replacing a song.
// All four fields are required; there is no partial update.
type SongInput struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
}

// Normalize trims leading and trailing whitespace from every field
func (in *SongInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Artist = strings.TrimSpace(in.Artist)
	in.Album = strings.TrimSpace(in.Album)
	in.Genre = strings.TrimSpace(in.Genre)
}

// Validate checks field presence and length after normalization.
// Returns nil when the input is valid.
func (in *SongInput) Validate() *ValidationError {
	var details []FieldError
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"artist", in.Artist},
		{"album", in.Album},
		{"genre", in.Genre},
	} {
		switch {
		case f.value == "":
			details = append(details, FieldError{Field: f.name, Message: "must not be empty"})
		case len(f.value) > MaxFieldLength:
			details = append(details, FieldError{Field: f.name, Message: "must be at most 200 characters"})
		}
	}
	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

// ToSong builds a new Song from a validated input
func (in *SongInput) ToSong() *Song {
	return NewSong(in.Title, in.Artist, in.Album, in.Genre)
}
