package models

import (
	"sort"
	"strings"
)

// LibraryOverview holds distinct counts across the whole library
type LibraryOverview struct {
	SongsCount   int64 `json:"songsCount"`
	ArtistsCount int   `json:"artistsCount"`
	AlbumsCount  int   `json:"albumsCount"`
	GenresCount  int   `json:"genresCount"`
}

// GenreCount is one row of the per-genre breakdown, grouped case-folded
type GenreCount struct {
	Genre      string `bson:"genre" json:"genre"`
	SongsCount int64  `bson:"songsCount" json:"songsCount"`
}

// ArtistCount is one row of the per-artist breakdown
type ArtistCount struct {
	Artist      string `bson:"artist" json:"artist"`
	SongsCount  int64  `bson:"songsCount" json:"songsCount"`
	AlbumsCount int64  `bson:"albumsCount" json:"albumsCount"`
}

// AlbumCount is one row of the per-album breakdown
type AlbumCount struct {
	Album      string `bson:"album" json:"album"`
	SongsCount int64  `bson:"songsCount" json:"songsCount"`
}

// CleanDistinct shapes a raw distinct result into a sorted, de-duplicated,
// blank-filtered list of strings
func CleanDistinct(raw []interface{}) []string {
	seen := make(map[string]bool, len(raw))
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		values = append(values, s)
	}
	sort.Strings(values)
	return values
}
