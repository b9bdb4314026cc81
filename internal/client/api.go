// Package client is the data layer consumed by the presentation layer: a
// typed API wrapper plus a Store that keeps an in-memory copy of the song
// list, filters and statistics in sync with the server.
package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

// Song mirrors the server's wire representation of a song
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album"`
	Genre     string    `json:"genre"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SongInput is the request body for creating or replacing a song
type SongInput struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
}

// SongPage is the list endpoint's pagination envelope
type SongPage struct {
	Data       []Song `json:"data"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int64  `json:"totalPages"`
}

// Overview holds the library-wide distinct counts
type Overview struct {
	SongsCount   int64 `json:"songsCount"`
	ArtistsCount int   `json:"artistsCount"`
	AlbumsCount  int   `json:"albumsCount"`
	GenresCount  int   `json:"genresCount"`
}

// GenreCount is one row of the per-genre breakdown
type GenreCount struct {
	Genre      string `json:"genre"`
	SongsCount int64  `json:"songsCount"`
}

// ArtistCount is one row of the per-artist breakdown
type ArtistCount struct {
	Artist      string `json:"artist"`
	SongsCount  int64  `json:"songsCount"`
	AlbumsCount int64  `json:"albumsCount"`
}

// AlbumCount is one row of the per-album breakdown
type AlbumCount struct {
	Album      string `json:"album"`
	SongsCount int64  `json:"songsCount"`
}

// Breakdowns bundles the three grouped aggregates fetched together
type Breakdowns struct {
	ByGenre  []GenreCount  `json:"byGenre"`
	ByArtist []ArtistCount `json:"byArtist"`
	ByAlbum  []AlbumCount  `json:"byAlbum"`
}

// Filters is the query state driving the song list
type Filters struct {
	Q         string
	Genre     string
	Artist    string
	Album     string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// DefaultFilters returns the initial filter state
func DefaultFilters() Filters {
	return Filters{
		SortBy:    "createdAt",
		SortOrder: "desc",
		Page:      1,
		Limit:     10,
	}
}

type apiError struct {
	Message string `json:"message"`
}

// API wraps the music library REST endpoints
type API struct {
	http *resty.Client
}

// NewAPI creates an API client for the given base URL
func NewAPI(baseURL string) *API {
	return &API{
		http: resty.New().SetBaseURL(baseURL),
	}
}

// ListSongs fetches one page of songs for the given filters
func (a *API) ListSongs(ctx context.Context, f Filters) (*SongPage, error) {
	var page SongPage
	req := a.http.R().
		SetContext(ctx).
		SetResult(&page).
		SetError(&apiError{}).
		SetQueryParam("page", strconv.Itoa(f.Page)).
		SetQueryParam("limit", strconv.Itoa(f.Limit)).
		SetQueryParam("sortBy", f.SortBy).
		SetQueryParam("sortOrder", f.SortOrder)
	if f.Q != "" {
		req.SetQueryParam("q", f.Q)
	}
	if f.Genre != "" {
		req.SetQueryParam("genre", f.Genre)
	}
	if f.Artist != "" {
		req.SetQueryParam("artist", f.Artist)
	}
	if f.Album != "" {
		req.SetQueryParam("album", f.Album)
	}

	resp, err := req.Get("/api/songs")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errorFrom(resp)
	}
	return &page, nil
}

// CreateSong inserts a new song
func (a *API) CreateSong(ctx context.Context, input SongInput) (*Song, error) {
	var song Song
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&song).
		SetError(&apiError{}).
		Post("/api/songs")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errorFrom(resp)
	}
	return &song, nil
}

// UpdateSong replaces all four text fields of an existing song
func (a *API) UpdateSong(ctx context.Context, id string, input SongInput) (*Song, error) {
	var song Song
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(&song).
		SetError(&apiError{}).
		Put("/api/songs/" + id)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errorFrom(resp)
	}
	return &song, nil
}

// DeleteSong removes a song
func (a *API) DeleteSong(ctx context.Context, id string) error {
	resp, err := a.http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete("/api/songs/" + id)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errorFrom(resp)
	}
	return nil
}

// GetOverview fetches the library-wide distinct counts
func (a *API) GetOverview(ctx context.Context) (*Overview, error) {
	var overview Overview
	if err := a.getJSON(ctx, "/api/stats/overview", &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// GetBreakdowns fetches the three grouped aggregates concurrently
func (a *API) GetBreakdowns(ctx context.Context) (*Breakdowns, error) {
	var b Breakdowns

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.getJSON(ctx, "/api/stats/by-genre", &b.ByGenre) })
	g.Go(func() error { return a.getJSON(ctx, "/api/stats/by-artist", &b.ByArtist) })
	g.Go(func() error { return a.getJSON(ctx, "/api/stats/by-album", &b.ByAlbum) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetDistinct fetches a distinct value list; kind is genres, artists or albums
func (a *API) GetDistinct(ctx context.Context, kind string) ([]string, error) {
	var values []string
	if err := a.getJSON(ctx, "/api/stats/distinct/"+kind, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (a *API) getJSON(ctx context.Context, path string, out interface{}) error {
	resp, err := a.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&apiError{}).
		Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return errorFrom(resp)
	}
	return nil
}

// errorFrom prefers the server's message over the bare status line
func errorFrom(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
		return errors.New(apiErr.Message)
	}
	return fmt.Errorf("unexpected status %s", resp.Status())
}
