package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"songlibrary/internal/repositories"
)

// StatsHandler serves derived aggregate statistics
type StatsHandler struct {
	songs repositories.SongRepository
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(songs repositories.SongRepository) *StatsHandler {
	return &StatsHandler{songs: songs}
}

// Overview handles GET /api/stats/overview
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.songs.Overview(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to compute overview stats", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ByGenre handles GET /api/stats/by-genre
func (h *StatsHandler) ByGenre(c *gin.Context) {
	rows, err := h.songs.CountByGenre(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to compute genre breakdown", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ByArtist handles GET /api/stats/by-artist
func (h *StatsHandler) ByArtist(c *gin.Context) {
	rows, err := h.songs.CountByArtist(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to compute artist breakdown", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ByAlbum handles GET /api/stats/by-album
func (h *StatsHandler) ByAlbum(c *gin.Context) {
	rows, err := h.songs.CountByAlbum(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to compute album breakdown", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DistinctGenres handles GET /api/stats/distinct/genres
func (h *StatsHandler) DistinctGenres(c *gin.Context) {
	h.distinct(c, "genre")
}

// DistinctArtists handles GET /api/stats/distinct/artists
func (h *StatsHandler) DistinctArtists(c *gin.Context) {
	h.distinct(c, "artist")
}

// DistinctAlbums handles GET /api/stats/distinct/albums
func (h *StatsHandler) DistinctAlbums(c *gin.Context) {
	h.distinct(c, "album")
}

func (h *StatsHandler) distinct(c *gin.Context, field string) {
	values, err := h.songs.DistinctValues(c.Request.Context(), field)
	if err != nil {
		internalError(c, "Failed to collect distinct values", err)
		return
	}
	c.JSON(http.StatusOK, values)
}
