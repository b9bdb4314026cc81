package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"songlibrary/internal/models"
	"songlibrary/internal/query"
	"songlibrary/internal/repositories"
)

// ListSongsResponse is the pagination envelope of the list endpoint
type ListSongsResponse struct {
	Data       []*models.Song `json:"data"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int64          `json:"totalPages"`
}

// SongHandler handles song CRUD requests
type SongHandler struct {
	songs repositories.SongRepository
}

// NewSongHandler creates a new song handler
func NewSongHandler(songs repositories.SongRepository) *SongHandler {
	return &SongHandler{songs: songs}
}

// ListSongs handles GET /api/songs
func (h *SongHandler) ListSongs(c *gin.Context) {
	q := query.Build(query.Params{
		Q:         c.Query("q"),
		Genre:     c.Query("genre"),
		Artist:    c.Query("artist"),
		Album:     c.Query("album"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
	})

	songs, total, err := h.songs.List(c.Request.Context(), q)
	if err != nil {
		internalError(c, "Failed to list songs", err)
		return
	}

	c.JSON(http.StatusOK, ListSongsResponse{
		Data:       songs,
		Page:       q.Page,
		Limit:      q.PerPage,
		Total:      total,
		TotalPages: q.TotalPages(total),
	})
}

// GetSong handles GET /api/songs/:id
func (h *SongHandler) GetSong(c *gin.Context) {
	song, err := h.songs.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrSongNotFound) {
			songNotFound(c)
			return
		}
		internalError(c, "Failed to find song", err)
		return
	}
	c.JSON(http.StatusOK, song)
}

// CreateSong handles POST /api/songs
func (h *SongHandler) CreateSong(c *gin.Context) {
	input, ok := bindSongInput(c)
	if !ok {
		return
	}

	song := input.ToSong()
	if err := h.songs.Insert(c.Request.Context(), song); err != nil {
		internalError(c, "Failed to create song", err)
		return
	}
	c.JSON(http.StatusCreated, song)
}

// UpdateSong handles PUT /api/songs/:id. All four fields are required: this
// is a full replace, not a merge.
func (h *SongHandler) UpdateSong(c *gin.Context) {
	input, ok := bindSongInput(c)
	if !ok {
		return
	}

	song, err := h.songs.Replace(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, models.ErrSongNotFound) {
			songNotFound(c)
			return
		}
		internalError(c, "Failed to update song", err)
		return
	}
	c.JSON(http.StatusOK, song)
}

// DeleteSong handles DELETE /api/songs/:id
func (h *SongHandler) DeleteSong(c *gin.Context) {
	err := h.songs.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrSongNotFound) {
			songNotFound(c)
			return
		}
		internalError(c, "Failed to delete song", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// bindSongInput parses and validates a song request body, writing the 400
// response itself when the body is rejected
func bindSongInput(c *gin.Context) (*models.SongInput, bool) {
	var input models.SongInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation error",
			"details": []models.FieldError{{Field: "body", Message: "invalid JSON body"}},
		})
		return nil, false
	}

	input.Normalize()
	if verr := input.Validate(); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation error",
			"details": verr.Details,
		})
		return nil, false
	}
	return &input, true
}

func songNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Song not found"})
}

// internalError logs the fault and hides internals from the client
func internalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}
