package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"songlibrary/internal/config"
	"songlibrary/internal/handlers"
	"songlibrary/internal/repositories"
)

// Server handles HTTP requests for the music library
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New creates a new HTTP server instance
func New(cfg *config.Config, songs repositories.SongRepository) *Server {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("Unhandled panic in request handler", "error", err, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
	}))
	router.Use(corsMiddleware(cfg.CorsOrigin))

	s := &Server{cfg: cfg, router: router}
	s.setupRoutes(songs)
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes(songs repositories.SongRepository) {
	songHandler := handlers.NewSongHandler(songs)
	statsHandler := handlers.NewStatsHandler(songs)

	api := s.router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	songsGroup := api.Group("/songs")
	{
		songsGroup.GET("", songHandler.ListSongs)
		songsGroup.GET("/:id", songHandler.GetSong)
		songsGroup.POST("", songHandler.CreateSong)
		songsGroup.PUT("/:id", songHandler.UpdateSong)
		songsGroup.DELETE("/:id", songHandler.DeleteSong)
	}

	statsGroup := api.Group("/stats")
	{
		statsGroup.GET("/overview", statsHandler.Overview)
		statsGroup.GET("/by-genre", statsHandler.ByGenre)
		statsGroup.GET("/by-artist", statsHandler.ByArtist)
		statsGroup.GET("/by-album", statsHandler.ByAlbum)
		statsGroup.GET("/distinct/genres", statsHandler.DistinctGenres)
		statsGroup.GET("/distinct/artists", statsHandler.DistinctArtists)
		statsGroup.GET("/distinct/albums", statsHandler.DistinctAlbums)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
}

// corsMiddleware allows cross-origin requests from the configured origin
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Router exposes the underlying gin engine, used by tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
