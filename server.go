package dataview

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dataview-lab/dataview-go/auth"
	"github.com/dataview-lab/dataview-go/bookmark"
	"github.com/dataview-lab/dataview-go/filter"
	"github.com/dataview-lab/dataview-go/internal/cache"
	"github.com/dataview-lab/dataview-go/internal/metrics"
	"github.com/dataview-lab/dataview-go/query"
)

// DefaultSearchLimit caps /api/search responses when the request does not
// ask for a limit.
const DefaultSearchLimit = 100

// Server is the dataset view HTTP server. It registers the configured
// dataset in an embedded DuckDB, serves filtered searches over it, and
// keeps per-session bookmarks.
//
// The function:
//  1. Validates the ServerConfig
//  2. Registers the dataset view
//  3. Wires the HTTP routes
//
// Use Handler to mount the server in an existing http.Server, or Run to
// listen on the configured port.
type Server struct {
	view      ViewConfig
	logger    *slog.Logger
	encoder   *filter.DuckDBEncoder
	exec      *query.Executor
	cache     *cache.Cache
	bookmarks *bookmark.Store
	engine    *gin.Engine
}

// NewServer creates a Server from config. The dataset is registered
// eagerly so configuration errors surface here, not on first request.
func NewServer(ctx context.Context, config ServerConfig) (*Server, error) {
	if err := config.View.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil && config.LogLevel != nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *config.LogLevel}))
	}
	if logger == nil {
		logger = slog.Default()
	}

	exec, err := query.NewExecutor(ctx, query.Config{
		DatasetPath:     config.View.DatasetPath,
		GeometryColumns: config.View.GeometryColumns,
		RowStart:        config.View.RowStart,
		RowEnd:          config.View.RowEnd,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var results *cache.Cache
	if config.CacheEntries >= 0 {
		results, err = cache.New(config.CacheEntries)
		if err != nil {
			exec.Close()
			return nil, err
		}
	}

	s := &Server{
		view:      config.View,
		logger:    logger,
		encoder:   filter.NewDuckDBEncoder(),
		exec:      exec,
		cache:     results,
		bookmarks: bookmark.NewStore(),
	}
	s.engine = s.routes(config)

	logger.Info("dataset view server ready",
		"dataset", exec.Name(),
		"has_auth", config.Auth != nil,
		"cached", results != nil,
	)
	return s, nil
}

func (s *Server) routes(config ServerConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	if config.EnableMetrics {
		engine.Use(metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	engine.GET("/ping", s.handlePing)

	api := engine.Group("/api", auth.Middleware(config.Auth))
	api.POST("/search", s.handleSearch)
	api.GET("/schema", s.handleSchema)
	api.GET("/facets", s.handleFacets)
	api.POST("/bookmarks", s.handleBookmarkCreate)
	api.GET("/bookmarks", s.handleBookmarkList)
	api.GET("/bookmarks/:id", s.handleBookmarkGet)
	api.DELETE("/bookmarks/:id", s.handleBookmarkDelete)
	api.GET("/bookmarks/export", s.handleBookmarkExport)
	api.POST("/bookmarks/import", s.handleBookmarkImport)

	return engine
}

// Handler returns the server's HTTP handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.engine }

// Addr returns the listen address derived from the view's port.
func (s *Server) Addr() string {
	port := s.view.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf(":%d", port)
}

// Run listens on the configured port until the listener fails.
func (s *Server) Run() error {
	addr := s.Addr()
	s.logger.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}

// Close releases the dataset and the result cache.
func (s *Server) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}
	return s.exec.Close()
}
