// Package server exposes the profile search pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codeGROOVE-dev/prospect/pkg/profile"
)

// SearchFunc runs a profile search for a business name, optionally
// restricted to the given platforms.
type SearchFunc func(ctx context.Context, query string, platforms []string) (*profile.SearchResult, error)

// Server serves the search API.
type Server struct {
	search SearchFunc
	logger *slog.Logger
	engine *gin.Engine
}

// New builds a Server around the given search function.
func New(search SearchFunc, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{search: search, logger: logger}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLog(), corsAllowAll())
	engine.POST("/api/search", s.handleSearch)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine = engine
	return s
}

// Handler returns the HTTP handler, for mounting or for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe blocks serving the API until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.engine,
		ReadTimeout: 30 * time.Second,
		// Searches can legitimately run for a couple of minutes.
		WriteTimeout: 3 * time.Minute,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

type searchRequest struct {
	Query     string   `json:"query"`
	Platforms []string `json:"platforms"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request format",
		})
		return
	}

	result, err := s.search(c.Request.Context(), req.Query, req.Platforms)
	if err != nil {
		if errors.Is(err, profile.ErrQueryTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Query must be at least 2 characters",
			})
			return
		}
		// Internal detail stays out of the response body.
		s.logger.ErrorContext(c.Request.Context(), "search failed",
			"query", req.Query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Search failed",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Header("X-Request-ID", id)
		start := time.Now()
		c.Next()
		s.logger.InfoContext(c.Request.Context(), "request",
			"id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func corsAllowAll() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
