// Package http provides the relay API server and its middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHttp "github.com/vttbridge/relay/internal/auth/http"
	"github.com/vttbridge/relay/internal/cache"
	catalogHttp "github.com/vttbridge/relay/internal/catalog/http"
	"github.com/vttbridge/relay/internal/config"
	"github.com/vttbridge/relay/internal/metrics"
)

// Version is the build version reported by the health endpoint. Overridable at
// build time via -ldflags.
var Version = "dev"

// CacheStatsFunc reports the stats of every cache the server owns.
type CacheStatsFunc func() []cache.Stats

// Server represents the relay HTTP server.
type Server struct {
	cfg            *config.Config
	router         *gin.Engine
	server         *http.Server
	logger         *slog.Logger
	startedAt      time.Time
	cacheStats     CacheStatsFunc
	authHandler    *authHttp.AuthHandler
	contentHandler *catalogHttp.ContentHandler
	meterProvider  *metrics.Provider
}

// NewServer creates a new relay HTTP server.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	authHandler *authHttp.AuthHandler,
	contentHandler *catalogHttp.ContentHandler,
	meterProvider *metrics.Provider,
	cacheStats CacheStatsFunc,
) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         logger,
		startedAt:      time.Now(),
		cacheStats:     cacheStats,
		authHandler:    authHandler,
		contentHandler: contentHandler,
		meterProvider:  meterProvider,
	}
	s.router = s.setupRouter()
	return s
}

// setupRouter builds the gin engine with the full middleware chain and routes.
func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(s.cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.meterProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ping", s.pingHandler)

	api := router.Group("/api")
	if s.cfg.RateLimitEnabled {
		api.Use(RateLimitMiddleware(s.cfg.RateLimitRequestsPerSec, s.cfg.RateLimitBurst, s.logger))
	}
	api.GET("/source-books", s.contentHandler.SourceBooksHandler)
	api.POST("/validate-cookie", s.authHandler.ValidateCookieHandler)
	api.POST("/content/*type", s.contentHandler.ContentHandler)
	api.POST("/character/*path", s.contentHandler.CharacterHandler)

	return router
}

// healthHandler reports server health, uptime, memory usage and cache stats.
// GET /health.
func (s *Server) healthHandler(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	var stats []cache.Stats
	if s.cacheStats != nil {
		stats = s.cacheStats()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": Version,
		"uptime":  time.Since(s.startedAt).String(),
		"memory": gin.H{
			"alloc_bytes":       mem.Alloc,
			"total_alloc_bytes": mem.TotalAlloc,
			"sys_bytes":         mem.Sys,
			"num_gc":            mem.NumGC,
		},
		"caches": stats,
	})
}

// pingHandler is a minimal liveness probe. GET /ping.
func (s *Server) pingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pong": true})
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.ServerHost, s.cfg.ServerPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
