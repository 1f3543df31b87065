// Package server is the web surface: an HTML page whose regions are driven
// over a websocket by one scan controller per connection.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/projectdiscovery/gologger"

	"exposure/pkg/config"
	"exposure/pkg/controller"
)

// Server represents the web surface
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	config     *Config
	scanner    controller.Scanner
	hub        *Hub
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	AllowedOrigins []string
	Debug          bool
	Locale         string
	Title          string
}

// DefaultConfig returns the server part of the default application config.
func DefaultConfig() *Config {
	return ConfigFrom(config.Default())
}

// ConfigFrom extracts the server settings from the application config.
func ConfigFrom(cfg *config.Config) *Config {
	return &Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Debug:          cfg.Server.Debug,
		Locale:         cfg.App.Locale,
		Title:          "Exposure",
	}
}

// New creates a server whose sessions scan through scanner.
func New(cfg *Config, scanner controller.Scanner) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:  gin.New(),
		config:  cfg,
		scanner: scanner,
		hub:     NewHub(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the registry of live sessions.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())
	s.router.Use(s.securityHeaders())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func (s *Server) securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; connect-src 'self' ws: wss:")
		c.Next()
	}
}

// requestLogger logs page, API and websocket requests with their latency.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if path == "/health" || path == "/favicon.ico" {
			return
		}
		if path != "/" && path != "/ws" && !strings.HasPrefix(path, "/api/") {
			return
		}

		status := c.Writer.Status()
		event := gologger.Info()
		if status >= 500 {
			event = gologger.Error()
		} else if status >= 400 {
			event = gologger.Warning()
		}
		event.Msgf("[%d] %-6s %-20s %15s %v",
			status, c.Request.Method, path, c.ClientIP(), time.Since(start).Round(time.Microsecond))
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.index)
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
	}
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start serves until ctx is done, then shuts down gracefully and closes
// every session.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:        s.Addr(),
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		gologger.Info().Msgf("Serving %s at http://%s", s.config.Title, s.Addr())
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		gologger.Info().Msg("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.hub.CloseAll()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	gologger.Info().Msg("Server stopped")
	return nil
}

// StartWithGracefulShutdown serves until SIGINT or SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Start(ctx)
}
