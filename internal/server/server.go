// internal/server/server.go
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config tunes the HTTP surface. Zero values pick defaults.
type Config struct {
	Addr            string
	StaticDir       string
	DefaultInterval time.Duration
	Logger          log.Logger

	// Now is the clock used by /health. Defaults to time.Now.
	Now func() time.Time
}

// Server is the echo HTTP surface over the link, the sampler and the registry.
type Server struct {
	addr     string
	interval time.Duration
	deps     Deps
	now      func() time.Time
	logger   log.Logger

	e *echo.Echo

	quit     chan struct{}
	quitOnce sync.Once
}

// New builds the server and registers its routes. It does not listen.
func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Link == nil || deps.Sampler == nil || deps.Subscriptions == nil || deps.Status == nil {
		return nil, errors.New("server: link, sampler, subscriptions and status are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNopLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Server{
		addr:     cfg.Addr,
		interval: cfg.DefaultInterval,
		deps:     deps,
		now:      cfg.Now,
		logger:   log.WithPrefix(cfg.Logger, "component", "http"),
		quit:     make(chan struct{}),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", s.health)
	e.GET("/read-data", s.readData)
	e.GET("/stream", s.stream)
	e.POST("/reconnect", s.reconnect)
	if cfg.StaticDir != "" {
		e.Static("/", cfg.StaticDir)
	}

	s.e = e
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.e }

// Start listens on the configured address and blocks until Shutdown.
// A bind failure is returned; a clean shutdown returns nil.
func (s *Server) Start() error {
	level.Info(s.logger).Log("msg", "starting HTTP server", "addr", s.addr)
	if err := s.e.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown ends open streams, then drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.quitOnce.Do(func() { close(s.quit) })
	return s.e.Shutdown(ctx)
}
