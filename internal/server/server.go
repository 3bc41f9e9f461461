// Package server exposes Prometheus metrics and health endpoints while the
// crawler runs.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	serverconfig "github.com/jonesrussell/north-cloud/news-crawler/internal/config/server"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

// StatusFunc returns the payload for /status, or nil when there is nothing
// to report yet.
type StatusFunc func() any

// SetupRouter creates the gin router with /health, /metrics and /status.
func SetupRouter(log logger.Interface, gatherer prometheus.Gatherer, status StatusFunc) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	router.GET("/status", func(c *gin.Context) {
		var payload any
		if status != nil {
			payload = status()
		}
		if payload == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, payload)
	})

	return router
}

// loggingMiddleware logs each request at debug level.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Debug("HTTP Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

// Server serves the router until its context is cancelled.
type Server struct {
	cfg     serverconfig.Config
	handler http.Handler
	log     logger.Interface
}

// New creates a server.
func New(cfg serverconfig.Config, handler http.Handler, log logger.Interface) *Server {
	return &Server{cfg: cfg, handler: handler, log: log.WithComponent("server")}
}

// Start listens on the configured address and blocks until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Start with a caller-supplied listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Metrics server listening", "address", listener.Addr().String())
		if serveErr := srv.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
		close(errCh)
	}()

	select {
	case serveErr := <-errCh:
		if serveErr != nil {
			return fmt.Errorf("metrics server failed: %w", serveErr)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownTimeout := s.cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = serverconfig.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	s.log.Info("Metrics server stopped")

	return nil
}
