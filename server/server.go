// Package server exposes the guessing game over HTTP with gin.
//
// Routes:
//
//	GET /start                          root question
//	GET /question/:id                   question or guess at :id
//	GET /question/:id/answer/:answer    node reached by answering :id with yes/no
//	GET /healthz                        liveness and tree size
//	GET /metrics                        Prometheus metrics, when enabled
//
// When a static directory is configured, every other GET path serves the
// frontend from it.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/YuminosukeSato/treeguess/game"
	"github.com/YuminosukeSato/treeguess/pkg/errors"
	"github.com/YuminosukeSato/treeguess/pkg/log"
)

// Server is the HTTP front end of a Resolver.
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	logger log.Logger

	addr            string
	staticDir       string
	corsOrigins     []string
	metrics         *Metrics
	metricsPath     string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address (default ":8000").
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithLogger sets the logger for access logs and failures.
func WithLogger(l log.Logger) Option {
	return func(s *Server) { s.logger = l.With(log.ComponentKey, "server") }
}

// WithStaticDir serves the frontend build in dir.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.staticDir = dir }
}

// WithCORSOrigins sets the allowed origins (default "*").
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// WithMetrics records Prometheus metrics and exposes them at path.
func WithMetrics(m *Metrics, path string) Option {
	return func(s *Server) {
		s.metrics = m
		s.metricsPath = path
	}
}

// WithTimeouts sets the HTTP read and write timeouts and the graceful shutdown budget.
func WithTimeouts(read, write, shutdown time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
		s.shutdownTimeout = shutdown
	}
}

// New builds a Server around resolver.
func New(resolver *game.Resolver, opts ...Option) *Server {
	s := &Server{
		logger:          log.GetLogger().With(log.ComponentKey, "server"),
		addr:            ":8000",
		corsOrigins:     []string{"*"},
		readTimeout:     10 * time.Second,
		writeTimeout:    10 * time.Second,
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(requestID(), recovery(s.logger), accessLog(s.logger), cors(s.corsOrigins))
	if s.metrics != nil {
		engine.Use(httpMetrics(s.metrics))
		s.metrics.TreeNodes.Set(float64(resolver.Tree().NodeCount()))
		engine.GET(s.metricsPath, gin.WrapH(s.metrics.Handler()))
	}

	registerRoutes(engine, &handlers{resolver: resolver, metrics: s.metrics, logger: s.logger})

	if s.staticDir != "" {
		engine.NoRoute(staticFallback(s.staticDir))
	} else {
		engine.NoRoute(notFound)
	}

	s.engine = engine
	s.srv = &http.Server{
		Addr:         s.addr,
		Handler:      engine,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("http server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("http server stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return errors.Wrap(err, "serve http")
	}
}
