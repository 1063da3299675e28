// Package server exposes the calculation service as an HTTP/JSON API with
// health and Prometheus endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	mdwlog "github.com/msto63/numerik/foundation/core/log"
	"github.com/msto63/numerik/internal/calc"
	"github.com/msto63/numerik/pkg/core/health"
	"github.com/msto63/numerik/pkg/core/version"
)

// Config holds server configuration
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// RequestTimeout bounds the work done for a single request
	RequestTimeout time.Duration
	// MaxBodyBytes limits request bodies
	MaxBodyBytes int64
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:            ":8088",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  5 * time.Second,
		MaxBodyBytes:    1 << 20,
	}
}

// Server is the numerik HTTP API server
type Server struct {
	httpServer *http.Server
	svc        *calc.Service
	health     *health.Registry
	metrics    *Metrics
	validate   *validator.Validate
	logger     *mdwlog.Logger
	config     Config
}

// New creates a server around svc. A nil logger discards.
func New(cfg Config, svc *calc.Service, logger *mdwlog.Logger) *Server {
	if logger == nil {
		logger = mdwlog.Discard()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}

	s := &Server{
		svc:      svc,
		health:   health.NewRegistry("numerik", version.Engine),
		metrics:  NewMetrics(svc.CacheStats),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.WithName("server"),
		config:   cfg,
	}

	s.health.Register(health.ProbeCheck("engine", "0.99", func() string {
		result, _ := svc.Evaluate(context.Background(), "1/3*3")
		return result.Value
	}))
	if store := svc.Journal(); store != nil {
		s.health.Register(health.PingCheck("journal", store.Ping))
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the complete middleware-wrapped route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/eval", s.handleEval)
	mux.HandleFunc("POST /v1/reduce", s.handleReduce)
	mux.HandleFunc("POST /v1/divide", s.handleDivide)
	mux.HandleFunc("POST /v1/format", s.handleFormat)
	mux.HandleFunc("POST /v1/run", s.handleRun)
	mux.HandleFunc("POST /v1/codec/encode", s.handleEncode)
	mux.HandleFunc("POST /v1/codec/decode", s.handleDecode)
	mux.HandleFunc("GET /v1/journal", s.handleJournalList)
	mux.HandleFunc("GET /v1/journal/{id}", s.handleJournalGet)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	return requestIDMiddleware(timeoutMiddleware(s.config.RequestTimeout, observeMiddleware(s.logger, s.metrics, mux)))
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting numerik API", mdwlog.String("addr", ln.Addr().String()), mdwlog.String("version", version.Engine))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("stopping numerik API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
