// Package server exposes the resume tailoring pipeline and the LaTeX compiler
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/server/ratelimit"
	"github.com/jonathan/resume-tailor/internal/typesetting"
)

// Generator runs the tailoring pipeline; *pipeline.Pipeline implements it
type Generator interface {
	Run(ctx context.Context, resumeText, jobDescription string) (*pipeline.Result, error)
}

// Options wires the server's collaborators
type Options struct {
	Config    config.ServerConfig
	RateLimit ratelimit.Config
	Generator Generator
	Compiler  typesetting.Compiler
}

// Server is the HTTP API
type Server struct {
	httpServer *http.Server
	cfg        config.ServerConfig
	generator  Generator
	compiler   typesetting.Compiler
	gate       *semaphore.Weighted
	limiter    *ratelimit.Limiter
}

// New creates a server instance
func New(opts Options) *Server {
	maxConcurrent := opts.Config.MaxConcurrentRequests
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	s := &Server{
		cfg:       opts.Config,
		generator: opts.Generator,
		compiler:  opts.Compiler,
		gate:      semaphore.NewWeighted(int64(maxConcurrent)),
		limiter:   ratelimit.NewLimiter(opts.RateLimit),
	}

	mux := http.NewServeMux()
	mux.Handle("POST /api/generate-resume", s.withRateLimit(s.withGate(http.HandlerFunc(s.handleGenerateResume))))
	mux.Handle("POST /api/compile-latex", s.withRateLimit(s.withGate(http.HandlerFunc(s.handleCompileLaTeX))))
	mux.HandleFunc("GET /health", s.handleHealth)

	writeTimeout := opts.Config.RequestTimeout.Std() + 30*time.Second
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.Port),
		Handler:           s.withLogging(s.withCORS(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens until ctx is canceled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
