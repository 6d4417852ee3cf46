package typesetting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonathan/resume-tailor/internal/logger"
)

// Chain tries its backends in order and returns the first PDF produced.
// Failures of earlier backends are not surfaced when a later one succeeds.
type Chain struct {
	backends []Backend
	timeout  time.Duration
}

// NewChain creates a chain where every attempt gets its own timeout
func NewChain(timeout time.Duration, backends ...Backend) *Chain {
	return &Chain{backends: backends, timeout: timeout}
}

// Compile implements Compiler
func (c *Chain) Compile(ctx context.Context, source string) ([]byte, error) {
	if strings.TrimSpace(source) == "" {
		return nil, &InputError{Message: "LaTeX source is empty"}
	}

	log := logger.Ctx(ctx)
	failures := make([]*BackendError, 0, len(c.backends))

	for _, backend := range c.backends {
		if err := ctx.Err(); err != nil {
			failures = append(failures, &BackendError{Backend: backend.Name(), Message: "canceled", Cause: err})
			break
		}

		log.Info().Str("backend", backend.Name()).Msg("compiling LaTeX")
		pdf, err := c.attempt(ctx, backend, source)
		if err == nil {
			log.Info().Str("backend", backend.Name()).Int("bytes", len(pdf)).Msg("compilation succeeded")
			return pdf, nil
		}

		failure := asBackendError(backend.Name(), err)
		log.Warn().Str("backend", backend.Name()).Str("error", failure.Message).Msg("compilation backend failed")
		failures = append(failures, failure)
	}

	return nil, &ChainError{Failures: failures}
}

func (c *Chain) attempt(ctx context.Context, backend Backend, source string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return backend.Compile(ctx, source)
}

func asBackendError(name string, err error) *BackendError {
	var be *BackendError
	if errors.As(err, &be) {
		return be
	}
	return &BackendError{Backend: name, Message: truncate(err.Error(), 100), Cause: err}
}
