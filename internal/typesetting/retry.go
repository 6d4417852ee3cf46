package typesetting

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/resume-tailor/internal/logger"
)

// Retrier re-runs a whole Compiler after a failure. The wait before retry n
// (1-based) is n times the backoff unit.
type Retrier struct {
	compiler    Compiler
	attempts    int
	backoffUnit time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetrier wraps compiler; attempts below one are raised to one
func NewRetrier(compiler Compiler, attempts int, backoffUnit time.Duration) *Retrier {
	if attempts < 1 {
		attempts = 1
	}
	return &Retrier{
		compiler:    compiler,
		attempts:    attempts,
		backoffUnit: backoffUnit,
		sleep:       sleepContext,
	}
}

// Compile implements Compiler
func (r *Retrier) Compile(ctx context.Context, source string) ([]byte, error) {
	log := logger.Ctx(ctx)
	var last error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		log.Debug().Int("attempt", attempt).Int("max_attempts", r.attempts).Msg("compilation attempt")

		pdf, err := r.compiler.Compile(ctx, source)
		if err == nil {
			return pdf, nil
		}
		last = err

		var inputErr *InputError
		if errors.As(err, &inputErr) {
			return nil, err
		}
		if attempt == r.attempts {
			break
		}

		wait := time.Duration(attempt) * r.backoffUnit
		log.Info().Dur("wait", wait).Msg("retrying compilation")
		if err := r.sleep(ctx, wait); err != nil {
			return nil, &RetryError{Attempts: attempt, Last: last}
		}
	}

	return nil, &RetryError{Attempts: r.attempts, Last: last}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
