// Package typesetting turns LaTeX source into PDF bytes through remote
// compilation services. Nothing is compiled locally.
package typesetting

import (
	"context"
	"time"
)

// Defaults shared by the CLI, the server and the config layer
const (
	DefaultBaseURL     = "https://latex.ytotech.com"
	DefaultTimeout     = 45 * time.Second
	DefaultAttempts    = 2
	DefaultBackoffUnit = 2 * time.Second
	DefaultEngine      = "pdflatex"
)

// Compiler turns a complete LaTeX document into PDF bytes
type Compiler interface {
	Compile(ctx context.Context, source string) ([]byte, error)
}

// Backend is a named Compiler that can take part in a Chain
type Backend interface {
	Compiler
	Name() string
}

// Options configures the default compiler stack
type Options struct {
	BaseURL     string
	Engine      string
	Timeout     time.Duration
	Attempts    int
	BackoffUnit time.Duration
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		BaseURL:     DefaultBaseURL,
		Engine:      DefaultEngine,
		Timeout:     DefaultTimeout,
		Attempts:    DefaultAttempts,
		BackoffUnit: DefaultBackoffUnit,
	}
}

// New builds the standard stack: the JSON POST backend, then the GET backend,
// wrapped in a Retrier.
func New(opts Options) *Retrier {
	defaults := DefaultOptions()
	if opts.BaseURL == "" {
		opts.BaseURL = defaults.BaseURL
	}
	if opts.Engine == "" {
		opts.Engine = defaults.Engine
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}

	chain := NewChain(opts.Timeout,
		NewYtoTechJSON(opts.BaseURL, opts.Engine),
		NewYtoTechGET(opts.BaseURL, opts.Engine),
	)
	return NewRetrier(chain, opts.Attempts, opts.BackoffUnit)
}
