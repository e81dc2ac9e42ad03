// Package batch restores several protected modules concurrently.
//
// Every module is opened, restored and handed to the registered sinks, which
// persist the restored snapshot or record the outcome. All modules of a batch
// share one classification cache, so a VM runtime used by many modules is
// classified once.
package batch

import (
	"context"
	"errors"
)

// Sink consumes the report of each processed module.
//
// Consume is called once per module, never concurrently, in completion order.
type Sink interface {
	// Name returns the human-readable name of this sink.
	Name() string

	// Enabled returns whether this sink should run based on configuration.
	Enabled(cfg *Config) bool

	// Consume handles one report. An error is recorded in the stats and does
	// not stop the batch.
	Consume(ctx context.Context, r *Report) error
}

// SinkFunc is an adapter to allow ordinary functions to be used as Sinks.
type SinkFunc struct {
	name    string
	enabled func(*Config) bool
	consume func(context.Context, *Report) error
}

func (s *SinkFunc) Name() string { return s.name }
func (s *SinkFunc) Enabled(cfg *Config) bool {
	if s.enabled == nil {
		return true
	}
	return s.enabled(cfg)
}
func (s *SinkFunc) Consume(ctx context.Context, r *Report) error {
	return s.consume(ctx, r)
}

// NewSinkFunc creates a Sink from a function.
// If enabled is nil, the sink is always enabled.
func NewSinkFunc(name string, enabled func(*Config) bool, consume func(context.Context, *Report) error) Sink {
	return &SinkFunc{
		name:    name,
		enabled: enabled,
		consume: consume,
	}
}

var (
	// ErrSinkFailed indicates a sink could not consume a report.
	ErrSinkFailed = errors.New("sink failed")

	// ErrNoInputs indicates an empty batch.
	ErrNoInputs = errors.New("no input modules")
)
