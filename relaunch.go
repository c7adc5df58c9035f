package relaunch

import (
	"context"

	cfg "github.com/loykin/relaunch/internal/config"
	"github.com/loykin/relaunch/internal/history"
	"github.com/loykin/relaunch/internal/history/factory"
	"github.com/loykin/relaunch/internal/proc"
	"github.com/loykin/relaunch/internal/restarter"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Config = cfg.Config

type DashboardConfig = cfg.DashboardConfig

type TargetConfig = cfg.TargetConfig

type Match = proc.Match

type TargetStatus = restarter.TargetStatus

type Event = history.Event

// DefaultConfig returns the embedded zero-config defaults.
func DefaultConfig() Config { return cfg.Default() }

// LoadConfig reads TOML configuration layered over the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) { return cfg.Load(path) }

// Restarter is a thin facade over internal/restarter.Restarter.
// It provides a stable public API for embedding.
type Restarter struct {
	inner *restarter.Restarter
	sink  history.Sink
}

// New builds a Restarter from configuration: structured logger from the log
// section, history sink from the history DSN (no-op when unset).
func New(c Config) (*Restarter, error) {
	sink, err := factory.NewSink(c.History.DSN)
	if err != nil {
		return nil, err
	}
	return &Restarter{
		inner: restarter.New(c, c.Log.NewSlogger(), sink),
		sink:  sink,
	}, nil
}

// SkipEnvCheck disables fail-fast validation of required environment
// variables before launch.
func (r *Restarter) SkipEnvCheck(v bool) { r.inner.SkipEnvCheck = v }

// Run performs the full stop -> wait -> launch sequence.
func (r *Restarter) Run(ctx context.Context) error { return r.inner.Run(ctx) }

// Stop performs only the stop phase.
func (r *Restarter) Stop(ctx context.Context) error { return r.inner.StopTargets(ctx) }

// StopTarget stops a single named target.
func (r *Restarter) StopTarget(ctx context.Context, name string) error {
	return r.inner.StopOne(ctx, name)
}

// Launch performs only the launch phase and returns the new PID.
func (r *Restarter) Launch(ctx context.Context) (int, error) { return r.inner.Launch(ctx) }

// Status reports processes currently matching each configured target.
func (r *Restarter) Status() ([]TargetStatus, error) { return r.inner.Status() }

// History returns recent audit events, newest first.
func (r *Restarter) History(ctx context.Context, limit int) ([]Event, error) {
	return r.inner.History(ctx, limit)
}

// Close releases the history sink.
func (r *Restarter) Close() error { return r.sink.Close() }
