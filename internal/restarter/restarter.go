package restarter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loykin/relaunch/internal/config"
	"github.com/loykin/relaunch/internal/env"
	"github.com/loykin/relaunch/internal/history"
	"github.com/loykin/relaunch/internal/proc"
)

// Restarter performs the linear stop -> wait -> launch sequence for the
// configured dashboard and its collector daemons. It holds no state between
// invocations and does not supervise what it launches. Two concurrent
// invocations racing over the same processes are not coordinated.
type Restarter struct {
	cfg    config.Config
	logger *slog.Logger
	sink   history.Sink

	// SkipEnvCheck disables the fail-fast check for required environment
	// variables, restoring deferred discovery inside the child.
	SkipEnvCheck bool
}

// TargetStatus reports the processes currently matching one target pattern.
// LastLaunch is set only for the dashboard target, and only when a PID file
// is configured and readable.
type TargetStatus struct {
	Name       string        `json:"name"`
	Pattern    string        `json:"pattern"`
	Matches    []proc.Match  `json:"matches"`
	LastLaunch *LaunchRecord `json:"last_launch,omitempty"`
}

// LaunchRecord is the PID recorded by the most recent launch and whether a
// process with that PID is still running. The PID may have been reused by an
// unrelated process; Matches is the authoritative view.
type LaunchRecord struct {
	PID   int  `json:"pid"`
	Alive bool `json:"alive"`
}

func New(cfg config.Config, logger *slog.Logger, sink history.Sink) *Restarter {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = history.NopSink{}
	}
	return &Restarter{cfg: cfg, logger: logger, sink: sink}
}

// Run executes the full sequence. The stop phase's outcome never gates the
// launch: a scan failure is logged and the sequence continues, matching the
// fire-and-forget contract. The returned error is the launch phase's.
func (r *Restarter) Run(ctx context.Context) error {
	if err := r.StopTargets(ctx); err != nil {
		r.logger.Warn("stop phase incomplete, continuing", "error", err)
	}
	if err := r.WaitGrace(ctx); err != nil {
		return err
	}
	_, err := r.Launch(ctx)
	return err
}

// StopTargets sends a termination request to every process matching a
// configured pattern: the dashboard first, then each collector. Each target
// is attempted exactly once. Returns the first scan error, after attempting
// all targets.
func (r *Restarter) StopTargets(ctx context.Context) error {
	var firstErr error
	for _, t := range r.cfg.Targets() {
		if err := r.stopTarget(ctx, t); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// StopOne stops a single named target.
func (r *Restarter) StopOne(ctx context.Context, name string) error {
	for _, t := range r.cfg.Targets() {
		if t.Name == name {
			return r.stopTarget(ctx, t)
		}
	}
	return fmt.Errorf("unknown target: %s", name)
}

func (r *Restarter) stopTarget(ctx context.Context, t config.TargetConfig) error {
	matches, err := proc.StopMatching(t.Pattern)
	if err != nil {
		r.logger.Warn("scan failed", "target", t.Name, "pattern", t.Pattern, "error", err)
		return err
	}
	if len(matches) == 0 {
		r.logger.Debug("no running process", "target", t.Name, "pattern", t.Pattern)
		return nil
	}
	r.logger.Info("termination requested", "target", t.Name, "count", len(matches))
	for _, m := range matches {
		r.record(ctx, history.Event{
			Target: t.Name,
			Action: history.ActionStop,
			PID:    m.PID,
			Detail: m.Cmdline,
		})
	}
	return nil
}

// WaitGrace blocks for the configured grace period. Termination is
// asynchronous; the pause gives signaled processes time to release the
// dashboard's port before the replacement starts.
func (r *Restarter) WaitGrace(ctx context.Context) error {
	d := r.cfg.GracePeriod
	if d <= 0 {
		d = config.DefaultGracePeriod
	}
	r.logger.Info("waiting grace period", "duration", d)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Launch starts a new dashboard instance detached from this process and
// returns its PID. Required environment variables are verified up front so a
// misconfigured launch fails here with a clear error instead of inside the
// child. Beyond that the launch is fire-and-forget: the child's health is
// the operator's to check, via the printed URL or the child's logs.
func (r *Restarter) Launch(ctx context.Context) (int, error) {
	d := r.cfg.Dashboard

	e := env.New()
	e.SetAll(r.cfg.Env)
	merged := e.Merge(d.Env)

	if !r.SkipEnvCheck {
		if err := env.Require(merged, d.RequiredEnv); err != nil {
			return 0, err
		}
	}

	spec := proc.Spec{
		Name:    d.Name,
		Command: d.Command,
		WorkDir: d.WorkDir,
		Env:     d.Env,
		PIDFile: d.PIDFile,
		Log:     r.cfg.Log.File,
	}
	pid, err := proc.LaunchDetached(spec, merged)
	if err != nil && pid == 0 {
		r.record(ctx, history.Event{
			Target: d.Name,
			Action: history.ActionLaunch,
			Detail: err.Error(),
		})
		return 0, err
	}
	if err != nil {
		// Started, but a secondary step (pid file) failed.
		r.logger.Warn("launch side effect failed", "target", d.Name, "pid", pid, "error", err)
	}

	r.record(ctx, history.Event{
		Target: d.Name,
		Action: history.ActionLaunch,
		PID:    pid,
		Detail: d.Command,
	})
	r.logger.Info("dashboard launched", "target", d.Name, "pid", pid)
	if d.URL != "" {
		r.logger.Info("dashboard available", "url", d.URL)
	}
	return pid, nil
}

// Status scans every configured target and reports current matches.
func (r *Restarter) Status() ([]TargetStatus, error) {
	targets := r.cfg.Targets()
	out := make([]TargetStatus, 0, len(targets))
	for _, t := range targets {
		matches, err := proc.Scan(t.Pattern)
		if err != nil {
			return nil, err
		}
		st := TargetStatus{Name: t.Name, Pattern: t.Pattern, Matches: matches}
		if t.Name == r.cfg.Dashboard.Name {
			st.LastLaunch = r.lastLaunch()
		}
		out = append(out, st)
	}
	return out, nil
}

func (r *Restarter) lastLaunch() *LaunchRecord {
	path := r.cfg.Dashboard.PIDFile
	if path == "" {
		return nil
	}
	pid, _, err := proc.ReadPIDFile(path)
	if err != nil {
		return nil
	}
	return &LaunchRecord{PID: pid, Alive: proc.Alive(pid)}
}

// History returns the most recent audit events, newest first.
func (r *Restarter) History(ctx context.Context, limit int) ([]history.Event, error) {
	return r.sink.Recent(ctx, limit)
}

func (r *Restarter) record(ctx context.Context, e history.Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	if err := r.sink.Send(ctx, e); err != nil {
		r.logger.Warn("history record failed", "target", e.Target, "action", e.Action, "error", err)
	}
}
