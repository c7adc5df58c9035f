package history

import (
	"context"
	"time"
)

// Action identifies what the restarter did to a process.
type Action string

const (
	ActionStop   Action = "stop"
	ActionLaunch Action = "launch"
)

// Event is one audit record: a termination request sent or a launch issued.
type Event struct {
	OccurredAt time.Time `json:"occurred_at"`
	Target     string    `json:"target"`
	Action     Action    `json:"action"`
	PID        int       `json:"pid"`
	Detail     string    `json:"detail,omitempty"`
}

// Sink receives audit events. Implementations must be safe for sequential
// use from a single invocation; cross-invocation concurrency is the
// backend's concern.
type Sink interface {
	Send(ctx context.Context, e Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
	Close() error
}

// NopSink discards events. Used when no history DSN is configured.
type NopSink struct{}

func (NopSink) Send(context.Context, Event) error { return nil }

func (NopSink) Recent(context.Context, int) ([]Event, error) { return nil, nil }

func (NopSink) Close() error { return nil }
