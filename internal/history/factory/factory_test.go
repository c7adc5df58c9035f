package factory

import (
	"context"
	"testing"

	"github.com/loykin/relaunch/internal/history"
)

func TestNewSinkEmptyDSNIsNop(t *testing.T) {
	s, err := NewSink("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(history.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
	// NopSink accepts events and returns nothing
	if err := s.Send(context.Background(), history.Event{}); err != nil {
		t.Fatalf("nop send: %v", err)
	}
	got, err := s.Recent(context.Background(), 5)
	if err != nil || got != nil {
		t.Fatalf("nop recent: %v %v", got, err)
	}
}

func TestNewSinkSqlite(t *testing.T) {
	s, err := NewSink(":memory:")
	if err != nil {
		t.Fatalf("sqlite sink: %v", err)
	}
	defer func() { _ = s.Close() }()
	if _, ok := s.(history.NopSink); ok {
		t.Fatal("expected a real sink")
	}
}
