package factory

import (
	"strings"

	"github.com/loykin/relaunch/internal/history"
	"github.com/loykin/relaunch/internal/history/sqlite"
)

// NewSink builds a history sink from a DSN. An empty DSN disables history
// and returns a no-op sink.
func NewSink(dsn string) (history.Sink, error) {
	if strings.TrimSpace(dsn) == "" {
		return history.NopSink{}, nil
	}
	return sqlite.New(dsn)
}
