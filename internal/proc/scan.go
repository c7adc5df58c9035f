package proc

import (
	"errors"
	"os"
	"strings"
	"time"

	gopsproc "github.com/shirou/gopsutil/v4/process"
)

// Match describes a running process whose command line contains a pattern.
type Match struct {
	PID       int       `json:"pid"`
	Cmdline   string    `json:"cmdline"`
	StartedAt time.Time `json:"started_at,omitempty"`
}

// Uptime returns how long the process has been running, or 0 when the start
// time could not be determined.
func (m Match) Uptime(now time.Time) time.Duration {
	if m.StartedAt.IsZero() {
		return 0
	}
	d := now.Sub(m.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// Scan enumerates running processes and returns every one whose full command
// line contains pattern. The calling process is always excluded; so are
// kernel threads and other entries with an empty command line. An empty
// result is not an error.
func Scan(pattern string) ([]Match, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, errors.New("empty pattern")
	}
	procs, err := gopsproc.Processes()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	var out []Match
	for _, p := range procs {
		pid := int(p.Pid)
		if pid == self {
			continue
		}
		cmdline, err := p.Cmdline()
		if err != nil || cmdline == "" {
			// gone already, or not readable (other user), or a kernel thread
			continue
		}
		if !strings.Contains(cmdline, pattern) {
			continue
		}
		m := Match{PID: pid, Cmdline: cmdline}
		if ts := getProcStartUnix(pid); ts > 0 {
			m.StartedAt = time.Unix(ts, 0)
		}
		out = append(out, m)
	}
	return out, nil
}

// Alive reports whether a PID still refers to a live process.
func Alive(pid int) bool {
	return processExists(pid)
}
