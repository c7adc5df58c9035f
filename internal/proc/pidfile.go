package proc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WritePIDFile records the launched PID followed by the JSON-encoded Spec,
// one per line. The embedded Spec lets a later invocation show what was launched
// without re-reading config.
func WritePIDFile(path string, pid int, spec Spec) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	b, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("%d\n%s\n", pid, b)
	return os.WriteFile(path, []byte(content), 0o640)
}

// ReadPIDFile reads a PID file written by WritePIDFile.
// It returns the PID and, if present, the Spec that follows.
// For files that contain only the PID, spec will be nil.
func ReadPIDFile(path string) (int, *Spec, error) {
	b, err := os.ReadFile(path) // #nosec G304 -- path comes from local operator config
	if err != nil {
		return 0, nil, err
	}
	pidLine, rest, _ := strings.Cut(string(b), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(pidLine))
	if err != nil {
		return 0, nil, err
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return pid, nil, nil
	}
	var spec Spec
	if err := json.Unmarshal([]byte(rest), &spec); err != nil {
		// Return PID even if spec cannot be parsed
		return pid, nil, nil
	}
	return pid, &spec, nil
}
