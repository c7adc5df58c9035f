package proc

import (
	"fmt"
)

// LaunchDetached starts spec.Command in its own session with stdout/stderr
// redirected away from the terminal, and returns the new PID. The launch is
// fire-and-forget: the child is released immediately, is never waited on,
// and keeps running after the launcher exits. Whether the child stays
// healthy is not this function's concern.
func LaunchDetached(spec Spec, environ []string) (int, error) {
	cmd := spec.BuildCommand()
	if spec.WorkDir != "" {
		cmd.Dir = spec.WorkDir
	}
	if len(environ) > 0 {
		cmd.Env = environ
	}
	configureDetach(cmd)

	outF, errF, err := spec.Log.OpenChildFiles(spec.Name)
	if err != nil {
		return 0, fmt.Errorf("open log files for %s: %w", spec.Name, err)
	}
	cmd.Stdin = nil
	cmd.Stdout = outF
	cmd.Stderr = errF

	if err := cmd.Start(); err != nil {
		_ = outF.Close()
		_ = errF.Close()
		return 0, fmt.Errorf("start %s: %w", spec.Name, err)
	}
	pid := cmd.Process.Pid

	// The child holds its own copies of the descriptors.
	_ = outF.Close()
	_ = errF.Close()

	if spec.PIDFile != "" {
		if err := WritePIDFile(spec.PIDFile, pid, spec); err != nil {
			// The process is already running; a pidfile failure is not fatal.
			return pid, fmt.Errorf("write pid file %s: %w", spec.PIDFile, err)
		}
	}

	// Release, never Wait: the launcher has no ongoing relationship with the child.
	_ = cmd.Process.Release()
	return pid, nil
}
