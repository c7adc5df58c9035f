//go:build !windows

package proc

import "syscall"

// terminateProcess sends SIGTERM to a Unix process.
func terminateProcess(pid int) error {
	return syscall.Kill(pid, syscall.SIGTERM)
}

// processExists checks if a process exists via the null signal.
func processExists(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}
