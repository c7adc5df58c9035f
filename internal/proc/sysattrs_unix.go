//go:build !windows

package proc

import (
	"os/exec"
	"syscall"
)

// configureDetach starts the child in a new session (setsid) so it is
// detached from the controlling terminal and survives the launcher exiting.
func configureDetach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
