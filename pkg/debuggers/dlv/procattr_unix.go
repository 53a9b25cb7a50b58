// +build !windows

package dlv

import (
	"os/exec"
	"syscall"
)

// setProcAttr makes the server a session leader so its whole process group,
// including the debuggee, can be signalled at once.
func setProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
