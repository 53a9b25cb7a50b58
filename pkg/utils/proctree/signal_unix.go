// +build !windows

package proctree

import (
	"syscall"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// signalTree sends SIGKILL to the process group led by pid, to pid itself, and
// to every listed descendant. Processes that are already gone are ignored.
func signalTree(pid int, descendants []int) error {
	var result *multierror.Error

	// the server is started as a session leader, so -pid addresses its group
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH && err != syscall.EPERM {
		result = multierror.Append(result, errors.Wrapf(err, "killing process group %d", pid))
	}
	if err := syscall.Kill(pid, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
		result = multierror.Append(result, errors.Wrapf(err, "killing process %d", pid))
	}
	for _, child := range descendants {
		if err := syscall.Kill(child, syscall.SIGKILL); err != nil && err != syscall.ESRCH {
			result = multierror.Append(result, errors.Wrapf(err, "killing descendant %d", child))
		}
	}
	return result.ErrorOrNil()
}
