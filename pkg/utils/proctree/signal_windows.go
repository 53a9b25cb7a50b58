package proctree

import (
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

func signalTree(pid int, descendants []int) error {
	out, err := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid)).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "taskkill: %s", out)
	}
	return nil
}
