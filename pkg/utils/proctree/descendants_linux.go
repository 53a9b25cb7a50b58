package proctree

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"
)

// Descendants lists the children, grandchildren, etc. of pid.
func Descendants(pid int) ([]int, error) {
	files, err := ioutil.ReadDir("/proc")
	if err != nil {
		return nil, err
	}

	children := make(map[int][]int)
	for _, f := range files {
		if !f.IsDir() {
			continue
		}
		child, err := strconv.Atoi(f.Name())
		if err != nil {
			continue
		}
		ppid, err := parentOf(child)
		if err != nil {
			// gone since we listed /proc
			continue
		}
		children[ppid] = append(children[ppid], child)
	}

	return walk(pid, children), nil
}

func parentOf(pid int) (int, error) {
	buf, err := ioutil.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return 0, err
	}
	return parseStatPpid(string(buf))
}

// parseStatPpid extracts the parent pid from a /proc/<pid>/stat line.
// Example: 4242 (dlv) S 4200 4242 4200 0 -1 ...
// The command name may contain spaces and parentheses, so fields are counted
// from the last closing parenthesis.
func parseStatPpid(stat string) (int, error) {
	i := strings.LastIndexByte(stat, ')')
	if i < 0 {
		return 0, fmt.Errorf("malformed stat line %q", stat)
	}
	fields := strings.Fields(stat[i+1:])
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed stat line %q", stat)
	}
	return strconv.Atoi(fields[1])
}
