// Package proctree terminates a debug server together with every process it
// started, such as the debuggee dlv builds and runs.
package proctree

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/options"
)

type Killer struct {
	// Grace bounds the wait for the server to be reaped after it was signalled.
	Grace time.Duration
}

func NewKiller(grace time.Duration) *Killer {
	if grace <= 0 {
		grace = options.DefaultKillGrace
	}
	return &Killer{Grace: grace}
}

// Kill terminates server and all of its descendants, and returns once the
// server process has exited.
func (k *Killer) Kill(ctx context.Context, server debuggers.DebugServer) error {
	pid := server.Pid()

	// snapshot the tree first: once the parent dies its children get reparented
	descendants, err := Descendants(pid)
	if err != nil {
		log.WithFields(log.Fields{"pid": pid, "err": err}).Warn("can't list descendant processes")
	}
	log.WithFields(log.Fields{"pid": pid, "descendants": descendants}).Debug("killing process tree")

	if err := signalTree(pid, descendants); err != nil {
		select {
		case <-server.Exited():
			log.WithFields(log.Fields{"pid": pid, "err": err}).Warn("process exited before its tree could be killed")
			return nil
		default:
		}
		return debuggers.Wrapf(debuggers.KindTerminationFailure, err, "killing process tree of %d", pid)
	}

	timer := time.NewTimer(k.Grace)
	defer timer.Stop()
	select {
	case <-server.Exited():
		return nil
	case <-timer.C:
		return debuggers.Errorf(debuggers.KindTerminationFailure, "process %d did not exit within %v", pid, k.Grace)
	case <-ctx.Done():
		return debuggers.Wrapf(debuggers.KindTerminationFailure, ctx.Err(), "waiting for process %d to exit", pid)
	}
}

// walk returns every pid reachable from root in the parent -> children table,
// closest generation first.
func walk(root int, children map[int][]int) []int {
	var res []int
	queue := []int{root}
	seen := map[int]bool{root: true}
	for len(queue) > 0 {
		pid := queue[0]
		queue = queue[1:]
		for _, child := range children[pid] {
			if seen[child] {
				continue
			}
			seen[child] = true
			res = append(res, child)
			queue = append(queue, child)
		}
	}
	return res
}
