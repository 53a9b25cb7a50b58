// Package session owns the single debug server process of the host and hands
// out endpoints for new debug sessions.
package session

import (
	"context"
	"sync"

	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/utils"
	"github.com/solo-io/go-utils/contextutils"
	"go.uber.org/zap"
)

// Launcher spawns a debug server for a configuration whose port is set.
type Launcher interface {
	Launch(ctx context.Context, cfg *config.DebugConfiguration) (debuggers.DebugServer, error)
}

// LauncherFunc adapts a function to the Launcher interface.
type LauncherFunc func(ctx context.Context, cfg *config.DebugConfiguration) (debuggers.DebugServer, error)

func (f LauncherFunc) Launch(ctx context.Context, cfg *config.DebugConfiguration) (debuggers.DebugServer, error) {
	return f(ctx, cfg)
}

// Killer terminates a debug server and every process below it.
type Killer interface {
	Kill(ctx context.Context, server debuggers.DebugServer) error
}

// PortAllocator returns a free local TCP port.
type PortAllocator func() (int, error)

func freePort() (int, error) {
	port := 0
	err := utils.FindAnyFreePort(&port)
	return port, err
}

// Supervisor holds at most one live debug server. A new session always tears
// the previous server down, and waits for that, before anything is spawned.
type Supervisor struct {
	launcher Launcher
	killer   Killer
	ports    PortAllocator

	// guards server, and serializes Acquire and Dispose
	lock   sync.Mutex
	server debuggers.DebugServer
}

// NewSupervisor wires a supervisor. A nil ports uses utils.FindAnyFreePort.
func NewSupervisor(launcher Launcher, killer Killer, ports PortAllocator) *Supervisor {
	if ports == nil {
		ports = freePort
	}
	return &Supervisor{
		launcher: launcher,
		killer:   killer,
		ports:    ports,
	}
}

// Acquire returns the endpoint a debug adapter client should connect to for
// cfg. When cfg.Port is set the caller's server is used as is; otherwise a
// port is allocated and a new server spawned. Any server held from a previous
// session is killed first.
func (s *Supervisor) Acquire(ctx context.Context, cfg *config.DebugConfiguration) (debuggers.Endpoint, error) {
	logger := contextutils.LoggerFrom(ctx)

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.terminate(ctx); err != nil {
		// a dead or unreachable server must not block the new session
		logger.Errorw("can't terminate previous debug server, dropping it", zap.Error(err))
		s.server = nil
	}

	cfg.ApplyDefaults()
	if cfg.Attach() {
		logger.Infow("attaching to running debug server", "host", cfg.Host, "port", cfg.Port)
		return debuggers.Endpoint{Host: cfg.Host, Port: cfg.Port}, nil
	}

	port, err := s.ports()
	if err != nil {
		return debuggers.Endpoint{}, debuggers.Wrapf(debuggers.KindPortAllocation, err, "finding a free port")
	}

	// only record the port on the host's configuration once a server owns it,
	// so a failed launch does not turn the next attempt into an attach
	launchCfg := cfg.Copy()
	launchCfg.Port = port
	server, err := s.launcher.Launch(ctx, launchCfg)
	if err != nil {
		logger.Errorw("failed to launch debug server", "name", cfg.Name, zap.Error(err))
		return debuggers.Endpoint{}, err
	}

	s.server = server
	cfg.Port = port
	endpoint := server.Endpoint()
	logger.Infow("debug server started", "pid", server.Pid(), "endpoint", endpoint.String())
	return endpoint, nil
}

// Dispose kills the held server, if any. It is safe to call repeatedly. If the
// kill fails the server stays held so a later Dispose can retry.
func (s *Supervisor) Dispose(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.terminate(ctx)
}

// Active reports whether a server is currently held.
func (s *Supervisor) Active() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.server != nil
}

// terminate must be called with the lock held. The reference is only cleared
// once the kill has completed.
func (s *Supervisor) terminate(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	logger := contextutils.LoggerFrom(ctx)
	pid := s.server.Pid()
	logger.Debugw("terminating debug server", "pid", pid)
	if err := s.killer.Kill(ctx, s.server); err != nil {
		if !debuggers.IsKind(err, debuggers.KindTerminationFailure) {
			err = debuggers.Wrapf(debuggers.KindTerminationFailure, err, "killing debug server %d", pid)
		}
		return err
	}
	s.server = nil
	return nil
}
