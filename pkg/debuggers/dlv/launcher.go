package dlv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/options"
	"github.com/solo-io/dlvdap/pkg/utils"
	"github.com/solo-io/go-utils/contextutils"
	"go.uber.org/zap"
)

// Starter starts cmd without waiting for it to finish.
type Starter func(cmd *exec.Cmd) error

type Launcher struct {
	// DlvToolPath is used when a configuration names no binary.
	DlvToolPath string
	// SettleDelay is how long the server gets to bind its socket.
	SettleDelay time.Duration
	// ReadinessTimeout enables polling the endpoint after the settle delay.
	ReadinessTimeout time.Duration
	// KillGrace bounds the wait for a server that never got ready to die.
	KillGrace time.Duration

	start   Starter
	environ func() []string
}

type Option func(*Launcher)

func WithDlvToolPath(path string) Option {
	return func(l *Launcher) { l.DlvToolPath = path }
}

func WithSettleDelay(d time.Duration) Option {
	return func(l *Launcher) { l.SettleDelay = d }
}

func WithReadinessTimeout(d time.Duration) Option {
	return func(l *Launcher) { l.ReadinessTimeout = d }
}

func WithKillGrace(d time.Duration) Option {
	return func(l *Launcher) { l.KillGrace = d }
}

// WithStarter replaces the function that spawns the server process.
func WithStarter(start Starter) Option {
	return func(l *Launcher) { l.start = start }
}

// WithEnviron replaces the source of the ambient environment.
func WithEnviron(environ func() []string) Option {
	return func(l *Launcher) { l.environ = environ }
}

func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		SettleDelay: options.DefaultSettleDelay,
		KillGrace:   options.DefaultKillGrace,
		start:       (*exec.Cmd).Start,
		environ:     os.Environ,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Launch spawns `dlv dap` listening on cfg's host and port, and returns once
// the settle delay has passed. cfg.Port must already be set.
func (l *Launcher) Launch(ctx context.Context, cfg *config.DebugConfiguration) (*Server, error) {
	logger := contextutils.LoggerFrom(ctx)
	cfg.ApplyDefaults()
	if cfg.Port == 0 {
		return nil, debuggers.Errorf(debuggers.KindInvalidConfiguration, "no port to listen on")
	}

	env := MergeEnv(l.environ(), cfg.Env)
	dlvPath, err := l.findDlv(cfg, env)
	if err != nil {
		logger.Errorw("can't find debug server binary", zap.Error(err))
		return nil, err
	}

	args := Args(cfg)
	logger.Infof("Running: %v %v", dlvPath, strings.Join(args, " "))

	resolved, err := config.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(dlvPath, args...)
	cmd.Dir = resolved.Directory
	cmd.Env = Environ(env)
	cmd.Stdout = logWriter(logger.Info)
	cmd.Stderr = logWriter(logger.Error)
	setProcAttr(cmd)

	if err := l.start(cmd); err != nil {
		logger.Errorw("Failed to start dlv", zap.Error(err))
		return nil, debuggers.Wrapf(debuggers.KindSpawnFailure, err, "starting %v", dlvPath)
	}

	endpoint := debuggers.Endpoint{Host: cfg.Host, Port: cfg.Port}
	server := newServer(cmd, endpoint)
	go server.wait(logger)

	logger.Debugw("started dlv, waiting for it to listen", "pid", server.Pid(), "endpoint", endpoint.String())
	timer := time.NewTimer(l.SettleDelay)
	select {
	case <-timer.C:
	case <-server.Exited():
		timer.Stop()
		if server.Err() != nil {
			return nil, debuggers.Wrapf(debuggers.KindSpawnFailure, server.Err(), "%v exited while starting", dlvPath)
		}
		return nil, debuggers.Errorf(debuggers.KindSpawnFailure, "%v exited while starting", dlvPath)
	}

	if l.ReadinessTimeout > 0 {
		readyCtx, cancel := context.WithTimeout(ctx, l.ReadinessTimeout)
		defer cancel()
		if err := utils.WaitForPort(readyCtx, endpoint.Host, endpoint.Port); err != nil {
			logger.Errorw("dlv never accepted connections", "endpoint", endpoint.String(), zap.Error(err))
			server.kill(ctx, l.KillGrace, logger)
			return nil, debuggers.Wrapf(debuggers.KindServerNotReady, err, "%v is not listening on %v", dlvPath, endpoint)
		}
	}

	return server, nil
}

// Args assembles the server's arguments. User flags come before the required
// ones and are kept verbatim; for repeated flags the server lets the last win.
func Args(cfg *config.DebugConfiguration) []string {
	args := []string{options.DapSubcommand}
	args = append(args, cfg.DlvFlags...)
	args = append(args, fmt.Sprintf("--listen=%v", debuggers.Endpoint{Host: cfg.Host, Port: cfg.Port}.Address()))
	if cfg.ShowLog != nil {
		args = append(args, fmt.Sprintf("--log=%v", *cfg.ShowLog))
	}
	if cfg.LogOutput != "" {
		args = append(args, fmt.Sprintf("--log-output=%v", cfg.LogOutput))
	}
	return args
}

type logWriter func(args ...interface{})

func (w logWriter) Write(p []byte) (int, error) {
	w(strings.TrimRight(string(p), "\r\n"))
	return len(p), nil
}
