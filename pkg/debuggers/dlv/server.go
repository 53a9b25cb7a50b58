package dlv

import (
	"context"
	"os/exec"
	"time"

	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/utils/proctree"
	"go.uber.org/zap"
)

// Server is a running `dlv dap` process.
type Server struct {
	cmd      *exec.Cmd
	endpoint debuggers.Endpoint
	exited   chan struct{}
	err      error
}

var _ debuggers.DebugServer = &Server{}

func newServer(cmd *exec.Cmd, endpoint debuggers.Endpoint) *Server {
	return &Server{
		cmd:      cmd,
		endpoint: endpoint,
		exited:   make(chan struct{}),
	}
}

func (s *Server) Pid() int {
	if s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

func (s *Server) Endpoint() debuggers.Endpoint {
	return s.endpoint
}

func (s *Server) Cmd() *exec.Cmd {
	return s.cmd
}

func (s *Server) Exited() <-chan struct{} {
	return s.exited
}

// Err returns the result of waiting for the process. Only valid once Exited
// is closed.
func (s *Server) Err() error {
	return s.err
}

func (s *Server) wait(logger *zap.SugaredLogger) {
	s.err = s.cmd.Wait()
	code := -1
	if s.cmd.ProcessState != nil {
		code = s.cmd.ProcessState.ExitCode()
	}
	logger.Infow("Process exiting", "pid", s.Pid(), "code", code)
	close(s.exited)
}

func (s *Server) kill(ctx context.Context, grace time.Duration, logger *zap.SugaredLogger) {
	if s.cmd.Process == nil {
		return
	}
	if err := proctree.NewKiller(grace).Kill(ctx, s); err != nil {
		logger.Errorw("can't kill dlv", "pid", s.Pid(), zap.Error(err))
	}
}
