package debuggers

import (
	"fmt"
	"net"
	"os/exec"
	"strconv"
)

// Endpoint is the TCP address a debug adapter client should dial.
type Endpoint struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Address returns the endpoint in host:port form.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%v:%v", e.Host, e.Port)
}

/// A debug server process spawned on behalf of a debug session.
type DebugServer interface {
	/// Returns the OS process id of the server.
	Pid() int
	/// Returns the endpoint the server was told to listen on.
	Endpoint() Endpoint
	// Return the cmd representing the debugger process
	Cmd() *exec.Cmd
	// Exited is closed once the process has terminated and been reaped.
	Exited() <-chan struct{}
}
