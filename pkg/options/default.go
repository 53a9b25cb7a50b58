package options

import (
	"time"
)

var (
	// The host the debug server listens on when the configuration names none
	DefaultHost = "127.0.0.1"

	// The only source file extension accepted as a program to debug
	ProgramExtension = ".go"

	// The subcommand that puts dlv into debug adapter mode
	DapSubcommand = "dap"

	// The binary searched for on PATH when no tool path is configured
	DefaultDebuggerBinary = "dlv"

	// Time given to a freshly spawned server to bind its listening socket.
	// The server gives no readiness signal, so this is an empirical wait.
	DefaultSettleDelay = 500 * time.Millisecond

	// How long to wait for a killed process tree to be reaped
	DefaultKillGrace = 5 * time.Second

	// Legacy key inside a configuration's env map that overrides the binary path
	EnvDlvPath = "dlvPath"

	// Variables reported when the binary cannot be found
	EnvGoPath = "GOPATH"
	EnvPath   = "PATH"

	// Directory under the user's home holding settings and the command log
	SettingsDirName  = ".dlvdap"
	SettingsFileName = "config.yaml"
	CmdLogFileName   = "cmd.log"
)
