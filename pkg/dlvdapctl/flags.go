package dlvdapctl

import (
	"github.com/spf13/pflag"
)

func applyLaunchFlags(lo *LaunchOptions, f *pflag.FlagSet) {
	f.StringVarP(&lo.File, "file", "f", "", "launch configuration file (yaml or json)")
	f.StringVar(&lo.Name, "name", "", "name of the debug configuration")
	f.StringVar(&lo.Program, "program", "", "go source file or package directory to debug")
	f.StringVar(&lo.Host, "host", "", "host the debug server listens on (defaults to 127.0.0.1)")
	f.IntVar(&lo.Port, "port", 0, "port of an already running debug server to attach to")
	f.StringVar(&lo.DlvToolPath, "dlv-tool-path", "", "dlv binary to use when no override is given")
	f.StringVar(&lo.DlvPath, "dlv-path", "", "dlv binary for this session only")
	f.StringArrayVar(&lo.DlvFlags, "dlv-flag", nil, "extra flag passed to dlv dap, may be repeated")
	f.StringArrayVar(&lo.Env, "env", nil, "KEY=VALUE added to the server environment, may be repeated")
	f.BoolVar(&lo.ShowLog, "show-log", false, "pass --log to dlv")
	f.StringVar(&lo.LogOutput, "log-output", "", "pass --log-output to dlv")
}
