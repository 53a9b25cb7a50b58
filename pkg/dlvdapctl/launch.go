package dlvdapctl

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/debuggers/dlv"
	"github.com/solo-io/dlvdap/pkg/session"
	"github.com/solo-io/dlvdap/pkg/utils/proctree"
	"github.com/solo-io/go-utils/contextutils"
	"github.com/spf13/cobra"
	"gopkg.in/AlecAivazis/survey.v1"
)

const launchDescription = `Start a debug adapter server for a launch configuration.
The configuration is read from --file and overridden by any flag given on
the command line. With --port set, no server is started and the endpoint
of the running one is printed. Otherwise dlvdapctl keeps running until it
is interrupted, then kills the server and its children.
`

func LaunchCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "start dlv dap and print its endpoint",
		Long:  launchDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runLaunch(cmd)
		},
	}
	applyLaunchFlags(&o.Launch, cmd.Flags())
	return cmd
}

func (o *Options) runLaunch(cmd *cobra.Command) error {
	cfg, err := o.debugConfiguration(cmd)
	if err != nil {
		return err
	}
	if err := o.ensureProgram(cfg); err != nil {
		return err
	}

	// subscribe before spawning so an early interrupt still disposes the server
	interrupted := o.interrupt()

	w := cmd.OutOrStdout()
	if cfg.Attach() {
		o.printVerbose(w, fmt.Sprintf("Using the debug server already running on port %v", cfg.Port))
	} else {
		o.printVerbose(w, fmt.Sprintf("Starting dlv dap for %v", cfg.Program))
	}

	supervisor := o.newSupervisor()
	endpoint, err := supervisor.Acquire(o.ctx, cfg)
	if err != nil {
		return err
	}
	if err := o.printEndpoint(w, endpoint); err != nil {
		supervisor.Dispose(o.ctx)
		return err
	}

	if !supervisor.Active() {
		return nil
	}
	o.printVerbose(w, "Press Ctrl-C to stop the debug server")
	sig := <-interrupted
	contextutils.LoggerFrom(o.ctx).Infow("stopping debug server", "signal", sig.String())
	return supervisor.Dispose(o.ctx)
}

func (o *Options) newSupervisor() *session.Supervisor {
	launcher := dlv.NewLauncher(
		dlv.WithDlvToolPath(o.Settings.DlvToolPath),
		dlv.WithSettleDelay(o.Settings.SettleDelay),
		dlv.WithReadinessTimeout(o.Settings.ReadinessTimeout),
		dlv.WithKillGrace(o.Settings.KillGrace),
	)
	return session.NewSupervisor(session.DlvLauncher(launcher), proctree.NewKiller(o.Settings.KillGrace), nil)
}

// debugConfiguration loads --file, if given, and lays the flags the user set
// over it.
func (o *Options) debugConfiguration(cmd *cobra.Command) (*config.DebugConfiguration, error) {
	lo := o.Launch
	cfg := &config.DebugConfiguration{}
	if lo.File != "" {
		loaded, err := config.LoadFile(lo.File)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = lo.Name
	}
	if flags.Changed("program") {
		cfg.Program = lo.Program
	}
	if flags.Changed("host") {
		cfg.Host = lo.Host
	}
	if flags.Changed("port") {
		cfg.Port = lo.Port
	}
	if flags.Changed("dlv-tool-path") {
		cfg.DlvToolPath = lo.DlvToolPath
	}
	if flags.Changed("dlv-path") {
		cfg.DlvPath = lo.DlvPath
	}
	if flags.Changed("dlv-flag") {
		cfg.DlvFlags = append(cfg.DlvFlags, lo.DlvFlags...)
	}
	if flags.Changed("show-log") {
		showLog := lo.ShowLog
		cfg.ShowLog = &showLog
	}
	if flags.Changed("log-output") {
		cfg.LogOutput = lo.LogOutput
	}
	for _, kv := range lo.Env {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			return nil, debuggers.Errorf(debuggers.KindInvalidConfiguration, "invalid --env %q, expected KEY=VALUE", kv)
		}
		if cfg.Env == nil {
			cfg.Env = map[string]string{}
		}
		cfg.Env[kv[:i]] = kv[i+1:]
	}

	if cfg.Program != "" && !filepath.IsAbs(cfg.Program) {
		abs, err := filepath.Abs(cfg.Program)
		if err != nil {
			return nil, err
		}
		cfg.Program = abs
	}
	return cfg, nil
}

// ensureProgram asks for the program when a server has to be launched for a
// configuration that names none. In machine mode the resolver reports it.
func (o *Options) ensureProgram(cfg *config.DebugConfiguration) error {
	if cfg.Program != "" || cfg.Attach() || o.Machine {
		return nil
	}
	question := &survey.Input{
		Message: "Go file or package directory to debug",
		Default: o.Internal.WorkDir,
	}
	if err := survey.AskOne(question, &cfg.Program, survey.Required); err != nil {
		return err
	}
	return nil
}

func (o *Options) printEndpoint(w io.Writer, endpoint debuggers.Endpoint) error {
	if o.Json {
		return printJson(w, endpoint)
	}
	if o.Machine {
		_, err := fmt.Fprintln(w, endpoint.Address())
		return err
	}
	_, err := fmt.Fprintf(w, "Debug adapter listening on %v\n", endpoint.Address())
	return err
}
