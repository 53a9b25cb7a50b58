package dlvdapctl

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/go-utils/contextutils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const descriptionUsage = `dlvdapctl starts dlv in debug adapter mode for a debug session.
It validates the launch configuration, picks a free port, spawns
"dlv dap --listen=<host>:<port>" in the program's directory and prints
the endpoint a debug adapter client should connect to. The server and
everything it started is killed when dlvdapctl is interrupted.
Settings are read from ~/.dlvdap/config.yaml.
`

func App(version string) (*cobra.Command, error) {
	return newApp(version, &Options{})
}

func newApp(version string, opts *Options) (*cobra.Command, error) {
	app := &cobra.Command{
		Use:           "dlvdapctl",
		Short:         "run dlv debug adapter servers for debug sessions",
		Long:          descriptionUsage,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.readSettings(); err != nil {
				return err
			}
			if err := opts.applyVerbosity(); err != nil {
				return err
			}
			opts.logCmd(cmd, args)
			return nil
		},
	}

	if err := initializeOptions(opts); err != nil {
		return &cobra.Command{}, err
	}

	app.SuggestionsMinimumDistance = 1
	app.AddCommand(
		LaunchCmd(opts),
		ResolveCmd(opts),
		completionCmd(),
	)

	app.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "settings file (defaults to ~/.dlvdap/config.yaml)")
	app.PersistentFlags().BoolVar(&opts.Json, "json", false, "output json format")
	app.PersistentFlags().BoolVar(&opts.Machine, "machine", false, "machine mode input and output")

	return app, nil
}

func initializeOptions(o *Options) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "reading working directory")
	}
	o.Internal.WorkDir = wd
	o.ctx = contextutils.WithLogger(context.Background(), "dlvdapctl")
	if o.interrupt == nil {
		o.interrupt = notifyInterrupt
	}
	return nil
}

func (o *Options) readSettings() error {
	if o.Internal.SettingsRead {
		return nil
	}
	settings, err := config.ReadSettings(o.ConfigFile)
	if err != nil {
		return err
	}
	o.Settings = settings
	o.Internal.SettingsRead = true
	return nil
}

// applyVerbosity lowers the log level of both loggers when the settings ask
// for verbose output.
func (o *Options) applyVerbosity() error {
	if !o.Settings.Verbose {
		return nil
	}
	log.SetLevel(log.DebugLevel)
	logger, err := zap.NewDevelopment()
	if err != nil {
		return errors.Wrap(err, "creating debug logger")
	}
	contextutils.SetFallbackLogger(logger.Sugar())
	// the named logger on ctx was derived from the previous fallback
	o.ctx = contextutils.WithLogger(context.Background(), "dlvdapctl")
	return nil
}

func notifyInterrupt() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}
