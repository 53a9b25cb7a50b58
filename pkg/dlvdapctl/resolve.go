package dlvdapctl

import (
	"fmt"

	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/spf13/cobra"
)

type resolveOutput struct {
	config.ResolvedProgram
	Host string `json:"host"`
}

func ResolveCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "validate a launch configuration without starting anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.debugConfiguration(cmd)
			if err != nil {
				return err
			}
			if err := o.ensureProgram(cfg); err != nil {
				return err
			}
			resolved, err := config.Resolve(cfg)
			if err != nil {
				return err
			}
			out := resolveOutput{
				ResolvedProgram: *resolved,
				Host:            cfg.Host,
			}

			w := cmd.OutOrStdout()
			if o.Json {
				return printJson(w, out)
			}
			fmt.Fprintf(w, "program:   %v\n", out.Program)
			fmt.Fprintf(w, "directory: %v\n", out.Directory)
			fmt.Fprintf(w, "host:      %v\n", out.Host)
			return nil
		},
	}
	applyLaunchFlags(&o.Launch, cmd.Flags())
	return cmd
}
