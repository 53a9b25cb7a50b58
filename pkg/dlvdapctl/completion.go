package dlvdapctl

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	completionLong = `
	Output shell completion code for the specified shell (bash or zsh).
	The shell code must be evaluated to provide interactive
	completion of dlvdapctl commands.  This can be done by sourcing it from
	the .bash_profile.
	Note for zsh users: [1] zsh completions are only supported in versions of zsh >= 5.2`

	completionExample = `
	# Load the dlvdapctl completion code for bash into the current shell
	    source <(dlvdapctl completion bash)
	# Write bash completion code to a file and source if from .bash_profile
	    dlvdapctl completion bash > ~/.dlvdap/completion.bash.inc
	    printf "
 	     # dlvdapctl shell completion
	      source '$HOME/.dlvdap/completion.bash.inc'
	      " >> $HOME/.bash_profile
	    source $HOME/.bash_profile
	# Set the dlvdapctl completion code for zsh[1] to autoload on startup
	    dlvdapctl completion zsh > "${fpath[1]}/_dlvdapctl"`
)

func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "completion SHELL",
		Short:     "generate auto completion for your shell",
		Long:      completionLong,
		Example:   completionExample,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh"},
		RunE: func(c *cobra.Command, a []string) error {
			switch strings.ToLower(a[0]) {
			case "bash":
				return c.Root().GenBashCompletion(c.OutOrStdout())
			case "zsh":
				return c.Root().GenZshCompletion(c.OutOrStdout())
			default:
				return fmt.Errorf("Unsupported shell %v", a[0])
			}
		},
	}
	return cmd
}
