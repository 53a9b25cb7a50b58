package dlvdapctl

import (
	"context"
	"os"

	"github.com/solo-io/dlvdap/pkg/config"
)

type Options struct {
	ctx context.Context

	// ConfigFile overrides the settings file under ~/.dlvdap
	ConfigFile string
	Json       bool
	// Machine disables prompts and trims output to what a host process parses
	Machine bool

	Launch LaunchOptions

	// Settings are read before any sub command runs
	Settings config.Settings

	// Internal contains cli-specific metadata
	Internal Internal

	// interrupt returns the channel that ends a launched session
	interrupt func() <-chan os.Signal
}

// LaunchOptions hold the raw flag values. Only flags the user set are laid
// over the configuration file.
type LaunchOptions struct {
	File        string
	Name        string
	Program     string
	Host        string
	Port        int
	DlvToolPath string
	DlvPath     string
	DlvFlags    []string
	Env         []string
	ShowLog     bool
	LogOutput   string
}

type Internal struct {
	// WorkDir is where dlvdapctl was started, offered when prompting for a program
	WorkDir string
	// SettingsRead should be set once the settings have been read
	SettingsRead bool
}
