package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/solo-io/dlvdap/pkg/options"
	"github.com/spf13/viper"
)

// Settings are user level defaults that apply to every debug session.
type Settings struct {
	// DlvToolPath is used when a configuration names no binary at all.
	DlvToolPath string
	// SettleDelay is how long to wait after spawning before handing out the endpoint.
	SettleDelay time.Duration
	// ReadinessTimeout, when positive, bounds a poll for the endpoint to
	// accept connections after the settle delay.
	ReadinessTimeout time.Duration
	// KillGrace bounds the wait for a killed process tree to exit.
	KillGrace time.Duration

	Verbose     bool
	LogCommands bool
}

const (
	keyDlvToolPath      = "dlv_tool_path"
	keySettleDelay      = "settle_delay"
	keyReadinessTimeout = "readiness_timeout"
	keyKillGrace        = "kill_grace"
	keyVerbose          = "verbose"
	keyLogCommands      = "log_commands"
)

var defaultConfigYaml = []byte(`# dlvdap configuration file
dlv_tool_path: ""
settle_delay: 500ms
readiness_timeout: 0s
kill_grace: 5s
verbose: false
log_commands: false
createdby: dlvdap-initialization
`)

// DefaultSettings returns the settings used when no file overrides them.
func DefaultSettings() Settings {
	return Settings{
		SettleDelay: options.DefaultSettleDelay,
		KillGrace:   options.DefaultKillGrace,
	}
}

// ReadSettings reads the settings file at cfgFile. When cfgFile is empty the
// file under SettingsDir is used, and written with defaults if it is missing.
func ReadSettings(cfgFile string) (Settings, error) {
	v := viper.New()
	defaults := DefaultSettings()
	v.SetDefault(keyDlvToolPath, defaults.DlvToolPath)
	v.SetDefault(keySettleDelay, defaults.SettleDelay)
	v.SetDefault(keyReadinessTimeout, defaults.ReadinessTimeout)
	v.SetDefault(keyKillGrace, defaults.KillGrace)
	v.SetDefault(keyVerbose, defaults.Verbose)
	v.SetDefault(keyLogCommands, defaults.LogCommands)

	if cfgFile == "" {
		dir, err := SettingsDir()
		if err != nil {
			return Settings{}, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Settings{}, err
		}
		cfgFile = filepath.Join(dir, options.SettingsFileName)
		if _, err := os.Stat(cfgFile); err != nil {
			if err := writeDefaultConfigFile(cfgFile); err != nil {
				return Settings{}, err
			}
		}
	}

	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("Can't read config: %v", err)
	}

	s := Settings{
		DlvToolPath:      v.GetString(keyDlvToolPath),
		SettleDelay:      v.GetDuration(keySettleDelay),
		ReadinessTimeout: v.GetDuration(keyReadinessTimeout),
		KillGrace:        v.GetDuration(keyKillGrace),
		Verbose:          v.GetBool(keyVerbose),
		LogCommands:      v.GetBool(keyLogCommands),
	}
	if s.SettleDelay < options.DefaultSettleDelay {
		s.SettleDelay = options.DefaultSettleDelay
	}
	if s.KillGrace <= 0 {
		s.KillGrace = options.DefaultKillGrace
	}
	return s, nil
}

func writeDefaultConfigFile(fp string) error {
	if err := ioutil.WriteFile(fp, defaultConfigYaml, 0644); err != nil {
		return errors.Wrapf(err, "writing default config to %v", fp)
	}
	return nil
}

// SettingsDir is the directory holding the settings file and the command log.
func SettingsDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, options.SettingsDirName), nil
}
