package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/options"
	yaml "gopkg.in/yaml.v2"
)

// DebugConfiguration is what the host hands over when a debug session starts.
// It mirrors the attributes of a launch configuration entry, so it can be read
// from a launch.yaml or from a launch.json fragment.
type DebugConfiguration struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Program is the source file or package directory to debug.
	Program string `yaml:"program,omitempty" json:"program,omitempty"`

	// Host defaults to options.DefaultHost.
	Host string `yaml:"host,omitempty" json:"host,omitempty"`
	// Port, when set, means a server is already listening there and no
	// process will be spawned.
	Port int `yaml:"port,omitempty" json:"port,omitempty"`

	// DlvToolPath is the debugger binary used when DlvPath is empty.
	DlvToolPath string `yaml:"dlvToolPath,omitempty" json:"dlvToolPath,omitempty"`
	// DlvPath overrides DlvToolPath for this session only.
	DlvPath string `yaml:"dlvPath,omitempty" json:"dlvPath,omitempty"`

	// Env is merged over the host process environment.
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	// DlvFlags are passed to the server ahead of the required flags.
	DlvFlags []string `yaml:"dlvFlags,omitempty" json:"dlvFlags,omitempty"`

	ShowLog   *bool  `yaml:"showLog,omitempty" json:"showLog,omitempty"`
	LogOutput string `yaml:"logOutput,omitempty" json:"logOutput,omitempty"`
}

// ApplyDefaults normalizes the configuration in place: it fills in the
// loopback host and lifts a dlvPath entry of Env into the DlvPath field.
func (c *DebugConfiguration) ApplyDefaults() {
	if c.Host == "" {
		c.Host = options.DefaultHost
	}
	if c.DlvPath == "" {
		if p, ok := c.Env[options.EnvDlvPath]; ok {
			c.DlvPath = p
		}
	}
}

// Attach reports whether the configuration points at an already running server.
func (c *DebugConfiguration) Attach() bool {
	return c.Port != 0
}

// Copy returns a deep copy, so callers can default it without touching the
// host's value.
func (c *DebugConfiguration) Copy() *DebugConfiguration {
	out := *c
	if c.Env != nil {
		out.Env = make(map[string]string, len(c.Env))
		for k, v := range c.Env {
			out.Env[k] = v
		}
	}
	if c.DlvFlags != nil {
		out.DlvFlags = append([]string(nil), c.DlvFlags...)
	}
	if c.ShowLog != nil {
		showLog := *c.ShowLog
		out.ShowLog = &showLog
	}
	return &out
}

// LoadFile reads a launch configuration. YAML is a superset of JSON, so both
// launch.yaml and launch.json style files are accepted.
func LoadFile(path string) (*DebugConfiguration, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, debuggers.Wrapf(debuggers.KindInvalidConfiguration, err, "read launch configuration")
	}
	return Parse(buf)
}

func Parse(buf []byte) (*DebugConfiguration, error) {
	var cfg DebugConfiguration
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, debuggers.NewError(debuggers.KindInvalidConfiguration, errors.Wrap(err, "parsing launch configuration"))
	}
	return &cfg, nil
}
