package config

import (
	"os"
	"path/filepath"

	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/options"
)

// ResolvedProgram is a validated program path together with the directory the
// debug server should run in.
type ResolvedProgram struct {
	Program     string `json:"program"`
	Directory   string `json:"directory"`
	IsDirectory bool   `json:"isDirectory"`
}

// Resolve validates cfg.Program and derives the server's working directory.
// It only looks at the filesystem; the one mutation is defaulting cfg.Host.
func Resolve(cfg *DebugConfiguration) (*ResolvedProgram, error) {
	if cfg.Host == "" {
		cfg.Host = options.DefaultHost
	}

	program := cfg.Program
	if program == "" {
		return nil, debuggers.Errorf(debuggers.KindMissingAttribute,
			"the program attribute is missing in the debug configuration")
	}

	info, err := os.Stat(program)
	if err != nil {
		return nil, debuggers.Wrapf(debuggers.KindInvalidProgramPath, err,
			"the program attribute '%v' must point to a valid .go file or a package directory", program)
	}

	if info.IsDir() {
		return &ResolvedProgram{
			Program:     program,
			Directory:   program,
			IsDirectory: true,
		}, nil
	}

	if filepath.Ext(program) != options.ProgramExtension {
		return nil, debuggers.Errorf(debuggers.KindUnsupportedProgramKind,
			"the program attribute '%v' must be a valid .go file or a package directory", program)
	}

	return &ResolvedProgram{
		Program:   program,
		Directory: filepath.Dir(program),
	}, nil
}
