package dlv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/options"
)

// MergeEnv copies environ into a map and overlays overrides. Neither input
// is modified.
func MergeEnv(environ []string, overrides map[string]string) map[string]string {
	env := make(map[string]string, len(environ)+len(overrides))
	for _, kv := range environ {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}
	for k, v := range overrides {
		env[k] = v
	}
	return env
}

// Environ renders env as KEY=VALUE pairs in a stable order.
func Environ(env map[string]string) []string {
	res := make([]string, 0, len(env))
	for k, v := range env {
		res = append(res, k+"="+v)
	}
	sort.Strings(res)
	return res
}

// findDlv picks the server binary: the configuration's override, then a
// dlvPath entry of the merged environment, then the configured tool paths,
// and finally dlv on the merged PATH.
func (l *Launcher) findDlv(cfg *config.DebugConfiguration, env map[string]string) (string, error) {
	dlvPath := cfg.DlvPath
	if dlvPath == "" {
		dlvPath = env[options.EnvDlvPath]
	}
	if dlvPath == "" {
		dlvPath = cfg.DlvToolPath
	}
	if dlvPath == "" {
		dlvPath = l.DlvToolPath
	}
	if dlvPath == "" {
		dlvPath = options.DefaultDebuggerBinary
	}

	if !strings.ContainsAny(dlvPath, `/\`) {
		if found, ok := lookPath(dlvPath, env[options.EnvPath]); ok {
			return found, nil
		}
		return "", toolNotFound(dlvPath, env)
	}
	if _, err := os.Stat(dlvPath); err != nil {
		return "", toolNotFound(dlvPath, env)
	}
	// the server runs in the program's directory, so a relative path would
	// be looked up there instead of where it was checked
	abs, err := filepath.Abs(dlvPath)
	if err != nil {
		return "", toolNotFound(dlvPath, env)
	}
	return abs, nil
}

func toolNotFound(dlvPath string, env map[string]string) error {
	searched := fmt.Sprintf("%v=%v", options.EnvGoPath, os.Getenv(options.EnvGoPath))
	if sessionGoPath := env[options.EnvGoPath]; sessionGoPath != "" && sessionGoPath != os.Getenv(options.EnvGoPath) {
		searched += ", session " + options.EnvGoPath + "=" + sessionGoPath
	}
	return debuggers.Errorf(debuggers.KindToolNotFound,
		"couldn't find %v at the Go tools path, %v or %v=%v",
		dlvPath, searched, options.EnvPath, env[options.EnvPath])
}

func lookPath(name, path string) (string, bool) {
	names := []string{name}
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		names = append(names, name+".exe")
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		for _, n := range names {
			candidate := filepath.Join(dir, n)
			info, err := os.Stat(candidate)
			if err != nil || info.IsDir() {
				continue
			}
			if runtime.GOOS != "windows" && info.Mode()&0111 == 0 {
				continue
			}
			return candidate, true
		}
	}
	return "", false
}
