package session

import (
	"context"

	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/debuggers/dlv"
)

// DlvLauncher adapts a dlv launcher to the Launcher interface.
func DlvLauncher(l *dlv.Launcher) Launcher {
	return LauncherFunc(func(ctx context.Context, cfg *config.DebugConfiguration) (debuggers.DebugServer, error) {
		server, err := l.Launch(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return server, nil
	})
}
