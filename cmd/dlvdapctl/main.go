package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/solo-io/dlvdap/pkg/dlvdapctl"
	"github.com/solo-io/dlvdap/pkg/version"
	"github.com/solo-io/go-utils/contextutils"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// run keeps the deferred Sync ahead of os.Exit.
func run() error {
	log.SetLevel(log.InfoLevel)
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	contextutils.SetFallbackLogger(logger.Sugar())

	app, err := dlvdapctl.App(version.Version)
	if err != nil {
		return err
	}
	return app.Execute()
}
