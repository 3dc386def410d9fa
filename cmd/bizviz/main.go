package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"bizviz/cmd/bizviz/cmd"
	"bizviz/pkg/logging"
)

// Config is handled by pkg/config, see cmd/root.go.
func main() {
	logging.ConfigureCommandLineLogging()
	if err := cmd.RootCmd().Execute(); err != nil {
		log.WithError(err).Error("bizviz failed")
		os.Exit(1)
	}
}
