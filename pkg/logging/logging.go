package logging

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ConfigureCommandLineLogging sets up logrus for interactive use: text
// output with full timestamps on stderr.
func ConfigureCommandLineLogging() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
}

// SetLevel parses and applies a logrus level name.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	log.SetLevel(lvl)
	return nil
}

// NewLogger returns a standalone logger writing to w, for tests and
// embedding callers that must not touch the global logger.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return l
}
