package app

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// logger writes diagnostics to stderr; command output goes to stdout.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "timetrack",
	Level:  log.WarnLevel,
})

// setupLogging sets the logger level from its name.
func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	logger.SetLevel(lvl)
	return nil
}
