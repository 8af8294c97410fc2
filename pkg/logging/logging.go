// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"ProcSampler/pkg/config"
	"ProcSampler/pkg/utils"
)

// Setup applies the --log level and routes diagnostics to stderr, keeping
// stdout free for the per-sample console lines.
func Setup(level string) error {
	return SetupWithOutput(level, os.Stderr)
}

// SetupWithOutput is Setup with an explicit destination.
func SetupWithOutput(level string, out io.Writer) error {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return err
	}
	log.SetOutput(out)
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	return nil
}

// Session returns an entry carrying the fields that identify this run.
func Session(cfg *config.Config) *log.Entry {
	return log.WithFields(log.Fields{
		"session": cfg.SessionID,
		"host":    utils.GetHostname(),
	})
}
