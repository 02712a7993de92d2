package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureCliLogging sets up logging for command line tools: bare messages on stderr,
// so that anything written to stdout can be piped.
func ConfigureCliLogging() {
	log.SetFormatter(&CommandLineFormatter{})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

// ConfigureApplicationLogging sets up the standard logger for a long-running application.
func ConfigureApplicationLogging(config Config) error {
	return configureLogger(log.StandardLogger(), config, os.Stdout)
}

func configureLogger(logger *log.Logger, config Config, out io.Writer) error {
	if err := config.Validate(); err != nil {
		return err
	}
	level, err := ParseLogLevel(config.Level)
	if err != nil {
		return err
	}
	if strings.ToLower(config.Format) == "json" {
		logger.SetFormatter(&log.JSONFormatter{TimestampFormat: RFC3339Milli})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: RFC3339Milli})
	}
	logger.SetOutput(out)
	logger.SetLevel(level)
	return nil
}
