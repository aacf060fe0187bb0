package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger creates the shared logger. The level comes from LOG_LEVEL and
// falls back to warn so log lines stay out of the per-case output; --verbose
// raises it to debug.
func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if level == "" {
		log.SetLevel(logrus.WarnLevel)
		return log
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL '%s', defaulting to 'warn'\n", level)
		parsed = logrus.WarnLevel
	}

	log.SetLevel(parsed)

	return log
}
