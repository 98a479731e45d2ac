// Where: internal/logging/logging.go
// What: logrus configuration for the CLI.
// Why: Route diagnostics to stderr so stdout stays reserved for command output.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{})
}

// Logger returns the shared logger instance.
func Logger() *logrus.Logger {
	return logger
}

// Configure sets the log level and output format. Verbose enables debug
// level; format selects between human-readable text and JSON (for the
// journal or log shippers). Unknown formats fall back to text.
func Configure(verbose bool, format string) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		fallthrough
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{})
	}
}
