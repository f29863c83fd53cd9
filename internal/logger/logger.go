// Package logger builds the hclog logger shared by the CLI and the
// auditor. Logs go to stderr so report output on stdout stays clean.
package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLogLevel overrides the log level when no explicit level is given.
const EnvLogLevel = "ASTRA_AUDIT_LOG_LEVEL"

// New returns a named logger at the given level. An empty level falls
// back to the ASTRA_AUDIT_LOG_LEVEL environment variable, then INFO.
func New(level string) hclog.Logger {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:        "astra-audit",
		DisableTime: true,
		Output:      os.Stderr,
		Level:       parseLevel(strings.ToUpper(level)),
	})
}

func parseLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
