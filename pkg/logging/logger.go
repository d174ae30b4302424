package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Prefix marks human-readable log lines written by the asset tools
const Prefix = "📦 "

// Options configures NewLoggerWithOptions
type Options struct {
	Name   string
	Level  string // "trace".."error", optionally "json" or "json:<level>"
	Output io.Writer
}

// NewLogger creates a new hclog logger with standard settings
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	return NewLoggerWithOptions(Options{Name: name, Level: level, Output: output})
}

// NewLoggerWithOptions creates an hclog logger. JSON output is selected by a
// "json" level prefix or ASSET_JSON_LOG=1; ASSET_LOG_PATH redirects output to
// a file when no writer is given.
func NewLoggerWithOptions(opts Options) hclog.Logger {
	level, jsonFormat := ParseLevel(opts.Level)
	if os.Getenv("ASSET_JSON_LOG") == "1" {
		jsonFormat = true
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
		if logPath := os.Getenv("ASSET_LOG_PATH"); logPath != "" {
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				output = file
			}
		}
	}

	// Add prefix for non-JSON output
	if !jsonFormat {
		output = NewPrefixWriter(Prefix, output)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: jsonFormat,
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z", // UTC ISO format
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// ParseLevel splits "json:debug" style levels into the level and the JSON flag
func ParseLevel(level string) (string, bool) {
	if !strings.HasPrefix(level, "json") {
		return level, false
	}
	if _, actual, ok := strings.Cut(level, ":"); ok && actual != "" {
		return actual, true
	}
	return "info", true
}

// ResolveLogLevel picks the log level and reports where it came from.
// Priority: CLI flag, tool env var, ASSET_LOG_LEVEL, then "info".
func ResolveLogLevel(cliLevel, toolEnv string) (level, source string) {
	if cliLevel != "" {
		return cliLevel, "CLI --log-level"
	}
	if toolEnv != "" {
		if envLevel := os.Getenv(toolEnv); envLevel != "" {
			return envLevel, toolEnv
		}
	}
	if envLevel := os.Getenv("ASSET_LOG_LEVEL"); envLevel != "" {
		return envLevel, "ASSET_LOG_LEVEL"
	}
	return "info", "default"
}

// GetLogLevel returns the configured log level from environment
func GetLogLevel() string {
	level, _ := ResolveLogLevel("", "")
	return level
}

// NewToolLogger resolves the level for a CLI tool and builds its logger.
// The level and where it came from are logged at debug.
func NewToolLogger(name, toolEnv, cliLevel string) hclog.Logger {
	level, source := ResolveLogLevel(cliLevel, toolEnv)
	logger := NewLogger(name, level, nil)
	logger.Debug("🔧 Log level configured", "level", level, "source", source)
	return logger
}
