// Package buildinfo reports version details shared by the asset tools
package buildinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"
)

const Version = "0.1.0"

// Timestamp returns the VCS commit time, or the binary's modification time
func Timestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

// Print writes the version banner for tool
func Print(w io.Writer, tool string) {
	fmt.Fprintf(w, "%s %s\n", tool, Version)
	fmt.Fprintf(w, "Built: %s\n", Timestamp())
}

// IsVersionRequest reports whether args start with --version or -V
func IsVersionRequest(args []string) bool {
	return len(args) > 0 && (args[0] == "--version" || args[0] == "-V")
}
