// Package assetenv resolves where the runtime looks for its assets
package assetenv

import (
	"os"
	"path/filepath"

	"github.com/provide-io/assetpack/pkg/asst/format_v1"
)

// Paths are the two candidate asset sources for one run
type Paths struct {
	BaseDir  string // Directory relative paths are resolved against
	Archive  string // Packed archive
	LooseDir string // Loose-file fallback directory
}

// Overrides come from CLI flags and win over the environment
type Overrides struct {
	BaseDir  string
	Archive  string
	LooseDir string
}

// Resolve returns the asset paths.
// Priority per field: override, environment, default.
func Resolve(o Overrides) (Paths, error) {
	base := firstNonEmpty(o.BaseDir, os.Getenv("ASSET_BASE_DIR"))
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Paths{}, err
		}
		base = cwd
	}

	archive := firstNonEmpty(o.Archive, os.Getenv("ASSET_BIN_PATH"), format_v1.DefaultArchiveName)
	loose := firstNonEmpty(o.LooseDir, os.Getenv("ASSET_DIR"), format_v1.DefaultLooseDir)

	return Paths{
		BaseDir:  base,
		Archive:  resolveAgainst(base, archive),
		LooseDir: resolveAgainst(base, loose),
	}, nil
}

func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
