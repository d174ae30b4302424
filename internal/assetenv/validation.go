package assetenv

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoAssetSource is returned when neither the archive nor the loose directory exists
var ErrNoAssetSource = errors.New("❌ no asset source found")

// HasArchive reports whether the packed archive exists. This is the probe
// that selects the archive source over the loose directory.
func (p Paths) HasArchive() bool {
	_, err := os.Stat(p.Archive)
	return err == nil
}

// Validate checks that the path selected by HasArchive is usable: a regular
// file for the archive, or a directory for the loose fallback.
func (p Paths) Validate() error {
	if info, err := os.Stat(p.Archive); err == nil {
		if !info.Mode().IsRegular() {
			return fmt.Errorf("asset archive %s is not a regular file", p.Archive)
		}
		return nil
	}

	info, err := os.Stat(p.LooseDir)
	if err != nil {
		return fmt.Errorf("%w: neither %s nor %s exists", ErrNoAssetSource, p.Archive, p.LooseDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset directory %s is not a directory", p.LooseDir)
	}
	return nil
}
