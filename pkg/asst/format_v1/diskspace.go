package format_v1

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/assetpack/pkg/vfs"
)

// estimateArchiveSize sums the sizes of the packed sources when fsys can
// report them without opening files
func estimateArchiveSize(fsys vfs.FileSystem, sources []string) (uint64, bool) {
	sizer, ok := fsys.(vfs.Sizer)
	if !ok {
		return 0, false
	}

	total := uint64(HeaderSize)
	for _, name := range sources {
		size, err := sizer.Size(name)
		if err != nil || size < 0 {
			return 0, false
		}
		total += uint64(size)
	}
	return total, true
}

// checkDiskSpace verifies there's enough disk space in dir for needed bytes.
// Failing to query the filesystem is not an error.
func checkDiskSpace(dir string, needed uint64, logger hclog.Logger) error {
	available, err := getAvailableDiskSpace(dir)
	if err != nil {
		logger.Warn("⚠️ Could not check disk space", "dir", dir, "error", err)
		return nil
	}

	logger.Debug("💾 Disk space check", "needed", needed, "available", available)

	if available >= 0 && uint64(available) < needed {
		logger.Error("❌ Insufficient disk space", "needed", needed, "available", available)
		return fmt.Errorf("%w: insufficient disk space in %s: need %d bytes, have %d", ErrIO, dir, needed, available)
	}
	return nil
}
