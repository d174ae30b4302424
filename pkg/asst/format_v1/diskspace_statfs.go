//go:build linux || darwin || freebsd

package format_v1

import "golang.org/x/sys/unix"

// getAvailableDiskSpace returns available disk space in bytes via statfs
func getAvailableDiskSpace(path string) (int64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return int64(stat.Bavail) * int64(stat.Bsize), nil
}
