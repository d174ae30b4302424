//go:build !linux && !darwin && !freebsd && !windows

package format_v1

import "errors"

func getAvailableDiskSpace(string) (int64, error) {
	return 0, errors.ErrUnsupported
}
