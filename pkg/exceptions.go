package pkg

import (
	"github.com/provide-io/assetpack/pkg/asst/format_v1"
	"github.com/provide-io/assetpack/pkg/bootstrap"
)

var (
	// Archive errors 📦
	ErrIO               = format_v1.ErrIO
	ErrBadMagic         = format_v1.ErrBadMagic
	ErrTruncatedFile    = format_v1.ErrTruncatedFile
	ErrCorruptHeader    = format_v1.ErrCorruptHeader
	ErrCapacityExceeded = format_v1.ErrCapacityExceeded
	ErrNotFound         = format_v1.ErrNotFound
	ErrNameCollision    = format_v1.ErrNameCollision
	ErrSizeOverflow     = format_v1.ErrSizeOverflow
	ErrClosed           = format_v1.ErrClosed
	ErrNotOpen          = format_v1.ErrNotOpen

	// Bootstrap errors 🚀
	ErrBootstrapNotFound = format_v1.ErrBootstrapNotFound
	ErrNoSource          = bootstrap.ErrNoSource
)
