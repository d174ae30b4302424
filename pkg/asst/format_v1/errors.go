package format_v1

import "errors"

var (
	// Format errors 📦
	ErrBadMagic      = errors.New("❌ invalid ASST magic")
	ErrTruncatedFile = errors.New("❌ truncated archive")
	ErrCorruptHeader = errors.New("❌ corrupt archive header")
	ErrSizeOverflow  = errors.New("❌ archive exceeds 32-bit offsets")

	// Build errors 🔨
	ErrCapacityExceeded = errors.New("⚠️ too many assets")
	ErrNameCollision    = errors.New("❌ truncated asset names collide")

	// Lookup errors 🔍
	ErrNotFound          = errors.New("❌ asset not found")
	ErrBootstrapNotFound = errors.New("❌ bootstrap script not found")

	// I/O errors 💾
	ErrIO      = errors.New("❌ archive I/O failed")
	ErrNotOpen = errors.New("❌ archive not open")
	ErrClosed  = errors.New("❌ entry reader closed")
)
