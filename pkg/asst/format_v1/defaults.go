package format_v1

// =================================
// File permissions defaults
// =================================
const (
	FilePerms = 0o644 // Archives are plain data files
	DirPerms  = 0o755 // Output directories created on demand
)

// =================================
// Path defaults
// =================================
const (
	DefaultArchiveName = "assets.bin" // Packed archive probed by the loader
	DefaultLooseDir    = "assets"     // Loose-file fallback directory
)

// =================================
// Exit codes
// =================================
const (
	ExitSuccess = 0
	ExitFailure = 1
)
