package format_v1

// Core format constants that never change
// For defaults and configuration, see defaults.go

// MagicBytes identifies an ASST archive. It occupies the first 4 bytes of the file.
var MagicBytes = [4]byte{'A', 'S', 'S', 'T'}

const (
	// Format version - written by the builder, surfaced by the reader
	ASSTVersion = 1

	// Fixed capacities - every header has exactly this many rows
	MaxEntries = 100 // TOC rows in every header
	MaxName    = 32  // Name buffer including the NUL terminator

	// magic (4) + version (4) + entry_count (4)
	PreambleSize = 12

	// name (32) + offset (4) + size (4)
	TocEntrySize = MaxName + 8

	// 12 + 100*40 = 4012 bytes; entry data starts here
	HeaderSize = PreambleSize + MaxEntries*TocEntrySize

	// BootstrapName is the entry the scripting runtime starts from
	BootstrapName = "main.lua"

	// PreviewSize is the number of data bytes shown per entry when inspecting
	PreviewSize = 4
)
