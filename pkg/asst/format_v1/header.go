package format_v1

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// TocEntry is one 40-byte row of the table of contents
type TocEntry struct {
	Name   [MaxName]byte // NUL-terminated, truncated to MaxName-1 bytes
	Offset uint32        // Absolute file offset of the entry data
	Size   uint32        // Length of the entry data
}

// ArchiveHeader represents the fixed-size ASST header (4012 bytes) at offset 0
type ArchiveHeader struct {
	// Identification (8 bytes)
	Magic   [4]byte // "ASST"
	Version uint32  // ASSTVersion

	// Table of contents (4004 bytes)
	EntryCount uint32               // Valid rows in Toc
	Toc        [MaxEntries]TocEntry // Rows past EntryCount are ignored
}

// NewArchiveHeader returns an empty header stamped with the current magic and version
func NewArchiveHeader() *ArchiveHeader {
	return &ArchiveHeader{
		Magic:   MagicBytes,
		Version: ASSTVersion,
	}
}

// EncodeName copies name into a fixed name buffer. Names longer than
// MaxName-1 bytes are cut so the last byte is always a NUL terminator.
func EncodeName(name string) (buf [MaxName]byte, truncated bool) {
	n := copy(buf[:MaxName-1], name)
	return buf, n < len(name)
}

// SetName stores name in the row and reports whether it was truncated
func (e *TocEntry) SetName(name string) bool {
	buf, truncated := EncodeName(name)
	e.Name = buf
	return truncated
}

// NameString returns the row name up to its NUL terminator
func (e *TocEntry) NameString() string {
	if i := bytes.IndexByte(e.Name[:], 0); i >= 0 {
		return string(e.Name[:i])
	}
	// Unterminated buffer from a foreign writer; use all of it
	return string(e.Name[:])
}

// End returns the offset one past the last data byte
func (e *TocEntry) End() uint64 {
	return uint64(e.Offset) + uint64(e.Size)
}

// Pack serializes the header to exactly HeaderSize bytes
func (h *ArchiveHeader) Pack() []byte {
	buf := make([]byte, HeaderSize)

	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.EntryCount)

	// Pack all rows, including unused ones, so the size never varies
	for i := range h.Toc {
		row := buf[PreambleSize+i*TocEntrySize : PreambleSize+(i+1)*TocEntrySize]
		copy(row[0:MaxName], h.Toc[i].Name[:])
		binary.LittleEndian.PutUint32(row[MaxName:MaxName+4], h.Toc[i].Offset)
		binary.LittleEndian.PutUint32(row[MaxName+4:MaxName+8], h.Toc[i].Size)
	}

	return buf
}

// Unpack deserializes the header from bytes. It does not validate the
// contents; call Validate for that.
func (h *ArchiveHeader) Unpack(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncatedFile, HeaderSize, len(data))
	}

	copy(h.Magic[:], data[0:4])
	h.Version = binary.LittleEndian.Uint32(data[4:8])
	h.EntryCount = binary.LittleEndian.Uint32(data[8:12])

	for i := range h.Toc {
		row := data[PreambleSize+i*TocEntrySize : PreambleSize+(i+1)*TocEntrySize]
		copy(h.Toc[i].Name[:], row[0:MaxName])
		h.Toc[i].Offset = binary.LittleEndian.Uint32(row[MaxName : MaxName+4])
		h.Toc[i].Size = binary.LittleEndian.Uint32(row[MaxName+4 : MaxName+8])
	}

	return nil
}

// Validate checks the magic and the entry count
func (h *ArchiveHeader) Validate() error {
	if h.Magic != MagicBytes {
		return fmt.Errorf("%w: got %q", ErrBadMagic, h.Magic[:])
	}
	if h.EntryCount > MaxEntries {
		return fmt.Errorf("%w: entry count %d exceeds %d", ErrCorruptHeader, h.EntryCount, MaxEntries)
	}
	return nil
}

// Entries returns the valid TOC rows
func (h *ArchiveHeader) Entries() []TocEntry {
	n := h.EntryCount
	if n > MaxEntries {
		n = MaxEntries
	}
	return h.Toc[:n]
}

// Lookup finds the first valid row named name
func (h *ArchiveHeader) Lookup(name string) (TocEntry, bool) {
	for _, e := range h.Entries() {
		if e.NameString() == name {
			return e, true
		}
	}
	return TocEntry{}, false
}
