package format_v1

import (
	"fmt"
	"io"
)

// EntryReader is an open handle on one archive entry. It reads from the
// archive file in place and stays valid until either it or its Reader is
// closed.
type EntryReader struct {
	name    string
	section *io.SectionReader
	closed  bool
}

// OpenEntry opens the first entry named name for incremental reading
func (r *Reader) OpenEntry(name string) (*EntryReader, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}

	row, ok := header.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if row.End() > uint64(r.fileSize) {
		return nil, fmt.Errorf("%w: %s needs bytes %d..%d, file has %d",
			ErrTruncatedFile, name, row.Offset, row.End(), r.fileSize)
	}

	r.logger.Trace("📂 Opened asset stream", "name", name, "offset", row.Offset, "size", row.Size)
	return &EntryReader{
		name:    name,
		section: io.NewSectionReader(r.file, int64(row.Offset), int64(row.Size)),
	}, nil
}

// Name returns the entry name
func (e *EntryReader) Name() string {
	return e.name
}

// Size returns the entry length
func (e *EntryReader) Size() int64 {
	return e.section.Size()
}

// Read implements io.Reader
func (e *EntryReader) Read(p []byte) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	return e.section.Read(p)
}

// ReadAt implements io.ReaderAt relative to the start of the entry
func (e *EntryReader) ReadAt(p []byte, off int64) (int, error) {
	if e.closed {
		return 0, ErrClosed
	}
	return e.section.ReadAt(p, off)
}

// Seek implements io.Seeker relative to the start of the entry
func (e *EntryReader) Seek(offset int64, whence int) (int64, error) {
	if e.closed {
		return 0, ErrClosed
	}
	return e.section.Seek(offset, whence)
}

// Close releases the handle. Closing twice is a no-op.
func (e *EntryReader) Close() error {
	e.closed = true
	return nil
}
