package format_v1

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// EntryInfo is one listed TOC row
type EntryInfo struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Reader reads ASST archives. It is not safe for concurrent use.
type Reader struct {
	archivePath string
	file        *os.File
	fileSize    int64
	header      *ArchiveHeader
	logger      hclog.Logger
}

// NewReader creates a new archive reader
func NewReader(archivePath string) (*Reader, error) {
	return NewReaderWithLogger(archivePath, hclog.NewNullLogger())
}

// NewReaderWithLogger creates a new archive reader with a custom logger
func NewReaderWithLogger(archivePath string, logger hclog.Logger) (*Reader, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Reader{
		archivePath: archivePath,
		logger:      logger,
	}, nil
}

// OpenArchive opens and validates the archive at archivePath
func OpenArchive(archivePath string, logger hclog.Logger) (*Reader, error) {
	r, err := NewReaderWithLogger(archivePath, logger)
	if err != nil {
		return nil, err
	}
	if err := r.Open(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open opens the archive file and validates its header. The file is closed
// again if validation fails.
func (r *Reader) Open() error {
	if r.file != nil {
		return nil
	}

	file, err := os.Open(r.archivePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	header, size, err := readHeader(file)
	if err != nil {
		if cerr := file.Close(); cerr != nil {
			r.logger.Debug("Failed to close archive", "error", cerr)
		}
		return err
	}

	r.file = file
	r.fileSize = size
	r.header = header

	r.logger.Debug("📖 Opened asset archive",
		"path", r.archivePath,
		"version", header.Version,
		"assets", header.EntryCount,
		"file_size", size)

	return nil
}

// Close closes the archive file
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// Path returns the archive path
func (r *Reader) Path() string {
	return r.archivePath
}

// Header returns the validated header
func (r *Reader) Header() (*ArchiveHeader, error) {
	if r.file == nil {
		return nil, ErrNotOpen
	}
	return r.header, nil
}

// List returns the name, offset and size of every valid row in TOC order
func (r *Reader) List() ([]EntryInfo, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}

	entries := header.Entries()
	infos := make([]EntryInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, EntryInfo{
			Name:   e.NameString(),
			Offset: e.Offset,
			Size:   e.Size,
		})
	}
	return infos, nil
}

// ReadEntry returns the raw bytes of the first entry named name
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}

	row, ok := header.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return r.readRegion(row)
}

// ReadAll reads every entry into a name-keyed map. It stops at the first
// failing entry and returns no partial map.
func (r *Reader) ReadAll() (map[string][]byte, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}

	assets := make(map[string][]byte, header.EntryCount)
	for _, row := range header.Entries() {
		name := row.NameString()
		if _, dup := assets[name]; dup {
			// Lookups resolve to the first row with a name
			r.logger.Debug("⏭️ Skipping duplicate asset name", "name", name, "offset", row.Offset)
			continue
		}

		data, err := r.readRegion(row)
		if err != nil {
			return nil, err
		}
		assets[name] = data
	}

	r.logger.Debug("✅ Loaded all assets", "count", len(assets))
	return assets, nil
}

// ReadBootstrapScript returns the entry the scripting runtime starts from
func (r *Reader) ReadBootstrapScript() ([]byte, error) {
	data, err := r.ReadEntry(BootstrapName)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s in %s", ErrBootstrapNotFound, BootstrapName, r.archivePath)
	}
	return data, err
}

// readRegion reads exactly row.Size bytes at row.Offset
func (r *Reader) readRegion(row TocEntry) ([]byte, error) {
	if row.End() > uint64(r.fileSize) {
		return nil, fmt.Errorf("%w: %s needs bytes %d..%d, file has %d",
			ErrTruncatedFile, row.NameString(), row.Offset, row.End(), r.fileSize)
	}

	buf := make([]byte, row.Size)
	n, err := r.file.ReadAt(buf, int64(row.Offset))
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s read %d of %d bytes", ErrTruncatedFile, row.NameString(), n, len(buf))
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIO, row.NameString(), err)
	}

	r.logger.Trace("📂 Read asset", "name", row.NameString(), "offset", row.Offset, "size", row.Size)
	return buf, nil
}

// readHeader reads and validates the header at the start of file
func readHeader(file *os.File) (*ArchiveHeader, int64, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(file, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, fmt.Errorf("%w: header needs %d bytes, file has %d", ErrTruncatedFile, HeaderSize, n)
		}
		return nil, 0, fmt.Errorf("%w: read header: %w", ErrIO, err)
	}

	header := &ArchiveHeader{}
	if err := header.Unpack(buf); err != nil {
		return nil, 0, err
	}
	if err := header.Validate(); err != nil {
		return nil, 0, err
	}

	return header, info.Size(), nil
}
