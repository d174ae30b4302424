package format_v1

import (
	_ "crypto/sha256" // registers the digest.Canonical hash
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opencontainers/go-digest"
)

// InspectOptions controls what Inspect computes per entry
type InspectOptions struct {
	// PreviewSize is the number of leading bytes to peek; zero uses PreviewSize
	PreviewSize int

	// Digest computes a sha256 content digest by streaming each entry
	Digest bool
}

// EntryReport is the diagnostic view of one TOC row
type EntryReport struct {
	EntryInfo
	Preview []byte        // Up to PreviewSize leading bytes
	Digest  digest.Digest // Empty unless requested
	Err     error         // Set when the row points outside the file
}

// PreviewHex formats the preview as space-separated hex bytes
func (e *EntryReport) PreviewHex() string {
	parts := make([]string, len(e.Preview))
	for i, b := range e.Preview {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

// Inspect reports every valid row without reading whole entries into
// memory. Problems with individual rows are recorded on the row and do not
// stop the walk.
func (r *Reader) Inspect(opts InspectOptions) ([]EntryReport, error) {
	header, err := r.Header()
	if err != nil {
		return nil, err
	}

	previewSize := opts.PreviewSize
	if previewSize <= 0 {
		previewSize = PreviewSize
	}

	entries := header.Entries()
	reports := make([]EntryReport, 0, len(entries))
	for _, row := range entries {
		report := EntryReport{
			EntryInfo: EntryInfo{Name: row.NameString(), Offset: row.Offset, Size: row.Size},
		}

		report.Preview, report.Err = r.peek(row.Offset, min(previewSize, int(row.Size)))
		if report.Err == nil && row.End() > uint64(r.fileSize) {
			report.Err = fmt.Errorf("%w: %s ends at %d, file has %d", ErrTruncatedFile, report.Name, row.End(), r.fileSize)
		}
		if report.Err == nil && opts.Digest {
			section := io.NewSectionReader(r.file, int64(row.Offset), int64(row.Size))
			report.Digest, report.Err = digest.Canonical.FromReader(section)
		}

		if report.Err != nil {
			r.logger.Warn("⚠️ Asset failed inspection", "name", report.Name, "error", report.Err)
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// Verify checks that every row lies inside the file and that its bytes can be read
func (r *Reader) Verify() error {
	reports, err := r.Inspect(InspectOptions{Digest: true})
	if err != nil {
		return err
	}

	var errs []error
	for _, report := range reports {
		if report.Err != nil {
			errs = append(errs, report.Err)
		}
	}
	return errors.Join(errs...)
}

// peek reads up to n bytes at offset. A short read at end of file is not an error.
func (r *Reader) peek(offset uint32, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := r.file.ReadAt(buf, int64(offset))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: peek at %d: %w", ErrIO, offset, err)
	}
	return buf[:read], nil
}
