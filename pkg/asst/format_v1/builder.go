package format_v1

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/assetpack/pkg/vfs"
)

// BuilderOptions configures archive creation
type BuilderOptions struct {
	// StrictNames fails the build when two names are equal after truncation.
	// The default keeps both rows and logs a warning; readers then resolve
	// the name to the first row.
	StrictNames bool

	// CreateDirs creates missing parent directories of the output path
	CreateDirs bool
}

// BuildResult describes a finished archive
type BuildResult struct {
	OutputPath string
	EntryCount int
	DataSize   uint64   // Bytes of entry data after the header
	Skipped    []string // Source names dropped past MaxEntries
	Truncated  []string // Source names stored under a shortened name
	Warnings   []error  // Non-fatal problems, e.g. ErrCapacityExceeded
}

// ArchiveSize returns the total size of the written archive
func (r *BuildResult) ArchiveSize() uint64 {
	return HeaderSize + r.DataSize
}

// Builder packs a flat directory into an ASST archive
type Builder struct {
	opts   BuilderOptions
	logger hclog.Logger
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(opts BuilderOptions, logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Builder{opts: opts, logger: logger}
}

// Build mounts sourceRoot and packs its top-level files into outputPath
func (b *Builder) Build(sourceRoot, outputPath string) (*BuildResult, error) {
	b.logger.Debug("📁 Mounting source directory", "path", sourceRoot)
	fsys, err := vfs.Mount(sourceRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer func() {
		if err := fsys.Close(); err != nil {
			b.logger.Debug("Failed to unmount source directory", "error", err)
		}
	}()

	return b.BuildFS(fsys, outputPath)
}

// BuildFS packs the top-level files of fsys into outputPath.
//
// Entries keep the enumeration order of fsys, except that BootstrapName is
// always packed first.
//
// The header is written first as a placeholder, entries are streamed one at a
// time in enumeration order, then the header is rewritten in place with the
// final offsets and sizes. A failure while streaming leaves a partial file
// behind.
func (b *Builder) BuildFS(fsys vfs.FileSystem, outputPath string) (*BuildResult, error) {
	// Pass 1: enumerate and name the TOC rows
	header, sources, result, err := b.collectEntries(fsys)
	if err != nil {
		return nil, err
	}
	result.OutputPath = outputPath

	if b.opts.CreateDirs {
		outputDir := filepath.Dir(outputPath)
		b.logger.Debug("📁 Ensuring output directory exists", "dir", outputDir)
		if err := os.MkdirAll(outputDir, os.FileMode(DirPerms)); err != nil {
			return nil, fmt.Errorf("%w: create output directory: %w", ErrIO, err)
		}
	}

	if estimate, ok := estimateArchiveSize(fsys, sources); ok {
		if err := checkDiskSpace(filepath.Dir(outputPath), estimate, b.logger); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("💾 Creating output file", "path", outputPath)
	out, err := os.OpenFile(outputPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, os.FileMode(FilePerms))
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrIO, outputPath, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			b.logger.Error("Failed to close output file", "error", err)
		}
	}()

	// ✍️ Placeholder header, rewritten once offsets are known
	if _, err := out.Write(header.Pack()); err != nil {
		return nil, fmt.Errorf("%w: write placeholder header: %w", ErrIO, err)
	}

	// Pass 2: stream entries
	cursor := uint64(HeaderSize)
	for i := range header.Entries() {
		row := &header.Toc[i]
		size, err := b.writeEntry(fsys, out, sources[i], row, cursor)
		if err != nil {
			return nil, err
		}
		cursor += size
	}
	result.DataSize = cursor - HeaderSize

	// 🔁 Rewrite the header over the placeholder
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to header: %w", ErrIO, err)
	}
	if _, err := out.Write(header.Pack()); err != nil {
		return nil, fmt.Errorf("%w: rewrite header: %w", ErrIO, err)
	}

	b.logger.Info("✅ Successfully built asset archive",
		"output", outputPath,
		"assets", result.EntryCount,
		"size", result.ArchiveSize())

	return result, nil
}

// collectEntries enumerates fsys and fills the TOC names. It returns the
// header, the source name for every row and the partially filled result.
func (b *Builder) collectEntries(fsys vfs.FileSystem) (*ArchiveHeader, []string, *BuildResult, error) {
	names, err := fsys.Enumerate("/")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	names = orderNames(names)

	header := NewArchiveHeader()
	result := &BuildResult{}
	sources := make([]string, 0, MaxEntries)
	seen := make(map[string]string, MaxEntries)

	for _, name := range names {
		if fsys.IsDirectory(name) {
			b.logger.Trace("⏭️ Skipping directory", "name", name)
			continue
		}

		if header.EntryCount >= MaxEntries {
			result.Skipped = append(result.Skipped, name)
			continue
		}

		row := &header.Toc[header.EntryCount]
		if row.SetName(name) {
			result.Truncated = append(result.Truncated, name)
			b.logger.Debug("✂️ Truncated asset name", "source", name, "stored", row.NameString())
		}

		stored := row.NameString()
		if prev, ok := seen[stored]; ok {
			if b.opts.StrictNames {
				return nil, nil, nil, fmt.Errorf("%w: %q and %q both store as %q", ErrNameCollision, prev, name, stored)
			}
			b.logger.Warn("⚠️ Asset name collides after truncation; the first entry wins on lookup",
				"first", prev, "second", name, "stored", stored)
		} else {
			seen[stored] = name
		}

		sources = append(sources, name)
		header.EntryCount++
	}

	result.EntryCount = int(header.EntryCount)

	if len(result.Skipped) > 0 {
		warning := fmt.Errorf("%w: found %d, kept the first %d", ErrCapacityExceeded,
			MaxEntries+len(result.Skipped), MaxEntries)
		result.Warnings = append(result.Warnings, warning)
		b.logger.Warn("⚠️ Too many assets, extra files were not packed",
			"max", MaxEntries, "skipped", len(result.Skipped))
	}

	b.logger.Debug("📦 TOC collected", "assets", header.EntryCount)
	return header, sources, result, nil
}

// orderNames moves the bootstrap script to the front and keeps the
// enumeration order for everything else, so it always survives the capacity
// cut and sits at the start of the data region.
func orderNames(names []string) []string {
	ordered := make([]string, 0, len(names))
	for _, name := range names {
		if name == BootstrapName {
			ordered = append(ordered, name)
		}
	}
	for _, name := range names {
		if name != BootstrapName {
			ordered = append(ordered, name)
		}
	}
	return ordered
}

// writeEntry copies one source file into out at offset and fills row
func (b *Builder) writeEntry(fsys vfs.FileSystem, out io.Writer, source string, row *TocEntry, offset uint64) (uint64, error) {
	in, err := fsys.OpenRead(source)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", ErrIO, source, err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			b.logger.Debug("Failed to close asset", "name", source, "error", err)
		}
	}()

	size, err := in.Length()
	if err != nil {
		return 0, fmt.Errorf("%w: measure %s: %w", ErrIO, source, err)
	}
	if size < 0 || offset+uint64(size) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s ends past 4 GiB", ErrSizeOverflow, source)
	}

	row.Offset = uint32(offset)
	row.Size = uint32(size)

	buf, err := vfs.ReadExact(in, size)
	if err != nil {
		return 0, fmt.Errorf("%w: read %s: %w", ErrIO, source, err)
	}

	b.logger.Debug("✍️ Writing asset", "name", row.NameString(), "offset", row.Offset, "size", row.Size)
	if _, err := out.Write(buf); err != nil {
		return 0, fmt.Errorf("%w: write %s: %w", ErrIO, source, err)
	}

	return uint64(size), nil
}
