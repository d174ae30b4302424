// Package bootstrap selects where the scripting runtime gets its assets from
// and hands it the bootstrap script.
//
// Two strategies exist and exactly one is used per run: a packed ASST archive,
// or a loose directory mounted through vfs. The archive wins whenever it exists.
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/assetpack/pkg/asst/format_v1"
	"github.com/provide-io/assetpack/pkg/vfs"
)

// ErrNoSource is returned when neither strategy can be opened
var ErrNoSource = errors.New("❌ no valid asset source")

// SourceKind names an asset strategy
type SourceKind int

const (
	SourceArchive SourceKind = iota
	SourceDirectory
)

func (k SourceKind) String() string {
	switch k {
	case SourceArchive:
		return "archive"
	case SourceDirectory:
		return "directory"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Opener is the open/read/close surface exposed to scripts
type Opener interface {
	Open(name string) (io.ReadCloser, error)
}

// Source provides bootstrap bytes from one strategy
type Source interface {
	Opener

	Kind() SourceKind
	Location() string

	// BootstrapScript returns the main script, or ErrBootstrapNotFound
	BootstrapScript() ([]byte, error)

	// Assets returns the preloaded name→bytes table. A nil map means the
	// source has no table and scripts read files through Open instead.
	Assets() (map[string][]byte, error)

	Close() error
}

// Resolve probes cfg.ArchivePath and opens the matching strategy. An archive
// that exists but fails validation is an error; there is no fallback.
func Resolve(cfg Config) (Source, error) {
	logger := cfg.logger()

	if _, err := os.Stat(cfg.ArchivePath); err == nil {
		logger.Debug("📦 Using packed archive", "path", cfg.ArchivePath)
		r, err := format_v1.OpenArchive(cfg.ArchivePath, logger.Named("archive"))
		if err != nil {
			return nil, err
		}
		return &ArchiveSource{reader: r}, nil
	}

	logger.Debug("📁 Archive not found, using loose directory", "archive", cfg.ArchivePath, "dir", cfg.LooseDir)
	fsys, err := vfs.Mount(cfg.LooseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSource, err)
	}
	return &DirectorySource{fsys: fsys}, nil
}

// ArchiveSource serves assets from a packed archive
type ArchiveSource struct {
	reader *format_v1.Reader
}

func (s *ArchiveSource) Kind() SourceKind { return SourceArchive }

func (s *ArchiveSource) Location() string { return s.reader.Path() }

func (s *ArchiveSource) BootstrapScript() ([]byte, error) {
	return s.reader.ReadBootstrapScript()
}

func (s *ArchiveSource) Assets() (map[string][]byte, error) {
	return s.reader.ReadAll()
}

func (s *ArchiveSource) Open(name string) (io.ReadCloser, error) {
	entry, err := s.reader.OpenEntry(name)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ArchiveSource) Close() error {
	return s.reader.Close()
}

// DirectorySource serves assets from a mounted loose directory
type DirectorySource struct {
	fsys *vfs.DirFS
}

func (s *DirectorySource) Kind() SourceKind { return SourceDirectory }

func (s *DirectorySource) Location() string { return s.fsys.Path() }

func (s *DirectorySource) BootstrapScript() ([]byte, error) {
	if !s.fsys.Exists(format_v1.BootstrapName) {
		return nil, fmt.Errorf("%w: %s in %s", format_v1.ErrBootstrapNotFound, format_v1.BootstrapName, s.fsys.Path())
	}
	data, err := vfs.ReadFile(s.fsys, format_v1.BootstrapName)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", format_v1.ErrIO, format_v1.BootstrapName, err)
	}
	return data, nil
}

func (s *DirectorySource) Assets() (map[string][]byte, error) {
	return nil, nil
}

func (s *DirectorySource) Open(name string) (io.ReadCloser, error) {
	return s.fsys.OpenRead(name)
}

func (s *DirectorySource) Close() error {
	return s.fsys.Close()
}

// Config is the explicitly owned context for one bootstrap run
type Config struct {
	ArchivePath string
	LooseDir    string
	Logger      hclog.Logger
}

func (c Config) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}
