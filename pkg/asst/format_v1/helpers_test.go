package format_v1

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/assetpack/pkg/vfs"
)

func testLogger(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.Trace,
	})
}

// writeAssets creates one file per entry in a fresh source directory
func writeAssets(t *testing.T, assets map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range assets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	return dir
}

// buildArchive packs assets and returns the archive path
func buildArchive(t *testing.T, assets map[string][]byte) string {
	t.Helper()
	out := filepath.Join(t.TempDir(), "assets.bin")
	result, err := NewBuilder(BuilderOptions{}, testLogger("builder_test")).Build(writeAssets(t, assets), out)
	require.NoError(t, err)
	require.Equal(t, len(assets), result.EntryCount)
	return out
}

// openArchive opens path and closes it when the test ends
func openArchive(t *testing.T, path string) *Reader {
	t.Helper()
	r, err := OpenArchive(path, testLogger("reader_test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func numberedAssets(n int) map[string][]byte {
	assets := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		assets[fmt.Sprintf("asset_%03d.dat", i)] = bytes.Repeat([]byte{byte(i)}, i+1)
	}
	return assets
}

// memFS is an in-memory vfs.FileSystem that tracks open handles
type memFS struct {
	order    []string
	files    map[string][]byte
	dirs     map[string]bool
	failOpen string
	open     int
	opened   []string
}

func (m *memFS) Enumerate(dir string) ([]string, error) {
	return append([]string(nil), m.order...), nil
}

func (m *memFS) IsDirectory(name string) bool {
	return m.dirs[name]
}

func (m *memFS) Exists(name string) bool {
	_, ok := m.files[name]
	return ok || m.dirs[name]
}

func (m *memFS) OpenRead(name string) (vfs.File, error) {
	if name == m.failOpen {
		return nil, errors.New("injected open failure")
	}
	data, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	m.open++
	m.opened = append(m.opened, name)
	return &memFile{fs: m, r: bytes.NewReader(data), size: int64(len(data))}, nil
}

type memFile struct {
	fs   *memFS
	r    io.Reader
	size int64
}

func (f *memFile) Read(p []byte) (int, error) { return f.r.Read(p) }

func (f *memFile) Length() (int64, error) { return f.size, nil }

func (f *memFile) Close() error {
	f.fs.open--
	return nil
}
