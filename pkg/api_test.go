package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/assetpack/pkg/asst/format_v1"
	"github.com/provide-io/assetpack/pkg/bootstrap"
)

func writeSource(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "assets")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
	}
	return dir
}

type scriptCapture struct {
	name   string
	script string
}

func (s *scriptCapture) BindFiles(bootstrap.Opener) {}
func (s *scriptCapture) SetAssets(map[string][]byte) {}
func (s *scriptCapture) RunScript(name string, script []byte) error {
	s.name, s.script = name, string(script)
	return nil
}

func TestBuildListRead(t *testing.T) {
	src := writeSource(t, map[string]string{
		"main.lua": "return 1+1\n",
		"data.bin": "\x01\x02\x03",
	})
	out := filepath.Join(t.TempDir(), "assets.bin")

	result, err := BuildArchive(src, out)
	require.NoError(t, err)
	require.Equal(t, 2, result.EntryCount)

	listing, err := ListArchive(out, format_v1.InspectOptions{})
	require.NoError(t, err)
	require.Equal(t, uint32(format_v1.ASSTVersion), listing.Version)
	require.Equal(t, uint32(2), listing.EntryCount)
	require.Len(t, listing.Entries, 2)
	require.Equal(t, "main.lua", listing.Entries[0].Name)
	require.Equal(t, uint32(format_v1.HeaderSize), listing.Entries[0].Offset)
	require.Equal(t, "01 02 03", listing.Entries[1].PreviewHex())

	data, err := ReadAsset(out, "data.bin")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)

	_, err = ReadAsset(out, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListArchiveBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, format_v1.HeaderSize), 0o644))

	_, err := ListArchive(path, format_v1.InspectOptions{})
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestVerifyArchive(t *testing.T) {
	logger := hclog.NewNullLogger()
	src := writeSource(t, map[string]string{"a.txt": "alpha", "b.txt": "bravo"})
	out := filepath.Join(t.TempDir(), "assets.bin")
	_, err := BuildArchive(src, out)
	require.NoError(t, err)

	require.NoError(t, VerifyArchiveWithLogger(out, logger))

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(out, info.Size()-2))

	err = VerifyArchiveWithLogger(out, logger)
	require.ErrorIs(t, err, ErrTruncatedFile)
}

func TestBoot(t *testing.T) {
	src := writeSource(t, map[string]string{"main.lua": "print(1)"})
	archive := filepath.Join(t.TempDir(), "assets.bin")

	capture := &scriptCapture{}
	report, err := Boot(archive, src, capture, nil)
	require.NoError(t, err)
	require.Equal(t, bootstrap.SourceDirectory, report.Kind)
	require.Equal(t, "main.lua", capture.name)
	require.Equal(t, "print(1)", capture.script)

	_, err = BuildArchive(src, archive)
	require.NoError(t, err)

	report, err = Boot(archive, src, capture, nil)
	require.NoError(t, err)
	require.Equal(t, bootstrap.SourceArchive, report.Kind)
	require.Equal(t, 1, report.AssetCount)
}
