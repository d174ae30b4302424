package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirFS_EnumerateSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid.lua"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	fsys, err := Mount(dir)
	require.NoError(t, err)
	defer fsys.Close()

	names, err := fsys.Enumerate("/")
	require.NoError(t, err)
	require.Equal(t, []string{"alpha.txt", "mid.lua", "sub", "zeta.txt"}, names)

	require.True(t, fsys.IsDirectory("sub"))
	require.False(t, fsys.IsDirectory("alpha.txt"))
	require.True(t, fsys.Exists("mid.lua"))
	require.False(t, fsys.Exists("missing.lua"))
}

func TestDirFS_ReadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.lua"), []byte("return 1+1\n"), 0o644))

	fsys, err := Mount(dir)
	require.NoError(t, err)
	defer fsys.Close()

	f, err := fsys.OpenRead("main.lua")
	require.NoError(t, err)
	size, err := f.Length()
	require.NoError(t, err)
	require.EqualValues(t, 11, size)
	require.NoError(t, f.Close())

	data, err := ReadFile(fsys, "/main.lua")
	require.NoError(t, err)
	require.Equal(t, "return 1+1\n", string(data))
}

func TestDirFS_NoEscape(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "mounted")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("x"), 0o644))

	fsys, err := Mount(dir)
	require.NoError(t, err)
	defer fsys.Close()

	_, err = fsys.OpenRead("../secret.txt")
	require.Error(t, err)
	require.False(t, fsys.Exists("../secret.txt"))
}

func TestDirFS_Closed(t *testing.T) {
	fsys, err := Mount(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, fsys.Close())
	require.NoError(t, fsys.Close())

	_, err = fsys.Enumerate(".")
	require.ErrorIs(t, err, ErrNotMounted)
	_, err = fsys.OpenRead("x")
	require.ErrorIs(t, err, ErrNotMounted)
}

func TestMount_MissingDir(t *testing.T) {
	_, err := Mount(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestReadExact_Short(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("abc"), 0o644))
	fsys, err := Mount(dir)
	require.NoError(t, err)
	defer fsys.Close()

	f, err := fsys.OpenRead("a")
	require.NoError(t, err)
	defer f.Close()

	_, err = ReadExact(f, 10)
	require.Error(t, err)
}

func TestDirFS_Size(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte("12345"), 0o644))

	fsys, err := Mount(dir)
	require.NoError(t, err)

	var sizer Sizer = fsys
	size, err := sizer.Size("/a.bin")
	require.NoError(t, err)
	require.Equal(t, int64(5), size)

	_, err = fsys.Size("missing.bin")
	require.Error(t, err)

	require.NoError(t, fsys.Close())
	_, err = fsys.Size("a.bin")
	require.ErrorIs(t, err, ErrNotMounted)
}
