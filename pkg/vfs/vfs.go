// Package vfs provides the mounted filesystem capability used by the asset
// packer and by the loose-file bootstrap path.
package vfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrNotMounted is returned by operations on an unmounted or closed filesystem
var ErrNotMounted = errors.New("❌ filesystem not mounted")

// File is an open, read-only handle on one entry
type File interface {
	io.Reader
	io.Closer

	// Length returns the entry size in bytes
	Length() (int64, error)
}

// FileSystem is a flat view of a mounted directory. Names are slash-separated
// and relative to the mount point.
type FileSystem interface {
	// Enumerate lists the names directly under dir, sorted by name
	Enumerate(dir string) ([]string, error)

	// IsDirectory reports whether name exists and is a directory
	IsDirectory(name string) bool

	// OpenRead opens name for reading
	OpenRead(name string) (File, error)

	// Exists reports whether name exists
	Exists(name string) bool
}

// Sizer is implemented by filesystems that can report a size without
// opening the entry
type Sizer interface {
	Size(name string) (int64, error)
}

// DirFS mounts a host directory. Lookups cannot escape the mount point.
type DirFS struct {
	path string
	root *os.Root
}

// Mount mounts the directory at path
func Mount(path string) (*DirFS, error) {
	root, err := os.OpenRoot(path)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", path, err)
	}
	return &DirFS{path: path, root: root}, nil
}

// Path returns the mounted host directory
func (d *DirFS) Path() string {
	return d.path
}

// Close unmounts the directory
func (d *DirFS) Close() error {
	if d.root == nil {
		return nil
	}
	err := d.root.Close()
	d.root = nil
	return err
}

// Enumerate lists the names directly under dir. Use "." or "/" for the mount point.
func (d *DirFS) Enumerate(dir string) ([]string, error) {
	if d.root == nil {
		return nil, ErrNotMounted
	}
	entries, err := fs.ReadDir(d.root.FS(), cleanName(dir))
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// IsDirectory reports whether name is a directory
func (d *DirFS) IsDirectory(name string) bool {
	if d.root == nil {
		return false
	}
	info, err := d.root.Stat(cleanName(name))
	return err == nil && info.IsDir()
}

// Exists reports whether name exists
func (d *DirFS) Exists(name string) bool {
	if d.root == nil {
		return false
	}
	_, err := d.root.Stat(cleanName(name))
	return err == nil
}

// Size returns the size of name in bytes
func (d *DirFS) Size(name string) (int64, error) {
	if d.root == nil {
		return 0, ErrNotMounted
	}
	info, err := d.root.Stat(cleanName(name))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// OpenRead opens name for reading
func (d *DirFS) OpenRead(name string) (File, error) {
	if d.root == nil {
		return nil, ErrNotMounted
	}
	f, err := d.root.Open(cleanName(name))
	if err != nil {
		return nil, err
	}
	return &osFile{f: f}, nil
}

type osFile struct {
	f *os.File
}

func (o *osFile) Read(p []byte) (int, error) {
	return o.f.Read(p)
}

func (o *osFile) Close() error {
	return o.f.Close()
}

func (o *osFile) Length() (int64, error) {
	info, err := o.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ReadExact reads exactly n bytes from f
func ReadExact(f io.Reader, n int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length: %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadFile opens name, reads it fully and closes it
func ReadFile(fsys FileSystem, name string) ([]byte, error) {
	f, err := fsys.OpenRead(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	size, err := f.Length()
	if err != nil {
		return nil, err
	}
	return ReadExact(f, size)
}

// cleanName maps PhysFS-style names ("/" and leading slashes) onto io/fs names
func cleanName(name string) string {
	for len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	if name == "" {
		return "."
	}
	return name
}
