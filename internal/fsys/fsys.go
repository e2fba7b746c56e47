package fsys

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gorewood/gameroot/internal/roots"
)

var (
	// ErrNotFound reports an empty name, a missing file or an unopenable one.
	ErrNotFound = errors.New("file not found")
	// ErrShortIO reports a whole-file read or write that moved fewer bytes
	// than required.
	ErrShortIO = errors.New("short read or write")
)

// Platform is the subset of platform services the facade needs.
type Platform interface {
	Exists(path string) bool
	Writable(path string) bool
	Chmod(path string, writable bool) error
	ExecutableDir() string
	Getwd() string
}

// FileSystem resolves path IDs against a roots.Resolution.
type FileSystem struct {
	roots *roots.Resolution
	plat  Platform
}

// New creates a FileSystem bound to res.
func New(res *roots.Resolution, plat Platform) *FileSystem {
	return &FileSystem{roots: res, plat: plat}
}

// ResolvePath maps name and id to an absolute path. Absolute names are
// returned unchanged; an empty name is ErrNotFound.
func (fs *FileSystem) ResolvePath(name string, id PathID) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}
	if isAbs(name) {
		return name, nil
	}

	var base string
	switch {
	case id.isGame():
		base = fs.roots.GameRoot()
	case id.isExecutable():
		base = fs.plat.ExecutableDir()
	}
	if base == "" {
		base = fs.plat.Getwd()
	}

	return roots.FixSlashes(roots.NormalizeDir(base) + name), nil
}

// isAbs accepts leading slashes of either style as absolute so a rooted
// name is never re-anchored.
func isAbs(name string) bool {
	return filepath.IsAbs(name) || name[0] == '/' || name[0] == '\\'
}

// Open opens name with a C-style mode string ("rb", "wb", "a+", ...).
func (fs *FileSystem) Open(name, mode string, id PathID) (*Handle, error) {
	path, err := fs.ResolvePath(name, id)
	if err != nil {
		return nil, err
	}
	flag, err := parseMode(mode)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, flag, 0o666)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return &Handle{file: file}, nil
}

// Size opens name, measures it and closes it. Returns 0 if it cannot be
// opened.
func (fs *FileSystem) Size(name string, id PathID) int64 {
	handle, err := fs.Open(name, "rb", id)
	if err != nil {
		return 0
	}
	defer handle.Close() //nolint:errcheck // read-only handle

	return handle.Size()
}

// FileExists reports whether name resolves to an existing path.
func (fs *FileSystem) FileExists(name string, id PathID) bool {
	path, err := fs.ResolvePath(name, id)
	if err != nil {
		return false
	}
	return fs.plat.Exists(path)
}

// IsWritable reports whether the process may write name.
func (fs *FileSystem) IsWritable(name string, id PathID) bool {
	path, err := fs.ResolvePath(name, id)
	if err != nil {
		return false
	}
	return fs.plat.Writable(path)
}

// SetWritable sets name to 0666 or 0444.
func (fs *FileSystem) SetWritable(name string, writable bool, id PathID) error {
	path, err := fs.ResolvePath(name, id)
	if err != nil {
		return err
	}
	if err := fs.plat.Chmod(path, writable); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

// ModifiedTime returns name's modification time.
func (fs *FileSystem) ModifiedTime(name string, id PathID) (time.Time, error) {
	path, err := fs.ResolvePath(name, id)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return info.ModTime(), nil
}

// ModifiedUnix is ModifiedTime in Unix seconds, or -1 on failure.
func (fs *FileSystem) ModifiedUnix(name string, id PathID) int64 {
	modTime, err := fs.ModifiedTime(name, id)
	if err != nil {
		return -1
	}
	return modTime.Unix()
}

// ReadWholeFile reads name into a fresh buffer. startByte is honored only
// when it lies strictly inside the file; maxBytes > 0 caps the length.
// Reading zero bytes, or fewer than expected, is ErrShortIO.
func (fs *FileSystem) ReadWholeFile(name string, id PathID, maxBytes, startByte int64) ([]byte, error) {
	handle, err := fs.Open(name, "rb", id)
	if err != nil {
		return nil, err
	}
	defer handle.Close() //nolint:errcheck // read-only handle

	length := handle.Size()
	if startByte > 0 && startByte < length {
		if _, err := handle.Seek(startByte, SeekHead); err != nil {
			return nil, fmt.Errorf("seeking %s: %w", name, err)
		}
		length -= startByte
	}
	if maxBytes > 0 && length > maxBytes {
		length = maxBytes
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrShortIO, name)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(handle, buf); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrShortIO, name, err)
	}
	return buf, nil
}

// WriteWholeFile truncates name, writes data to it and flushes it to disk
// before closing.
func (fs *FileSystem) WriteWholeFile(name string, id PathID, data []byte) error {
	handle, err := fs.Open(name, "wb", id)
	if err != nil {
		return err
	}

	written, writeErr := handle.Write(data)
	var flushErr error
	if writeErr == nil {
		flushErr = handle.Flush()
	}
	closeErr := handle.Close()
	if writeErr != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrShortIO, name, writeErr)
	}
	if written != len(data) {
		return fmt.Errorf("%w: wrote %d of %d bytes to %s", ErrShortIO, written, len(data), name)
	}
	if flushErr != nil {
		return fmt.Errorf("flushing %s: %w", name, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", name, closeErr)
	}
	return nil
}
