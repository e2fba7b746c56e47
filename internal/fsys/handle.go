package fsys

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInvalidHandle is returned by every method called on a nil Handle.
var ErrInvalidHandle = errors.New("invalid file handle")

// Origin is the reference point for Seek.
type Origin int

const (
	SeekHead    Origin = iota // from the start of the file
	SeekCurrent               // from the current position
	SeekTail                  // from the end of the file
)

func (o Origin) whence() int {
	switch o {
	case SeekCurrent:
		return io.SeekCurrent
	case SeekTail:
		return io.SeekEnd
	default:
		return io.SeekStart
	}
}

// Handle is an open file owned by the caller that opened it.
type Handle struct {
	file *os.File
}

// Read implements io.Reader.
func (h *Handle) Read(p []byte) (int, error) {
	if h == nil || h.file == nil {
		return 0, ErrInvalidHandle
	}
	return h.file.Read(p)
}

// Write implements io.Writer.
func (h *Handle) Write(p []byte) (int, error) {
	if h == nil || h.file == nil {
		return 0, ErrInvalidHandle
	}
	return h.file.Write(p)
}

// Seek moves the file position and returns the new offset.
func (h *Handle) Seek(offset int64, origin Origin) (int64, error) {
	if h == nil || h.file == nil {
		return 0, ErrInvalidHandle
	}
	return h.file.Seek(offset, origin.whence())
}

// Tell returns the current offset, or 0 if it cannot be determined.
func (h *Handle) Tell() int64 {
	if h == nil || h.file == nil {
		return 0
	}
	pos, err := h.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	return pos
}

// Size measures the file by seeking to its end, then restores the
// original position.
func (h *Handle) Size() int64 {
	if h == nil || h.file == nil {
		return 0
	}
	cur := h.Tell()
	end, err := h.file.Seek(0, io.SeekEnd)
	if _, restoreErr := h.file.Seek(cur, io.SeekStart); restoreErr != nil || err != nil {
		return 0
	}
	return end
}

// Flush commits buffered writes to stable storage.
func (h *Handle) Flush() error {
	if h == nil || h.file == nil {
		return ErrInvalidHandle
	}
	return h.file.Sync()
}

// Close releases the handle. Closing twice returns ErrInvalidHandle.
func (h *Handle) Close() error {
	if h == nil || h.file == nil {
		return ErrInvalidHandle
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// parseMode converts a C stdio mode string to os.OpenFile flags. The 'b'
// and 't' qualifiers are accepted and ignored.
func parseMode(mode string) (int, error) {
	if mode == "" {
		return 0, fmt.Errorf("empty open mode")
	}

	var flag int
	switch mode[0] {
	case 'r':
		flag = os.O_RDONLY
	case 'w':
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case 'a':
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return 0, fmt.Errorf("invalid open mode %q", mode)
	}

	for _, qualifier := range mode[1:] {
		switch qualifier {
		case '+':
			flag &^= os.O_RDONLY | os.O_WRONLY
			flag |= os.O_RDWR
		case 'x':
			if !strings.ContainsAny(mode[:1], "wa") {
				return 0, fmt.Errorf("invalid open mode %q", mode)
			}
			flag |= os.O_EXCL
		case 'b', 't':
		default:
			return 0, fmt.Errorf("invalid open mode %q", mode)
		}
	}
	return flag, nil
}
