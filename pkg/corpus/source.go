// Package corpus opens the flat text file a run scans. The file is treated
// as an immutable byte sequence addressable by offset; where the platform
// allows it the whole file is memory-mapped so workers can read their
// chunks without copying.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
)

// ErrInputUnavailable is returned when the corpus cannot be opened or read.
var ErrInputUnavailable = errors.New("corpus unavailable")

// hashWindow is how much of each end of the file QuickHash reads.
const hashWindow = 64 << 10

// File is a read-only corpus. It is safe for concurrent use by multiple
// goroutines.
type File struct {
	path    string
	f       *os.File
	data    []byte // nil when the file is not mapped
	size    int64
	modTime time.Time
}

// Open opens path for random-access reads. An empty file is valid and
// yields a corpus of size 0.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnavailable, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: stat %s: %w", ErrInputUnavailable, path, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputUnavailable, path)
	}

	cf := &File{
		path:    path,
		f:       f,
		size:    info.Size(),
		modTime: info.ModTime(),
	}

	if cf.size > 0 && cf.size <= math.MaxInt {
		// A failed mapping is not fatal; ReadAt falls back to the file.
		if data, err := mmap(f, int(cf.size)); err == nil {
			cf.data = data
		}
	}

	return cf, nil
}

// Path returns the path the corpus was opened from.
func (c *File) Path() string {
	return c.path
}

// Size returns the corpus length in bytes.
func (c *File) Size() int64 {
	return c.size
}

// ModTime returns the file's modification time at open.
func (c *File) ModTime() time.Time {
	return c.modTime
}

// Mapped reports whether the corpus is memory-mapped.
func (c *File) Mapped() bool {
	return c.data != nil
}

// ReadAt implements io.ReaderAt.
func (c *File) ReadAt(p []byte, off int64) (int, error) {
	if c.data == nil {
		n, err := c.f.ReadAt(p, off)
		if err != nil && !errors.Is(err, io.EOF) {
			return n, fmt.Errorf("%w: read at %d: %w", ErrInputUnavailable, off, err)
		}
		return n, err
	}

	if off < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", ErrInputUnavailable, off)
	}
	if off >= c.size {
		return 0, io.EOF
	}
	n := copy(p, c.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Slice returns the mapped bytes [off, off+n) without copying, or nil when
// the corpus is not mapped. The slice must not be modified.
func (c *File) Slice(off, n int64) []byte {
	if c.data == nil || off < 0 || off+n > c.size {
		return nil
	}
	return c.data[off : off+n : off+n]
}

// Sample returns up to n bytes from the start of the corpus.
func (c *File) Sample(n int) ([]byte, error) {
	if int64(n) > c.size {
		n = int(c.size)
	}
	buf := make([]byte, n)
	read, err := c.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// QuickHash fingerprints the corpus from its size and the first and last
// 64 KiB. It is cheap for very large files but does not detect edits that
// leave both ends and the length unchanged.
func (c *File) QuickHash() (string, error) {
	h := xxh3.New()
	_, _ = h.WriteString(strconv.FormatInt(c.size, 10))

	head := min(c.size, hashWindow)
	tailStart := max(head, c.size-hashWindow)
	for _, span := range [][2]int64{{0, head}, {tailStart, c.size}} {
		buf := make([]byte, span[1]-span[0])
		if _, err := c.ReadAt(buf, span[0]); err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		_, _ = h.Write(buf)
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Close unmaps and closes the file.
func (c *File) Close() error {
	var unmapErr error
	if c.data != nil {
		unmapErr = munmap(c.data)
		c.data = nil
	}
	if err := c.f.Close(); err != nil {
		return err
	}
	return unmapErr
}
