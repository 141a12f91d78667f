package corpus

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
	return path
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("Open() error = %v, want ErrInputUnavailable", err)
	}
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrInputUnavailable) {
		t.Fatalf("Open(dir) error = %v, want ErrInputUnavailable", err)
	}
}

func TestOpen_Empty(t *testing.T) {
	c, err := Open(writeCorpus(t, ""))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}
	if c.Mapped() {
		t.Error("empty corpus should not be mapped")
	}
	if n, err := c.ReadAt(make([]byte, 4), 0); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadAt() = %d, %v, want 0, EOF", n, err)
	}
}

func TestFile_ReadAt(t *testing.T) {
	content := "the cats running fastest boxes"
	path := writeCorpus(t, content)
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	if c.Path() != path {
		t.Errorf("Path() = %q, want %q", c.Path(), path)
	}
	if c.Size() != int64(len(content)) {
		t.Fatalf("Size() = %d, want %d", c.Size(), len(content))
	}

	tests := []struct {
		name    string
		off     int64
		n       int
		want    string
		wantEOF bool
	}{
		{name: "start", off: 0, n: 3, want: "the"},
		{name: "middle", off: 4, n: 4, want: "cats"},
		{name: "tail", off: 25, n: 5, want: "boxes"},
		{name: "past end", off: 25, n: 10, want: "boxes", wantEOF: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.n)
			n, err := c.ReadAt(buf, tt.off)
			if got := string(buf[:n]); got != tt.want {
				t.Errorf("ReadAt() = %q, want %q", got, tt.want)
			}
			if tt.wantEOF != errors.Is(err, io.EOF) {
				t.Errorf("ReadAt() error = %v, wantEOF %v", err, tt.wantEOF)
			}
			if !tt.wantEOF && err != nil {
				t.Errorf("ReadAt() unexpected error = %v", err)
			}
		})
	}
}

func TestFile_SliceMatchesReadAt(t *testing.T) {
	content := strings.Repeat("alpha beta gamma ", 100)
	c, err := Open(writeCorpus(t, content))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	if !c.Mapped() {
		t.Skip("corpus not memory-mapped on this platform")
	}

	got := c.Slice(17, 100)
	if !bytes.Equal(got, []byte(content[17:117])) {
		t.Errorf("Slice() = %q, want %q", got, content[17:117])
	}
	if c.Slice(int64(len(content))-1, 2) != nil {
		t.Error("Slice() past the end should return nil")
	}
}

func TestFile_Sample(t *testing.T) {
	c, err := Open(writeCorpus(t, "short corpus"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	got, err := c.Sample(5)
	if err != nil || string(got) != "short" {
		t.Errorf("Sample(5) = %q, %v", got, err)
	}
	got, err = c.Sample(1000)
	if err != nil || string(got) != "short corpus" {
		t.Errorf("Sample(1000) = %q, %v", got, err)
	}
}

func TestFile_QuickHash(t *testing.T) {
	open := func(content string) *File {
		t.Helper()
		c, err := Open(writeCorpus(t, content))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		t.Cleanup(func() { _ = c.Close() })
		return c
	}

	a, err := open("one two three").QuickHash()
	if err != nil {
		t.Fatalf("QuickHash() error = %v", err)
	}
	b, _ := open("one two three").QuickHash()
	d, _ := open("one two four").QuickHash()

	if a != b {
		t.Errorf("same content hashed differently: %s vs %s", a, b)
	}
	if a == d {
		t.Errorf("different content hashed the same: %s", a)
	}
	if len(a) != 16 {
		t.Errorf("hash %q should be 16 hex digits", a)
	}
}
