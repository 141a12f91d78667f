package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/wordfreq/models"
	"gopkg.in/yaml.v3"
)

type Storage struct{}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func (s *Storage) SaveFile(filePath string, content []byte) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(fn string) bool {
	return fileExists(fn)
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// EncodeResult renders a result in the requested format. TSV carries only
// the ranked table, one "stem\tcount" line per entry.
func EncodeResult(result *models.Result, format models.OutputFormat) ([]byte, error) {
	switch format {
	case models.FormatTSV, "":
		var buf bytes.Buffer
		for _, e := range result.Entries {
			fmt.Fprintf(&buf, "%s\t%d\n", e.Stem, e.Count)
		}
		return buf.Bytes(), nil
	case models.FormatJSON:
		return json.MarshalIndent(result, "", "  ")
	case models.FormatYAML:
		return yaml.Marshal(result)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", models.ErrInvalidConfig, format)
	}
}

// WriteResult encodes result and saves it to filePath.
func (s *Storage) WriteResult(filePath string, result *models.Result, format models.OutputFormat) error {
	data, err := EncodeResult(result, format)
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return s.SaveFile(filePath, data)
}
