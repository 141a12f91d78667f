// Package models defines data structures for configuration and results.
package models

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// DefaultChunkSize is the default chunk length (1 MiB).
const DefaultChunkSize ByteSize = 1 << 20

const DefaultTop = 25

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// ByteSize is a size in bytes that can be written in YAML or on the command
// line either as a plain integer or in human form ("4 MiB", "512KB").
type ByteSize int64

// ParseByteSize parses a human-readable size.
func ParseByteSize(s string) (ByteSize, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad size %q: %w", ErrInvalidConfig, s, err)
	}
	return ByteSize(n), nil
}

func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseByteSize(value.Value)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

func (b ByteSize) MarshalYAML() (interface{}, error) {
	return humanize.IBytes(uint64(b)), nil
}

func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

// OutputFormat selects how a ranked table is written to disk.
type OutputFormat string

const (
	FormatTSV  OutputFormat = "tsv"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Config holds runtime configuration for a counting run. Values come from an
// optional YAML file and are overridden by CLI flags.
type Config struct {
	ChunkSize      ByteSize      `yaml:"chunk_size"`
	WorkerCount    int           `yaml:"worker_count"`
	Top            int           `yaml:"top"`
	SkipStopwords  bool          `yaml:"skip_stopwords"`
	DetectLanguage bool          `yaml:"detect_language"`
	Output         string        `yaml:"output,omitempty"`
	Format         OutputFormat  `yaml:"format,omitempty"`
	CacheDir       string        `yaml:"cache_dir,omitempty"`
	CacheTTL       time.Duration `yaml:"cache_ttl,omitempty"`
	Archive        bool          `yaml:"archive"`
	DBPath         string        `yaml:"db_path,omitempty"`
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:   DefaultChunkSize,
		WorkerCount: runtime.NumCPU(),
		Top:         DefaultTop,
		Format:      FormatTSV,
		CacheTTL:    24 * time.Hour,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills zero values with defaults and rejects values that cannot
// drive a run.
func (c *Config) Validate() error {
	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size must be at least 1 byte, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("%w: worker_count must not be negative, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.WorkerCount == 0 {
		c.WorkerCount = runtime.NumCPU()
	}
	if c.Top < 0 {
		return fmt.Errorf("%w: top must not be negative, got %d", ErrInvalidConfig, c.Top)
	}

	switch c.Format {
	case "":
		c.Format = FormatTSV
	case FormatTSV, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: unknown format %q (use tsv, json or yaml)", ErrInvalidConfig, c.Format)
	}
	return nil
}
