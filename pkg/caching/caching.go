package caching

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/wordfreq/models"
	"github.com/zeebo/xxh3"
)

// Cache provides a simple file-based cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// RunKey identifies the inputs that determine a cached result. Worker count
// is absent: it never changes the output.
type RunKey struct {
	CorpusPath     string
	CorpusSize     int64
	ModTime        time.Time
	ChunkSize      int64
	SkipStopwords  bool
	DetectLanguage bool
}

// Fingerprint hashes the key into a cache file name.
func (k RunKey) Fingerprint() string {
	abs, err := filepath.Abs(k.CorpusPath)
	if err != nil {
		abs = k.CorpusPath
	}
	s := fmt.Sprintf("%s|%d|%d|%d|%t|%t", abs, k.CorpusSize, k.ModTime.UnixNano(), k.ChunkSize, k.SkipStopwords, k.DetectLanguage)
	return fmt.Sprintf("%032x", xxh3.HashString128(s).Bytes())
}

// Get retrieves an item from the cache.
// It returns the data and true if the item is found and not expired.
// Otherwise, it returns nil and false.
func (c *Cache) Get(key string) ([]byte, bool) {
	filePath := filepath.Join(c.path, key)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, false // Cache miss
	}
	if err != nil {
		return nil, false
	}

	// Check if expired
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false // Cache miss (expired)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false // Cache miss (read error)
	}

	return data, true // Cache hit
}

// Set adds an item to the cache.
func (c *Cache) Set(key string, data []byte) error {
	filePath := filepath.Join(c.path, key)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// GetResult returns a cached result for key, if one is fresh and decodes.
func (c *Cache) GetResult(key RunKey) (*models.Result, bool) {
	data, ok := c.Get(key.Fingerprint() + ".json")
	if !ok {
		return nil, false
	}
	var result models.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	result.Cached = true
	return &result, true
}

// SetResult stores result under key.
func (c *Cache) SetResult(key RunKey, result *models.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return c.Set(key.Fingerprint()+".json", data)
}
