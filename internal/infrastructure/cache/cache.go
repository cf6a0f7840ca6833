package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CachedResponse is the on-disk entry format. Entries are content-addressed
// by the hash of the request descriptor, so they stay valid across runs.
type CachedResponse struct {
	Hash      string          `json:"hash"`
	Response  json.RawMessage `json:"response"`
	CreatedAt time.Time       `json:"created_at"`
}

type Cache struct {
	cacheDir string
	ttl      time.Duration
}

// NewCache opens the cache under ~/.napari-release-tools/cache and drops
// expired entries.
func NewCache(ttl time.Duration) (*Cache, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("error getting home directory: %w", err)
	}

	return NewCacheAt(filepath.Join(homeDir, ".napari-release-tools", "cache"), ttl)
}

// NewCacheAt opens a cache rooted at dir.
func NewCacheAt(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating cache directory: %w", err)
	}

	cache := &Cache{
		cacheDir: dir,
		ttl:      ttl,
	}

	_ = cache.CleanExpired()

	return cache, nil
}

// GenerateHash returns the SHA256 hash of a request descriptor
func (c *Cache) GenerateHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// Get reads a response from the cache
func (c *Cache) Get(hash string) (json.RawMessage, bool, error) {
	filePath := filepath.Join(c.cacheDir, hash+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading cache: %w", err)
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("error decoding cache entry: %w", err)
	}

	if time.Since(cached.CreatedAt) > c.ttl {
		_ = os.Remove(filePath)
		return nil, false, nil
	}

	return cached.Response, true, nil
}

// Set stores a response in the cache
func (c *Cache) Set(hash string, response interface{}) error {
	responseData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("error encoding response: %w", err)
	}

	cached := CachedResponse{
		Hash:      hash,
		Response:  responseData,
		CreatedAt: time.Now(),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding cache entry: %w", err)
	}

	filePath := filepath.Join(c.cacheDir, hash+".json")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing cache entry: %w", err)
	}

	return nil
}

// CleanExpired removes cache files older than the TTL
func (c *Cache) CleanExpired() error {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return fmt.Errorf("error reading cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filePath := filepath.Join(c.cacheDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > c.ttl {
			_ = os.Remove(filePath)
		}
	}

	return nil
}

// Stats returns the number of cached entries and their total size in bytes.
func (c *Cache) Stats() (int, int64, error) {
	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		return 0, 0, fmt.Errorf("error reading cache directory: %w", err)
	}

	count := 0
	var size int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		count++
		size += info.Size()
	}

	return count, size, nil
}

// Clean removes the whole cache
func (c *Cache) Clean() error {
	return os.RemoveAll(c.cacheDir)
}
