package audio

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores synthesized audio on disk keyed by provider, language and text
type Cache struct {
	dir string
}

// NewCache creates the cache directory
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// path generates a cache file path for the given request
func (c *Cache) path(provider, langCode, text string) string {
	h := md5.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(langCode))
	h.Write([]byte{0})
	h.Write([]byte(text))
	hash := hex.EncodeToString(h.Sum(nil))

	// Use first 2 chars as subdirectory for better file system performance
	return filepath.Join(c.dir, hash[:2], hash[2:]+".mp3")
}

// Get returns cached audio
func (c *Cache) Get(provider, langCode, text string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(provider, langCode, text))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Put stores audio
func (c *Cache) Put(provider, langCode, text string, data []byte) error {
	path := c.path(provider, langCode, text)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clear removes all cached audio files
func (c *Cache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Stats returns cache statistics
func (c *Cache) Stats() (fileCount int, totalSize int64, err error) {
	err = filepath.Walk(c.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			fileCount++
			totalSize += info.Size()
		}
		return nil
	})
	if os.IsNotExist(err) {
		return 0, 0, nil
	}
	return fileCount, totalSize, err
}
