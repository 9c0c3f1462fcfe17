package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Dir is where fetched feed payloads are kept. Tests point it at a temp dir.
var Dir = filepath.Join("cache", "feeds")

// GetCachePath returns the cache file path for a feed URL.
func GetCachePath(feedURL string) string {
	return filepath.Join(Dir, generateHash(feedURL)+".json")
}

// generateHash generates an xxHash hash for the given string
func generateHash(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// EnsureCacheDir ensures the cache directory exists
func EnsureCacheDir() error {
	return os.MkdirAll(Dir, 0755)
}

// Write stores a fetched feed payload for the given URL.
func Write(feedURL string, data []byte) error {
	if err := EnsureCacheDir(); err != nil {
		return err
	}
	return os.WriteFile(GetCachePath(feedURL), data, 0644)
}

// Read returns the cached payload for a feed URL if it exists and is not
// older than maxAge.
func Read(feedURL string, maxAge time.Duration) ([]byte, bool) {
	cachePath := GetCachePath(feedURL)

	info, err := os.Stat(cachePath)
	if err != nil {
		return nil, false
	}

	if time.Since(info.ModTime()) > maxAge {
		return nil, false
	}

	content, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}

	return content, true
}

// Clear removes the cached payload for a feed URL.
func Clear(feedURL string) error {
	err := os.Remove(GetCachePath(feedURL))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearOld removes cached payloads older than the specified duration.
func ClearOld(maxAge time.Duration) error {
	return filepath.Walk(Dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}

		return nil
	})
}
