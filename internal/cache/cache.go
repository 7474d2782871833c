// Package cache is a small key-value store for parsed records, one JSON
// file per entry. It exists so repeated runs skip re-extraction, nothing
// more; anything resembling a database is out of scope here.
package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Cache stores entries under dir, keyed by an MD5 of the logical key with
// an optional prefix for namespacing (e.g. "resume", "job").
type Cache struct {
	dir string
}

type entry struct {
	Key      string `json:"key"`
	CachedAt string `json:"cached_at"`
	Data     any    `json:"data"`
}

// New creates the cache directory if needed and returns a Cache over it.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Set stores data under key. Data must be JSON-serializable.
func (c *Cache) Set(key, prefix string, data any) error {
	payload := entry{
		Key:      key,
		CachedAt: time.Now().UTC().Format(time.RFC3339),
		Data:     data,
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	if err := os.WriteFile(c.path(key, prefix), encoded, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

// Get loads the entry for key into out, reporting whether it was found.
// The stored data arrives as a generic map and is decoded into the typed
// record by json tag name.
func (c *Cache) Get(key, prefix string, out any) (bool, error) {
	raw, err := os.ReadFile(c.path(key, prefix))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache entry: %w", err)
	}

	var payload entry
	if err := json.Unmarshal(raw, &payload); err != nil {
		return false, fmt.Errorf("decoding cache entry: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	})
	if err != nil {
		return false, fmt.Errorf("building cache decoder: %w", err)
	}
	if err := decoder.Decode(payload.Data); err != nil {
		return false, fmt.Errorf("decoding cached data: %w", err)
	}

	return true, nil
}

// Exists reports whether an entry is cached for key.
func (c *Cache) Exists(key, prefix string) bool {
	_, err := os.Stat(c.path(key, prefix))
	return err == nil
}

// Clear removes all entries, or only those under prefix when it is
// non-empty.
func (c *Cache) Clear(prefix string) error {
	pattern := "*.json"
	if prefix != "" {
		pattern = prefix + "_*.json"
	}

	matches, err := filepath.Glob(filepath.Join(c.dir, pattern))
	if err != nil {
		return fmt.Errorf("listing cache entries: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("removing cache entry: %w", err)
		}
	}

	return nil
}

// Keys returns the logical keys of all cached entries under prefix
// (all entries when prefix is empty). Unreadable files are skipped.
func (c *Cache) Keys(prefix string) ([]string, error) {
	pattern := "*.json"
	if prefix != "" {
		pattern = prefix + "_*.json"
	}

	matches, err := filepath.Glob(filepath.Join(c.dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("listing cache entries: %w", err)
	}

	keys := make([]string, 0, len(matches))
	for _, match := range matches {
		raw, err := os.ReadFile(match)
		if err != nil {
			continue
		}
		var payload entry
		if err := json.Unmarshal(raw, &payload); err != nil {
			continue
		}
		keys = append(keys, payload.Key)
	}

	return keys, nil
}

func (c *Cache) path(key, prefix string) string {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(key)))
	name := hash + ".json"
	if prefix != "" {
		name = prefix + "_" + name
	}
	return filepath.Join(c.dir, name)
}
