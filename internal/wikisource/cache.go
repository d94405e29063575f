package wikisource

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// IndexCache stores resolved index page maps as JSON files so repeated runs
// over the same index skip the API round trip. Filenames are derived from the
// sha256 of the index title, which keeps arbitrary titles filesystem-safe.
type IndexCache struct {
	dir string
}

// NewIndexCache creates the cache directory if needed.
func NewIndexCache(dir string) (*IndexCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return &IndexCache{dir: dir}, nil
}

func (c *IndexCache) path(indexTitle string) string {
	sum := sha256.Sum256([]byte(indexTitle))
	return filepath.Join(c.dir, "Page_"+hex.EncodeToString(sum[:])+".json")
}

// Get returns the cached page map for an index, if present and readable.
// A corrupt cache file is deleted so the next fetch refreshes it.
func (c *IndexCache) Get(indexTitle string) (map[string]string, bool) {
	data, err := os.ReadFile(c.path(indexTitle))
	if err != nil {
		return nil, false
	}
	var pages map[string]string
	if err := json.Unmarshal(data, &pages); err != nil || len(pages) == 0 {
		os.Remove(c.path(indexTitle))
		return nil, false
	}
	return pages, true
}

// Put stores the page map for an index.
func (c *IndexCache) Put(indexTitle string, pages map[string]string) error {
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(indexTitle), data, 0o644)
}
