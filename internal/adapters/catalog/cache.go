package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/zerr"
)

// responseCache keeps the last good catalog body per URL with its validators.
// A nil *responseCache is a disabled cache.
type responseCache struct {
	dir string
}

func newResponseCache(cacheDir string) *responseCache {
	return &responseCache{dir: domain.CatalogCachePath(cacheDir)}
}

func (c *responseCache) path(catalogURL string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.json", xxhash.Sum64String(catalogURL)))
}

// load returns the cached entry for catalogURL, or nil when there is none or it is unreadable.
func (c *responseCache) load(catalogURL string) *cacheEntry {
	if c == nil {
		return nil
	}

	//nolint:gosec // Path is constructed from the cache directory and a hashed filename
	data, err := os.ReadFile(c.path(catalogURL))
	if err != nil {
		return nil
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.URL != catalogURL {
		return nil
	}
	return &entry
}

// store records body for catalogURL when the response carries a validator.
func (c *responseCache) store(catalogURL string, header http.Header, body []byte) error {
	if c == nil {
		return nil
	}

	entry := cacheEntry{
		URL:          catalogURL,
		ETag:         header.Get("ETag"),
		LastModified: header.Get("Last-Modified"),
		FetchedAt:    time.Now().UTC(),
		Body:         body,
	}

	target := c.path(catalogURL)
	if entry.ETag == "" && entry.LastModified == "" {
		if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, "failed to drop stale catalog cache"), "path", target)
		}
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, "failed to encode catalog cache")
	}

	if err := os.MkdirAll(c.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create catalog cache directory"), "path", c.dir)
	}

	tmp, err := os.CreateTemp(c.dir, "catalog-*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write catalog cache"), "path", c.dir)
	}
	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, "failed to write catalog cache"), "path", tmpName)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write catalog cache"), "path", tmpName)
	}

	if err := os.Rename(tmpName, target); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write catalog cache"), "path", target)
	}
	return nil
}
