package catalog

import (
	"encoding/json"
	"time"
)

// catalogDTO is the wire shape of the catalog document.
type catalogDTO struct {
	ArchiveRoot *string               `json:"archive-root"`
	Packages    map[string]packageDTO `json:"packages"`
}

type packageDTO struct {
	Versions map[string]versionDTO `json:"versions"`
}

type versionDTO struct {
	Platforms map[string]artifactDTO `json:"platforms"`
}

type artifactDTO struct {
	SHA256 string `json:"sha256"`
}

// cacheEntry is the on-disk record of the last good catalog response.
type cacheEntry struct {
	URL          string          `json:"url"`
	ETag         string          `json:"etag,omitempty"`
	LastModified string          `json:"last_modified,omitempty"`
	FetchedAt    time.Time       `json:"fetched_at"`
	Body         json.RawMessage `json:"body"`
}
