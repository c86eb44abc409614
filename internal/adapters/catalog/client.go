// Package catalog implements the CatalogClient port over HTTP.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"go.trai.ch/natdeps/internal/adapters/httpclient"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxCatalogSize bounds the catalog document read into memory.
const maxCatalogSize = 32 << 20

// Client implements ports.CatalogClient.
type Client struct {
	http   *httpclient.Client
	cache  *responseCache
	logger ports.Logger
}

// NewClient creates a catalog client. Responses are cached under cacheDir for
// conditional requests; an empty cacheDir disables the cache.
func NewClient(transport *httpclient.Client, cacheDir string, log ports.Logger) *Client {
	var cache *responseCache
	if cacheDir != "" {
		cache = newResponseCache(cacheDir)
	}
	return &Client{http: transport, cache: cache, logger: log}
}

// Fetch downloads and decodes the catalog at catalogURL.
//
// A cached copy is never used without asking the server: it only serves a 304 answer
// to a conditional request.
func (c *Client) Fetch(ctx context.Context, catalogURL string) (*domain.Catalog, error) {
	cached := c.cache.load(catalogURL)

	header := http.Header{}
	if cached != nil {
		if cached.ETag != "" {
			header.Set("If-None-Match", cached.ETag)
		}
		if cached.LastModified != "" {
			header.Set("If-Modified-Since", cached.LastModified)
		}
	}

	resp, err := c.http.Get(ctx, catalogURL, header)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogUnreachable, err), "url", catalogURL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var body []byte
	switch {
	case resp.StatusCode == http.StatusNotModified && cached != nil:
		c.logger.Debug("Catalog not modified, using cached copy of " + catalogURL)
		body = cached.Body
	case resp.StatusCode == http.StatusNotFound:
		return nil, zerr.With(zerr.Wrap(domain.ErrCatalogNotFound, "catalog URL answered 404"), "url", catalogURL)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
		if err != nil {
			return nil, zerr.With(errors.Join(domain.ErrCatalogUnreachable, err), "url", catalogURL)
		}
	default:
		serverErr := zerr.With(zerr.Wrap(domain.ErrCatalogServerError, resp.Status), "status_code", resp.StatusCode)
		return nil, zerr.With(serverErr, "url", catalogURL)
	}

	catalog, err := decode(catalogURL, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusNotModified {
		if err := c.cache.store(catalogURL, resp.Header, body); err != nil {
			c.logger.Warn("Failed to cache catalog: " + err.Error())
		}
	}

	return catalog, nil
}

// Resolve finds dep's archive for platform. A miss is logged and reported as false.
func (c *Client) Resolve(catalog *domain.Catalog, dep domain.Dependency, platform domain.Platform) (domain.Resolution, bool) {
	artifact, err := catalog.Artifact(dep, platform)
	if err != nil {
		c.logger.Error(err)
		return domain.Resolution{}, false
	}

	archiveURL, err := ArchiveURL(catalog, domain.ArchiveName(dep, platform))
	if err != nil {
		c.logger.Error(zerr.With(err, "package", dep.String()))
		return domain.Resolution{}, false
	}

	return domain.Resolution{URL: archiveURL, SHA256: artifact.SHA256}, true
}

// ArchiveURL derives the download URL of an archive: the directory of the catalog URL,
// then the catalog's archive root, then the file name. An absolute archive root
// replaces the catalog's location entirely.
func ArchiveURL(catalog *domain.Catalog, fileName string) (string, error) {
	base, err := url.Parse(catalog.BaseURL)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrCatalogInvalid, err), "url", catalog.BaseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	base.Path = path.Dir(base.Path)
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	base.RawPath = ""
	base.RawQuery = ""
	base.Fragment = ""

	rootRef := catalog.ArchiveRoot
	if !strings.HasSuffix(rootRef, "/") {
		rootRef += "/"
	}
	root, err := url.Parse(rootRef)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrCatalogInvalid, err), "archive_root", catalog.ArchiveRoot)
	}

	file := &url.URL{Path: fileName}
	return base.ResolveReference(root).ResolveReference(file).String(), nil
}

func decode(catalogURL string, body []byte) (*domain.Catalog, error) {
	var dto catalogDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrCatalogInvalid, err), "url", catalogURL)
	}

	switch {
	case dto.ArchiveRoot == nil:
		return nil, zerr.With(zerr.Wrap(domain.ErrCatalogInvalid, "missing archive-root"), "url", catalogURL)
	case dto.Packages == nil:
		return nil, zerr.With(zerr.Wrap(domain.ErrCatalogInvalid, "missing packages"), "url", catalogURL)
	}

	catalog := &domain.Catalog{
		BaseURL:     catalogURL,
		ArchiveRoot: *dto.ArchiveRoot,
		Packages:    make(map[string]domain.CatalogPackage, len(dto.Packages)),
	}

	for name, pkg := range dto.Packages {
		versions := make(map[string]domain.CatalogVersion, len(pkg.Versions))
		for version, v := range pkg.Versions {
			platforms := make(map[domain.Platform]domain.CatalogArtifact, len(v.Platforms))
			for platform, artifact := range v.Platforms {
				platforms[domain.Platform(platform)] = domain.CatalogArtifact{SHA256: artifact.SHA256}
			}
			versions[version] = domain.CatalogVersion{Platforms: platforms}
		}
		catalog.Packages[name] = domain.CatalogPackage{Versions: versions}
	}

	return catalog, nil
}
