// Package workspace builds the adapters that depend on the per-run configuration.
package workspace

import (
	"go.trai.ch/natdeps/internal/adapters/archive"
	"go.trai.ch/natdeps/internal/adapters/catalog"
	"go.trai.ch/natdeps/internal/adapters/httpclient"
	"go.trai.ch/natdeps/internal/adapters/manifest"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
)

// Factory implements ports.AdapterFactory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory whose adapters log to log.
func NewFactory(log ports.Logger) *Factory {
	return &Factory{logger: log}
}

// ManifestStore returns a store for cfg's manifest and lock paths.
func (f *Factory) ManifestStore(cfg *domain.Config) ports.ManifestStore {
	return manifest.NewStore(cfg.ManifestPath, cfg.LockPath, f.logger)
}

// CatalogClient returns a catalog client caching responses under cfg's cache directory.
func (f *Factory) CatalogClient(cfg *domain.Config) ports.CatalogClient {
	return catalog.NewClient(httpclient.New(cfg.HTTP, f.logger), cfg.CacheDir, f.logger)
}

// ArchiveFetcher returns an archive fetcher using cfg's HTTP settings.
func (f *Factory) ArchiveFetcher(cfg *domain.Config) ports.ArchiveFetcher {
	return archive.NewFetcher(httpclient.NewStreaming(cfg.HTTP, f.logger), f.logger)
}
