package ports

import "go.trai.ch/natdeps/internal/core/domain"

// AdapterFactory builds the adapters whose behaviour depends on the run configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=adapter_factory.go -destination=mocks/mock_adapter_factory.go -package=mocks
type AdapterFactory interface {
	// ManifestStore returns a store reading and writing the files named in cfg.
	ManifestStore(cfg *domain.Config) ManifestStore
	// CatalogClient returns a catalog client using the HTTP settings in cfg.
	CatalogClient(cfg *domain.Config) CatalogClient
	// ArchiveFetcher returns an archive fetcher using the HTTP settings in cfg.
	ArchiveFetcher(cfg *domain.Config) ArchiveFetcher
}
