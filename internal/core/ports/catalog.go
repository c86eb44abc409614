package ports

import (
	"context"

	"go.trai.ch/natdeps/internal/core/domain"
)

// CatalogClient fetches the remote package index and resolves archives from it.
//
//go:generate go run go.uber.org/mock/mockgen -source=catalog.go -destination=mocks/mock_catalog.go -package=mocks
type CatalogClient interface {
	// Fetch downloads and decodes the catalog at url.
	Fetch(ctx context.Context, url string) (*domain.Catalog, error)

	// Resolve returns the archive location and hash of dep for platform.
	// It returns false when the catalog has no matching entry; the miss is logged.
	Resolve(catalog *domain.Catalog, dep domain.Dependency, platform domain.Platform) (domain.Resolution, bool)
}
