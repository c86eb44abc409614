// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/natdeps/internal/core/domain"

// ManifestStore reads the desired state and reads and writes the installed state.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// LoadDesired returns the parsed manifest. A missing manifest yields an empty set.
	LoadDesired() (*domain.DesiredSet, error)

	// LoadInstalled returns the parsed lock file. A missing lock file yields an empty set.
	LoadInstalled() (*domain.InstalledSet, error)

	// CommitInstalled atomically replaces the lock file with set.
	CommitInstalled(set *domain.InstalledSet) error
}
