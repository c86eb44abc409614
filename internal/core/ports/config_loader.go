package ports

import "go.trai.ch/natdeps/internal/core/domain"

// ConfigLoader defines the interface for loading the tool configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and returns the resolved configuration.
	// A missing file yields the defaults. Relative paths in the result are resolved
	// against the directory holding the file.
	Load(path string) (*domain.Config, error)
}
