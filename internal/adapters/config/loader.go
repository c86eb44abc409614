// Package config provides the configuration loader for natdeps.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the configuration file at path. An empty path means .natdeps.yaml in
// the working directory. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if path == "" {
		path = domain.ConfigFileName
	}

	cfg := domain.DefaultConfig()
	base := filepath.Dir(path)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.Logger.Debug("No config file at " + path + ", using defaults")
		resolvePaths(&cfg, base)
		return &cfg, nil
	case err != nil:
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	apply(&cfg, &file)

	if err := validate(&cfg); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	resolvePaths(&cfg, base)
	l.Logger.Debug("Loaded config from " + path)

	return &cfg, nil
}

func apply(cfg *domain.Config, file *File) {
	setIf(&cfg.ManifestPath, file.Manifest)
	setIf(&cfg.LockPath, file.Lock)
	setIf(&cfg.InstallRoot, file.InstallRoot)
	setIf(&cfg.CacheDir, file.CacheDir)
	setIf(&cfg.AssumeYes, file.AssumeYes)

	if file.HTTP != nil {
		setIf(&cfg.HTTP.Timeout, file.HTTP.Timeout)
		setIf(&cfg.HTTP.RetryAttempts, file.HTTP.RetryAttempts)
		setIf(&cfg.HTTP.RetryBackoff, file.HTTP.RetryBackoff)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func validate(cfg *domain.Config) error {
	switch {
	case cfg.HTTP.Timeout <= 0:
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "http.timeout must be positive"), "value", cfg.HTTP.Timeout)
	case cfg.HTTP.RetryAttempts < 1:
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "http.retry_attempts must be at least 1"),
			"value", cfg.HTTP.RetryAttempts)
	case cfg.HTTP.RetryBackoff < 0:
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "http.retry_backoff must not be negative"),
			"value", cfg.HTTP.RetryBackoff)
	case cfg.ManifestPath == "" || cfg.LockPath == "" || cfg.InstallRoot == "":
		return zerr.Wrap(domain.ErrConfigInvalid, "manifest, lock and install_root must not be empty")
	}
	return nil
}

// resolvePaths anchors relative paths at the directory holding the config file.
func resolvePaths(cfg *domain.Config, base string) {
	for _, p := range []*string{&cfg.ManifestPath, &cfg.LockPath, &cfg.InstallRoot, &cfg.CacheDir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}
