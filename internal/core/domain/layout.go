package domain

import (
	"path/filepath"
	"time"
)

const (
	// ManifestFileName is the default name of the desired-state file.
	ManifestFileName = "deps.json"

	// LockFileName is the default name of the installed-state file.
	LockFileName = "deps.lock"

	// ConfigFileName is the name of the optional tool configuration file.
	ConfigFileName = ".natdeps.yaml"

	// DefaultInstallRoot is the directory packages are extracted into.
	DefaultInstallRoot = "lib"

	// StateDirName is the name of the internal working directory.
	StateDirName = ".natdeps"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// CatalogCacheDirName is the name of the catalog response cache directory.
	CatalogCacheDirName = "catalog"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DefaultHTTPTimeout bounds a single catalog or archive request.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultRetryAttempts is how many times a transient network failure is tried.
	DefaultRetryAttempts = 5

	// DefaultRetryBackoff is the delay before the first retry; it doubles after each attempt.
	DefaultRetryBackoff = time.Second
)

// DefaultCachePath returns the default cache directory.
// It joins .natdeps and cache.
func DefaultCachePath() string {
	return filepath.Join(StateDirName, CacheDirName)
}

// CatalogCachePath returns the catalog cache directory below cacheDir.
func CatalogCachePath(cacheDir string) string {
	return filepath.Join(cacheDir, CatalogCacheDirName)
}
