package domain

import "time"

// Config holds the resolved tool configuration for one run.
type Config struct {
	// ManifestPath is the desired-state file.
	ManifestPath string

	// LockPath is the installed-state file.
	LockPath string

	// InstallRoot is the directory holding one subdirectory per installed package.
	InstallRoot string

	// CacheDir holds HTTP response caches.
	CacheDir string

	// AssumeYes skips the confirmation gate before executing a plan.
	AssumeYes bool

	// HTTP tunes catalog and archive requests.
	HTTP HTTPConfig
}

// HTTPConfig tunes network requests.
type HTTPConfig struct {
	// Timeout bounds a single request.
	Timeout time.Duration

	// RetryAttempts is the total number of tries for a transient failure.
	RetryAttempts int

	// RetryBackoff is the initial delay between tries. It doubles after each failure.
	RetryBackoff time.Duration
}

// DefaultConfig returns the configuration used when no config file is present.
func DefaultConfig() Config {
	return Config{
		ManifestPath: ManifestFileName,
		LockPath:     LockFileName,
		InstallRoot:  DefaultInstallRoot,
		CacheDir:     DefaultCachePath(),
		HTTP: HTTPConfig{
			Timeout:       DefaultHTTPTimeout,
			RetryAttempts: DefaultRetryAttempts,
			RetryBackoff:  DefaultRetryBackoff,
		},
	}
}
