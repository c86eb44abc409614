package config

import "time"

// File represents the structure of the .natdeps.yaml configuration file.
// Pointer fields distinguish an absent key from an explicit zero value.
type File struct {
	Manifest    *string  `yaml:"manifest"`
	Lock        *string  `yaml:"lock"`
	InstallRoot *string  `yaml:"install_root"`
	CacheDir    *string  `yaml:"cache_dir"`
	AssumeYes   *bool    `yaml:"assume_yes"`
	HTTP        *HTTPDTO `yaml:"http"`
}

// HTTPDTO represents the http section of the configuration file.
type HTTPDTO struct {
	Timeout       *time.Duration `yaml:"timeout"`
	RetryAttempts *int           `yaml:"retry_attempts"`
	RetryBackoff  *time.Duration `yaml:"retry_backoff"`
}
