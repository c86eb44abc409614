package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when the manifest file does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrParse is returned when a manifest or lock file is not valid JSON.
	ErrParse = zerr.New("parse error")

	// ErrSchema is returned when a manifest or lock file does not match its schema
	// or lists the same package twice.
	ErrSchema = zerr.New("schema violation")

	// ErrInvalidPackageName is returned when a package name cannot be used as a directory
	// directly below the install root.
	ErrInvalidPackageName = zerr.New("invalid package name")

	// ErrNoCatalogURL is returned when a plan would run without a catalog to check it against.
	ErrNoCatalogURL = zerr.New("no catalog URL")

	// ErrCatalogUnreachable is returned when the catalog cannot be fetched because of a network failure.
	ErrCatalogUnreachable = zerr.New("catalog unreachable")

	// ErrCatalogNotFound is returned when the catalog URL answers with 404.
	ErrCatalogNotFound = zerr.New("catalog not found")

	// ErrCatalogServerError is returned when the catalog server keeps answering with an error status.
	ErrCatalogServerError = zerr.New("catalog server error")

	// ErrCatalogInvalid is returned when the catalog document is not a valid catalog.
	ErrCatalogInvalid = zerr.New("catalog invalid")

	// ErrCatalogEntryMissing is returned when a package, version or platform is absent from the catalog.
	ErrCatalogEntryMissing = zerr.New("catalog entry missing")

	// ErrDownloadFailed is returned when an archive cannot be downloaded.
	ErrDownloadFailed = zerr.New("download failed")

	// ErrIntegrity is returned when a downloaded archive does not match its published hash.
	ErrIntegrity = zerr.New("integrity check failed")

	// ErrCorruptArchive is returned when an archive fails its own checksum self-test or cannot be read.
	ErrCorruptArchive = zerr.New("corrupt archive")

	// ErrUnsafeArchivePath is returned when an archive entry would extract outside its destination.
	ErrUnsafeArchivePath = zerr.New("unsafe archive path")

	// ErrUnsupportedPlatform is returned when the host operating system has no archive flavour.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrActionFailed is returned when a replace action fails after its old version was backed up.
	ErrActionFailed = zerr.New("action failed")

	// ErrLockCommitFailed is returned when the lock file cannot be written.
	ErrLockCommitFailed = zerr.New("lock commit failed")

	// ErrFilesystem is returned when an install tree operation fails.
	ErrFilesystem = zerr.New("filesystem error")

	// ErrConfigReadFailed is returned when the config file exists but cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when a config value is out of range.
	ErrConfigInvalid = zerr.New("invalid config")

	// ErrConfirmationFailed is returned when the operator's answer cannot be read.
	ErrConfirmationFailed = zerr.New("failed to read confirmation")
)

// ErrAborted is returned when the operator declines the plan.
var ErrAborted = zerr.New("aborted by user")
