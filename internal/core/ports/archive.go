package ports

import "context"

// ArchiveFetcher downloads a zip archive, verifies it, and extracts it.
//
//go:generate go run go.uber.org/mock/mockgen -source=archive.go -destination=mocks/mock_archive.go -package=mocks
type ArchiveFetcher interface {
	// FetchAndVerify downloads url, checks its SHA-256 against expectedSHA256 and the
	// archive's own checksums, then extracts it into destDir.
	// Nothing is written to destDir unless every check passes.
	FetchAndVerify(ctx context.Context, destDir, url, expectedSHA256 string) error
}
