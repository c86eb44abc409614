// Package archive downloads, verifies, and extracts package archives.
package archive

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/natdeps/internal/adapters/httpclient"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.ArchiveFetcher.
type Fetcher struct {
	http    *httpclient.Client
	logger  ports.Logger
	workers int
}

// NewFetcher creates a Fetcher using transport for downloads.
func NewFetcher(transport *httpclient.Client, log ports.Logger) *Fetcher {
	return &Fetcher{http: transport, logger: log, workers: defaultWorkers}
}

// FetchAndVerify downloads url next to destDir, compares its SHA-256 with
// expectedSHA256, checks every entry's CRC-32, and only then extracts into destDir.
// On any failure the download is removed and destDir is left as it was, except that a
// destDir created by a failed extraction is removed again.
func (f *Fetcher) FetchAndVerify(ctx context.Context, destDir, url, expectedSHA256 string) error {
	parent := filepath.Dir(destDir)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrFilesystem, err), "path", parent)
	}

	tmp, err := os.CreateTemp(parent, ".natdeps-download-*.zip")
	if err != nil {
		return zerr.With(errors.Join(domain.ErrFilesystem, err), "path", parent)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	size, actual, err := f.download(ctx, url, tmp)
	if err != nil {
		return err
	}

	expected := NormalizeDigest(expectedSHA256)
	if actual != expected {
		integrityErr := zerr.With(zerr.Wrap(domain.ErrIntegrity, "archive hash does not match catalog"), "url", url)
		integrityErr = zerr.With(integrityErr, "expected", expected)
		return zerr.With(integrityErr, "actual", actual)
	}
	f.logger.Debug("Verified sha256 of " + url)

	reader, err := openZip(tmp, size)
	if err != nil {
		return zerr.With(err, "url", url)
	}

	if err := selfCheck(ctx, reader, f.workers); err != nil {
		return zerr.With(err, "url", url)
	}

	if err := extract(reader, destDir); err != nil {
		return zerr.With(err, "url", url)
	}

	return nil
}

// download streams the body of url into w and returns its size and hex SHA-256.
func (f *Fetcher) download(ctx context.Context, url string, w io.Writer) (int64, string, error) {
	resp, err := f.http.Get(ctx, url, nil)
	if err != nil {
		return 0, "", zerr.With(errors.Join(domain.ErrDownloadFailed, err), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(zerr.Wrap(domain.ErrDownloadFailed, resp.Status), "status_code", resp.StatusCode)
		return 0, "", zerr.With(statusErr, "url", url)
	}

	hash := sha256.New()
	progress := io.Discard
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		progress = vertex.Stdout()
	}

	size, err := io.Copy(io.MultiWriter(w, hash), resp.Body)
	if err != nil {
		return 0, "", zerr.With(errors.Join(domain.ErrDownloadFailed, err), "url", url)
	}
	_, _ = fmt.Fprintf(progress, "downloaded %d bytes from %s\n", size, url)

	return size, hex.EncodeToString(hash.Sum(nil)), nil
}

// NormalizeDigest lower-cases and trims a hex digest and strips an optional "sha256:" prefix.
func NormalizeDigest(digest string) string {
	digest = strings.ToLower(strings.TrimSpace(digest))
	return strings.TrimPrefix(digest, "sha256:")
}

func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
