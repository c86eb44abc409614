package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// defaultWorkers bounds the goroutines reading entries during the self-check.
const defaultWorkers = 4

// maxSymlinkTarget bounds the size of a symlink entry's body.
const maxSymlinkTarget = 4096

func openZip(r io.ReaderAt, size int64) (*zip.Reader, error) {
	reader, err := zip.NewReader(r, size)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, errors.Join(domain.ErrCorruptArchive, err)
	}
	return reader, nil
}

// selfCheck reads every entry fully so the zip reader verifies its CRC-32.
// Entries are read concurrently; the reported failure is the first bad entry in archive order.
func selfCheck(ctx context.Context, reader *zip.Reader, workers int) error {
	failures := make([]error, len(reader.File))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range reader.File {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			failures[i] = checkEntry(file)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, err := range failures {
		if err != nil {
			return zerr.With(errors.Join(domain.ErrCorruptArchive, err), "entry", reader.File[i].Name)
		}
	}
	return nil
}

func checkEntry(file *zip.File) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		_ = rc.Close()
	}()

	_, err = io.Copy(io.Discard, rc)
	return err
}

// extract writes all entries below destDir. Entries that would land outside destDir are
// rejected before anything is written. Symlinks are created last, so no entry is ever
// written through a link from the same archive.
func extract(reader *zip.Reader, destDir string) (err error) {
	links := make(map[string]bool)
	for _, file := range reader.File {
		target, err := entryPath(destDir, file.Name)
		if err != nil {
			return err
		}
		if file.Mode()&os.ModeSymlink != 0 {
			links[target] = true
		}
	}

	for _, file := range reader.File {
		target, _ := entryPath(destDir, file.Name)
		if throughLink(destDir, filepath.Dir(target), links) {
			return zerr.With(errors.Join(domain.ErrCorruptArchive, domain.ErrUnsafeArchivePath), "entry", file.Name)
		}
	}

	existed, err := pathExists(destDir)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrFilesystem, err), "path", destDir)
	}
	if err := os.MkdirAll(destDir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrFilesystem, err), "path", destDir)
	}
	defer func() {
		if err != nil && !existed {
			_ = os.RemoveAll(destDir)
		}
	}()

	var symlinks []*zip.File
	for _, file := range reader.File {
		if file.Name == "" {
			continue
		}
		if file.Mode()&os.ModeSymlink != 0 {
			symlinks = append(symlinks, file)
			continue
		}
		target, _ := entryPath(destDir, file.Name)

		if err := extractEntry(file, destDir, target, links); err != nil {
			return zerr.With(err, "entry", file.Name)
		}
	}

	for _, file := range symlinks {
		target, _ := entryPath(destDir, file.Name)
		if err := extractSymlink(file, destDir, target, links); err != nil {
			return zerr.With(err, "entry", file.Name)
		}
	}

	return nil
}

func extractEntry(file *zip.File, destDir, target string, links map[string]bool) error {
	if throughLink(destDir, target, links) {
		return errors.Join(domain.ErrCorruptArchive, domain.ErrUnsafeArchivePath)
	}

	mode := file.Mode()
	if mode.IsDir() {
		return wrapFS(os.MkdirAll(target, domain.DirPerm), target)
	}

	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return wrapFS(err, target)
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = domain.FilePerm
	}

	//nolint:gosec // target is checked to stay below destDir
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return wrapFS(err, target)
	}

	rc, err := file.Open()
	if err != nil {
		_ = out.Close()
		return errors.Join(domain.ErrCorruptArchive, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return wrapFS(err, target)
	}
	return wrapFS(out.Close(), target)
}

func extractSymlink(file *zip.File, destDir, target string, links map[string]bool) error {
	rc, err := file.Open()
	if err != nil {
		return errors.Join(domain.ErrCorruptArchive, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(rc, maxSymlinkTarget))
	if err != nil {
		return errors.Join(domain.ErrCorruptArchive, err)
	}
	link := string(data)

	if linkEscapes(destDir, target, link, links) {
		return zerr.With(errors.Join(domain.ErrCorruptArchive, domain.ErrUnsafeArchivePath), "link", link)
	}

	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return wrapFS(err, target)
	}
	return wrapFS(os.Symlink(filepath.FromSlash(link), target), target)
}

// entryPath maps an archive entry name to a path below destDir.
func entryPath(destDir, name string) (string, error) {
	if name == "" {
		return destDir, nil
	}

	local := filepath.FromSlash(strings.TrimSuffix(name, "/"))
	if strings.Contains(name, `\`) || !filepath.IsLocal(local) {
		return "", zerr.With(errors.Join(domain.ErrCorruptArchive, domain.ErrUnsafeArchivePath), "entry", name)
	}
	return filepath.Join(destDir, local), nil
}

// linkEscapes walks link from the directory holding target. Every step must stay below
// destDir, and no intermediate step may pass through another symlink.
func linkEscapes(destDir, target, link string, links map[string]bool) bool {
	if link == "" || filepath.IsAbs(link) || strings.HasPrefix(link, "/") || strings.Contains(link, `\`) {
		return true
	}

	cur := filepath.Dir(target)
	parts := strings.Split(link, "/")
	for i, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
		default:
			cur = filepath.Join(cur, part)
			if i < len(parts)-1 && isLink(cur, links) {
				return true
			}
		}
		if !within(destDir, cur) {
			return true
		}
	}
	return false
}

// throughLink reports whether path or one of its ancestors below destDir is a symlink,
// either one the archive declares or one already on disk.
func throughLink(destDir, path string, links map[string]bool) bool {
	for p := path; p != destDir && within(destDir, p); p = filepath.Dir(p) {
		if isLink(p, links) {
			return true
		}
	}
	return false
}

func isLink(path string, links map[string]bool) bool {
	if links[path] {
		return true
	}
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && filepath.IsLocal(rel)
}

func wrapFS(err error, path string) error {
	if err == nil {
		return nil
	}
	return zerr.With(errors.Join(domain.ErrFilesystem, err), "path", path)
}
