// Package manifest reads the desired-state manifest and persists the installed-state lock file.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ManifestStore on top of two JSON files.
// Each file is read at most once; later calls return the loaded state.
type Store struct {
	manifestPath string
	lockPath     string
	logger       ports.Logger

	mu        sync.Mutex
	desired   *domain.DesiredSet
	installed *domain.InstalledSet
}

// NewStore creates a Store for the given manifest and lock file paths. Nothing is read yet.
func NewStore(manifestPath, lockPath string, log ports.Logger) *Store {
	return &Store{
		manifestPath: filepath.Clean(manifestPath),
		lockPath:     filepath.Clean(lockPath),
		logger:       log,
	}
}

// LoadDesired parses the manifest. A missing manifest is reported as a warning and
// yields an empty set with no catalog URL.
func (s *Store) LoadDesired() (*domain.DesiredSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.desired != nil {
		return s.desired, nil
	}

	schemas, err := compiledSchemas()
	if err != nil {
		return nil, err
	}

	var dto manifestDTO
	err = readValidated(s.manifestPath, schemas.manifest.Validate, &dto)
	switch {
	case errors.Is(err, domain.ErrManifestNotFound):
		s.logger.Warn("Cannot open dependency file " + s.manifestPath)
		s.desired = &domain.DesiredSet{}
		return s.desired, nil
	case err != nil:
		return nil, err
	}

	packages, err := toDependencies(dto.Packages, s.manifestPath)
	if err != nil {
		return nil, err
	}
	for _, dep := range packages {
		s.logger.Debug("Found package dependency: " + dep.String())
	}

	s.desired = &domain.DesiredSet{CatalogURL: dto.CatalogURL, Packages: packages}
	return s.desired, nil
}

// LoadInstalled parses the lock file. A missing lock file yields an empty set.
func (s *Store) LoadInstalled() (*domain.InstalledSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.installed != nil {
		return s.installed, nil
	}

	schemas, err := compiledSchemas()
	if err != nil {
		return nil, err
	}

	var dto lockDTO
	err = readValidated(s.lockPath, schemas.lock.Validate, &dto)
	switch {
	case errors.Is(err, domain.ErrManifestNotFound):
		s.logger.Debug("No lock file at " + s.lockPath + ", nothing is installed")
		s.installed = &domain.InstalledSet{}
		return s.installed, nil
	case err != nil:
		return nil, err
	}

	packages, err := toDependencies(dto.Packages, s.lockPath)
	if err != nil {
		return nil, err
	}
	for _, dep := range packages {
		s.logger.Debug("Found installed package: " + dep.String())
	}

	s.installed = &domain.InstalledSet{Packages: packages}
	return s.installed, nil
}

// CommitInstalled replaces the lock file with set. The new content is written to a
// temporary file in the same directory, synced, and renamed into place, so readers see
// either the old or the new lock file.
func (s *Store) CommitInstalled(set *domain.InstalledSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dto := lockDTO{Packages: make([]packageDTO, 0, len(set.Packages))}
	for _, dep := range set.Packages {
		dto.Packages = append(dto.Packages, packageDTO{Name: dep.Name.String(), Version: dep.Version.String()})
	}

	data, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return s.commitFailed(err)
	}
	data = append(data, '\n')

	if err := writeAtomic(s.lockPath, data); err != nil {
		return s.commitFailed(err)
	}

	s.installed = set.Clone()
	return nil
}

func (s *Store) commitFailed(err error) error {
	return zerr.With(errors.Join(domain.ErrLockCommitFailed, err), "path", s.lockPath)
}

// readValidated reads path, validates it against a schema and decodes it into out.
// A missing file is reported as ErrManifestNotFound.
func readValidated(path string, validate func(any) error, out any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "file does not exist"), "path", path)
		}
		return zerr.With(errors.Join(domain.ErrFilesystem, err), "path", path)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.With(errors.Join(domain.ErrParse, err), "path", path)
	}

	if err := validate(doc); err != nil {
		return schemaViolation(err, path)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return zerr.With(errors.Join(domain.ErrParse, err), "path", path)
	}

	return nil
}

func toDependencies(entries []packageDTO, path string) ([]domain.Dependency, error) {
	seen := make(map[string]struct{}, len(entries))
	packages := make([]domain.Dependency, 0, len(entries))

	for i, entry := range entries {
		if _, dup := seen[entry.Name]; dup {
			return nil, duplicateViolation(entry.Name, i, path)
		}
		if !domain.ValidPackageName(entry.Name) {
			return nil, nameViolation(entry.Name, i, path)
		}
		seen[entry.Name] = struct{}{}
		packages = append(packages, domain.NewDependency(entry.Name, entry.Version))
	}

	return packages, nil
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
