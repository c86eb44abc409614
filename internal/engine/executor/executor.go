// Package executor applies a reconciliation plan to the install tree.
package executor

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor runs the actions of a plan one at a time.
type Executor struct {
	catalog     ports.CatalogClient
	fetcher     ports.ArchiveFetcher
	telemetry   ports.Telemetry
	logger      ports.Logger
	installRoot string
	platform    func() (domain.Platform, error)
}

// New creates an Executor installing packages below installRoot.
func New(
	catalog ports.CatalogClient,
	fetcher ports.ArchiveFetcher,
	telemetry ports.Telemetry,
	log ports.Logger,
	installRoot string,
) *Executor {
	return &Executor{
		catalog:     catalog,
		fetcher:     fetcher,
		telemetry:   telemetry,
		logger:      log,
		installRoot: installRoot,
		platform:    domain.HostPlatform,
	}
}

// WithPlatform pins the platform archives are resolved for instead of the host's.
func (e *Executor) WithPlatform(platform domain.Platform) *Executor {
	e.platform = func() (domain.Platform, error) { return platform, nil }
	return e
}

// Execute runs plan in order and returns the actions that completed.
//
// The catalog named by desired is fetched once before any package is touched, even when
// the plan only removes packages. Actions whose package cannot be resolved are skipped. The first failing action stops
// the run; the actions completed before it are returned together with the error.
func (e *Executor) Execute(
	ctx context.Context,
	plan *domain.Plan,
	desired *domain.DesiredSet,
) ([]domain.PendingAction, error) {
	platform, err := e.platform()
	if err != nil {
		return nil, err
	}

	if desired.CatalogURL == "" {
		return nil, zerr.Wrap(domain.ErrNoCatalogURL, "refusing to change the install tree")
	}
	catalog, err := e.catalog.Fetch(ctx, desired.CatalogURL)
	if err != nil {
		return nil, err
	}

	completed := make([]domain.PendingAction, 0, plan.Len())
	for _, action := range plan.Ordered() {
		if err := ctx.Err(); err != nil {
			return completed, err
		}

		done, err := e.run(ctx, action, catalog, platform)
		if err != nil {
			return completed, err
		}
		if done {
			completed = append(completed, action)
		}
	}

	return completed, nil
}

// run dispatches one action inside its own telemetry vertex.
func (e *Executor) run(
	ctx context.Context,
	action domain.PendingAction,
	catalog *domain.Catalog,
	platform domain.Platform,
) (done bool, err error) {
	ctx, vertex := e.telemetry.Record(ctx, describe(action))
	defer func() {
		if err != nil {
			err = zerr.With(errors.Join(domain.ErrActionFailed, err), "package", action.Name().String())
		}
		vertex.Complete(err)
	}()

	switch action.Kind {
	case domain.ActionInstall:
		return e.install(ctx, *action.Target, catalog, platform)
	case domain.ActionReplace:
		return e.replace(ctx, *action.Current, *action.Target, catalog, platform)
	case domain.ActionRemove:
		return e.remove(ctx, *action.Current)
	case domain.ActionNoOp:
		vertex.Cached()
		return false, nil
	default:
		return false, nil
	}
}

func (e *Executor) install(
	ctx context.Context,
	target domain.Dependency,
	catalog *domain.Catalog,
	platform domain.Platform,
) (bool, error) {
	res, ok := e.catalog.Resolve(catalog, target, platform)
	if !ok {
		return false, nil
	}

	dest, err := e.packageDir(target)
	if err != nil {
		return false, err
	}

	e.logger.Info("Installing " + target.String())

	if err := os.MkdirAll(e.installRoot, domain.DirPerm); err != nil {
		return false, fsError(err, e.installRoot)
	}

	if err := e.fetcher.FetchAndVerify(ctx, dest, res.URL, res.SHA256); err != nil {
		return false, err
	}
	return true, nil
}

// replace moves the installed version aside, fetches the target into a staging directory,
// and swaps it into place. On failure the previous version is restored.
func (e *Executor) replace(
	ctx context.Context,
	current, target domain.Dependency,
	catalog *domain.Catalog,
	platform domain.Platform,
) (done bool, err error) {
	res, ok := e.catalog.Resolve(catalog, target, platform)
	if !ok {
		return false, nil
	}

	dest, err := e.packageDir(target)
	if err != nil {
		return false, err
	}

	e.logger.Info("Replacing " + current.String() + " with " + target.String())

	id := uuid.NewString()
	name := target.Name.String()
	backup := filepath.Join(e.installRoot, "."+name+".backup-"+id)
	staging := filepath.Join(e.installRoot, "."+name+".staging-"+id)

	if err := os.MkdirAll(e.installRoot, domain.DirPerm); err != nil {
		return false, fsError(err, e.installRoot)
	}

	backedUp, err := moveAside(dest, backup)
	if err != nil {
		return false, err
	}

	defer func() {
		if err == nil {
			return
		}
		_ = os.RemoveAll(staging)
		if !backedUp {
			return
		}
		_ = os.RemoveAll(dest)
		if restoreErr := os.Rename(backup, dest); restoreErr != nil {
			err = errors.Join(err, fsError(restoreErr, backup))
			return
		}
		e.logger.Warn("Restored " + current.String() + " after failed replacement")
	}()

	if err := e.fetcher.FetchAndVerify(ctx, staging, res.URL, res.SHA256); err != nil {
		return false, err
	}

	if err := os.Rename(staging, dest); err != nil {
		return false, fsError(err, dest)
	}

	if backedUp {
		if err := os.RemoveAll(backup); err != nil {
			e.logger.Warn("Cannot delete backup " + backup + ": " + err.Error())
		}
	}
	return true, nil
}

func (e *Executor) remove(ctx context.Context, current domain.Dependency) (bool, error) {
	dir, err := e.packageDir(current)
	if err != nil {
		return false, err
	}

	exists, err := pathExists(dir)
	if err != nil {
		return false, fsError(err, dir)
	}
	if !exists {
		e.logger.Warn("Package directory " + dir + " does not exist, nothing to remove")
		if vertex, ok := ports.VertexFromContext(ctx); ok {
			vertex.Cached()
		}
		return true, nil
	}

	e.logger.Info("Removing " + current.String())
	if err := os.RemoveAll(dir); err != nil {
		return false, fsError(err, dir)
	}
	return true, nil
}

// packageDir returns the directory of dep directly below the install root.
func (e *Executor) packageDir(dep domain.Dependency) (string, error) {
	name := dep.Name.String()
	dir := filepath.Join(e.installRoot, name)
	if !domain.ValidPackageName(name) || filepath.Dir(dir) != filepath.Clean(e.installRoot) {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "package directory would leave the install root"), "package", name)
	}
	return dir, nil
}

// moveAside renames path to backup and reports whether there was anything to move.
func moveAside(path, backup string) (bool, error) {
	exists, err := pathExists(path)
	if err != nil {
		return false, fsError(err, path)
	}
	if !exists {
		return false, nil
	}
	if err := os.Rename(path, backup); err != nil {
		return false, fsError(err, path)
	}
	return true, nil
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

func fsError(err error, path string) error {
	return zerr.With(errors.Join(domain.ErrFilesystem, err), "path", path)
}

func describe(action domain.PendingAction) string {
	switch action.Kind {
	case domain.ActionReplace:
		current, _ := action.CurrentVersion()
		target, _ := action.TargetVersion()
		return "replace " + action.Name().String() + " " + current + " -> " + target
	case domain.ActionRemove:
		return "remove " + action.Current.String()
	case domain.ActionInstall:
		return "install " + action.Target.String()
	default:
		return action.Kind.String() + " " + action.Name().String()
	}
}
