// Package app implements the application layer for natdeps.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/natdeps/internal/engine/executor"
	"go.trai.ch/natdeps/internal/ui/report"
	"go.trai.ch/zerr"
)

// App runs the check and install workflows.
type App struct {
	configLoader ports.ConfigLoader
	factory      ports.AdapterFactory
	telemetry    ports.Telemetry
	prompter     ports.Prompter
	logger       ports.Logger
	report       *report.Renderer
	platform     *domain.Platform
}

// New creates a new App instance reporting to stdout.
func New(
	loader ports.ConfigLoader,
	factory ports.AdapterFactory,
	telemetry ports.Telemetry,
	prompter ports.Prompter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		factory:      factory,
		telemetry:    telemetry,
		prompter:     prompter,
		logger:       log,
		report:       report.New(os.Stdout),
	}
}

// WithReport replaces the report renderer.
func (a *App) WithReport(r *report.Renderer) *App {
	a.report = r
	return a
}

// WithOutput sends reports to w with the detected color profile.
func (a *App) WithOutput(w io.Writer) *App {
	return a.WithReport(report.New(w))
}

// WithPlatform resolves archives for platform instead of the host platform.
func (a *App) WithPlatform(platform domain.Platform) *App {
	a.platform = &platform
	return a
}

// Options are the per-invocation settings given on the command line.
// Empty strings keep the configured value.
type Options struct {
	ConfigPath   string
	ManifestPath string
	LockPath     string
	InstallRoot  string
	AssumeYes    bool
}

type logSettings interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// ConfigureLogging sets verbosity and output format when the logger supports it.
func (a *App) ConfigureLogging(verbose, jsonLogs bool) {
	settings, ok := a.logger.(logSettings)
	if !ok {
		return
	}
	settings.SetVerbose(verbose)
	settings.SetJSON(jsonLogs)
}

// Check prints the installed and wanted version of every package and the action it needs.
func (a *App) Check(_ context.Context, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	actions, _, _, err := a.reconcile(a.factory.ManifestStore(cfg))
	if err != nil {
		return err
	}

	return a.report.Check(actions)
}

// Install reconciles the install tree with the manifest and returns the state the run ended in.
//
// The lock file is written once, after every action succeeded. A run that fails leaves it untouched.
func (a *App) Install(ctx context.Context, opts Options) (domain.RunState, error) {
	state, completed, err := a.install(ctx, opts)

	if closeErr := a.telemetry.Close(); closeErr != nil {
		a.logger.Debug("Closing telemetry failed: " + closeErr.Error())
	}
	if reportErr := a.report.Summary(state, completed); reportErr != nil && err == nil {
		err = reportErr
	}
	return state, err
}

func (a *App) install(ctx context.Context, opts Options) (domain.RunState, int, error) {
	// Planning
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return domain.RunFailed, 0, err
	}

	store := a.factory.ManifestStore(cfg)
	actions, desired, installed, err := a.reconcile(store)
	if err != nil {
		return domain.RunFailed, 0, err
	}

	plan := domain.NewPlan(actions)
	if plan.IsEmpty() {
		a.logger.Debug("Install tree matches " + cfg.ManifestPath)
		return domain.RunCommitted, 0, nil
	}

	// Confirming
	if err := a.report.Plan(plan); err != nil {
		return domain.RunFailed, 0, err
	}
	if !cfg.AssumeYes {
		accepted, err := a.prompter.Confirm(ctx, "Proceed?")
		switch {
		case errors.Is(err, context.Canceled):
			return domain.RunAborted, 0, nil
		case err != nil:
			return domain.RunAborted, 0, err
		case !accepted:
			return domain.RunAborted, 0, nil
		}
	}

	// Executing
	exec := executor.New(
		a.factory.CatalogClient(cfg),
		a.factory.ArchiveFetcher(cfg),
		a.telemetry,
		a.logger,
		cfg.InstallRoot,
	)
	if a.platform != nil {
		exec = exec.WithPlatform(*a.platform)
	}

	completed, err := exec.Execute(ctx, plan, desired)
	if err != nil {
		return domain.RunFailed, len(completed), err
	}

	// Committed
	if err := store.CommitInstalled(installed.Apply(completed)); err != nil {
		return domain.RunFailed, len(completed), err
	}
	return domain.RunCommitted, len(completed), nil
}

func (a *App) loadConfig(opts Options) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.ManifestPath != "" {
		cfg.ManifestPath = opts.ManifestPath
	}
	if opts.LockPath != "" {
		cfg.LockPath = opts.LockPath
	}
	if opts.InstallRoot != "" {
		cfg.InstallRoot = opts.InstallRoot
	}
	cfg.AssumeYes = cfg.AssumeYes || opts.AssumeYes

	return cfg, nil
}

func (a *App) reconcile(
	store ports.ManifestStore,
) ([]domain.PendingAction, *domain.DesiredSet, *domain.InstalledSet, error) {
	desired, err := store.LoadDesired()
	if err != nil {
		return nil, nil, nil, err
	}

	installed, err := store.LoadInstalled()
	if err != nil {
		return nil, nil, nil, err
	}

	return domain.Diff(desired, installed), desired, installed, nil
}
