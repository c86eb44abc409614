package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/natdeps/internal/app"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports"
	"go.trai.ch/natdeps/internal/core/ports/mocks"
	"go.trai.ch/natdeps/internal/ui/report"
	"go.uber.org/mock/gomock"
)

const catalogURL = "https://x/cat.json"

var (
	vienna  = domain.NewDependency("viennarna", "2.4.3")
	melting = domain.NewDependency("melting", "4.3")
	foo     = domain.NewDependency("foo", "1.0")
)

type fixture struct {
	cfg       *domain.Config
	loader    *mocks.MockConfigLoader
	factory   *mocks.MockAdapterFactory
	store     *mocks.MockManifestStore
	catalog   *mocks.MockCatalogClient
	fetcher   *mocks.MockArchiveFetcher
	telemetry *mocks.MockTelemetry
	prompter  *mocks.MockPrompter
	logger    *mocks.MockLogger
	out       *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cfg := domain.DefaultConfig()
	cfg.InstallRoot = filepath.Join(t.TempDir(), "lib")

	f := &fixture{
		cfg:       &cfg,
		loader:    mocks.NewMockConfigLoader(ctrl),
		factory:   mocks.NewMockAdapterFactory(ctrl),
		store:     mocks.NewMockManifestStore(ctrl),
		catalog:   mocks.NewMockCatalogClient(ctrl),
		fetcher:   mocks.NewMockArchiveFetcher(ctrl),
		telemetry: mocks.NewMockTelemetry(ctrl),
		prompter:  mocks.NewMockPrompter(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		out:       new(bytes.Buffer),
	}

	f.loader.EXPECT().Load(gomock.Any()).Return(f.cfg, nil).AnyTimes()
	f.factory.EXPECT().ManifestStore(f.cfg).Return(f.store).AnyTimes()
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	vertex.EXPECT().Cached().AnyTimes()
	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		}).AnyTimes()

	f.app = app.New(f.loader, f.factory, f.telemetry, f.prompter, f.logger).
		WithReport(report.NewWithProfile(f.out, termenv.Ascii)).
		WithPlatform(domain.PlatformLinux)
	return f
}

func (f *fixture) state(desired []domain.Dependency, installed []domain.Dependency) {
	f.store.EXPECT().LoadDesired().Return(&domain.DesiredSet{CatalogURL: catalogURL, Packages: desired}, nil)
	f.store.EXPECT().LoadInstalled().Return(&domain.InstalledSet{Packages: installed}, nil)
}

func (f *fixture) expectExecution() {
	f.factory.EXPECT().CatalogClient(f.cfg).Return(f.catalog)
	f.factory.EXPECT().ArchiveFetcher(f.cfg).Return(f.fetcher)
}

func resolution(dep domain.Dependency) domain.Resolution {
	return domain.Resolution{URL: "https://x/" + domain.ArchiveName(dep, domain.PlatformLinux), SHA256: dep.Name.String()}
}

func extract(_ context.Context, destDir, _, _ string) error {
	return os.MkdirAll(destDir, 0o750)
}

func TestApp_Check(t *testing.T) {
	f := newFixture(t)
	f.state([]domain.Dependency{vienna, melting}, []domain.Dependency{melting, foo})

	require.NoError(t, f.app.Check(t.Context(), app.Options{}))

	assert.Equal(t,
		"viennarna: installed = None, wanted = 2.4.3 (install required)\n"+
			"melting: installed = 4.3, wanted = 4.3\n"+
			"foo: installed = 1.0, wanted = None (removal required)\n",
		f.out.String())
}

func TestApp_Check_LoadError(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().LoadDesired().Return(nil, domain.ErrSchema)

	err := f.app.Check(t.Context(), app.Options{})
	require.ErrorIs(t, err, domain.ErrSchema)
	assert.Empty(t, f.out.String())
}

func TestApp_Install_EmptyPlan(t *testing.T) {
	f := newFixture(t)
	f.state([]domain.Dependency{melting}, []domain.Dependency{melting})
	f.telemetry.EXPECT().Close().Return(nil)

	state, err := f.app.Install(t.Context(), app.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunCommitted, state)
	assert.Equal(t, "✓ Everything is up to date\n", f.out.String())
}

func TestApp_Install_Declined(t *testing.T) {
	f := newFixture(t)
	f.state([]domain.Dependency{vienna}, []domain.Dependency{foo})
	f.prompter.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, nil)
	f.telemetry.EXPECT().Close().Return(nil)

	state, err := f.app.Install(t.Context(), app.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunAborted, state)
	assert.Contains(t, f.out.String(), "Packages to install:\n  ○ viennarna@2.4.3\n")
	assert.Contains(t, f.out.String(), "! Aborted, nothing was changed\n")
	assert.NoDirExists(t, f.cfg.InstallRoot)
}

func TestApp_Install_PromptInterrupted(t *testing.T) {
	f := newFixture(t)
	f.state([]domain.Dependency{vienna}, nil)
	f.prompter.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(false, context.Canceled)
	f.telemetry.EXPECT().Close().Return(nil)

	state, err := f.app.Install(t.Context(), app.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunAborted, state)
}

func TestApp_Install_Committed(t *testing.T) {
	f := newFixture(t)
	f.state([]domain.Dependency{vienna, melting}, []domain.Dependency{foo})
	f.expectExecution()
	f.telemetry.EXPECT().Close().Return(nil)
	require.NoError(t, os.MkdirAll(filepath.Join(f.cfg.InstallRoot, "foo"), 0o750))

	f.catalog.EXPECT().Fetch(gomock.Any(), catalogURL).Return(&domain.Catalog{}, nil)
	f.catalog.EXPECT().Resolve(gomock.Any(), vienna, domain.PlatformLinux).Return(resolution(vienna), true)
	f.catalog.EXPECT().Resolve(gomock.Any(), melting, domain.PlatformLinux).Return(resolution(melting), true)
	f.fetcher.EXPECT().FetchAndVerify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(extract).Times(2)
	f.store.EXPECT().CommitInstalled(&domain.InstalledSet{Packages: []domain.Dependency{vienna, melting}}).Return(nil)

	state, err := f.app.Install(t.Context(), app.Options{AssumeYes: true})
	require.NoError(t, err)
	assert.Equal(t, domain.RunCommitted, state)
	assert.Contains(t, f.out.String(), "✓ 3 package action(s) applied\n")
	assert.DirExists(t, filepath.Join(f.cfg.InstallRoot, "viennarna"))
	assert.NoDirExists(t, filepath.Join(f.cfg.InstallRoot, "foo"))
}

func TestApp_Install_SkippedPackageStaysPending(t *testing.T) {
	f := newFixture(t)
	bar := domain.NewDependency("bar", "9.9")
	f.state([]domain.Dependency{bar, melting}, nil)
	f.expectExecution()
	f.telemetry.EXPECT().Close().Return(nil)
	f.prompter.EXPECT().Confirm(gomock.Any(), gomock.Any()).Return(true, nil)

	f.catalog.EXPECT().Fetch(gomock.Any(), catalogURL).Return(&domain.Catalog{}, nil)
	f.catalog.EXPECT().Resolve(gomock.Any(), bar, domain.PlatformLinux).Return(domain.Resolution{}, false)
	f.catalog.EXPECT().Resolve(gomock.Any(), melting, domain.PlatformLinux).Return(resolution(melting), true)
	f.fetcher.EXPECT().FetchAndVerify(gomock.Any(), filepath.Join(f.cfg.InstallRoot, "melting"), gomock.Any(), gomock.Any()).
		DoAndReturn(extract)
	f.store.EXPECT().CommitInstalled(&domain.InstalledSet{Packages: []domain.Dependency{melting}}).Return(nil)

	state, err := f.app.Install(t.Context(), app.Options{})
	require.NoError(t, err)
	assert.Equal(t, domain.RunCommitted, state)
}

func TestApp_Install_FailureDoesNotCommit(t *testing.T) {
	f := newFixture(t)
	f.state([]domain.Dependency{vienna, melting}, nil)
	f.expectExecution()
	f.telemetry.EXPECT().Close().Return(nil)

	f.catalog.EXPECT().Fetch(gomock.Any(), catalogURL).Return(&domain.Catalog{}, nil)
	f.catalog.EXPECT().Resolve(gomock.Any(), vienna, domain.PlatformLinux).Return(resolution(vienna), true)
	f.catalog.EXPECT().Resolve(gomock.Any(), melting, domain.PlatformLinux).Return(resolution(melting), true)
	gomock.InOrder(
		f.fetcher.EXPECT().FetchAndVerify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(extract),
		f.fetcher.EXPECT().FetchAndVerify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.ErrIntegrity),
	)
	f.store.EXPECT().CommitInstalled(gomock.Any()).Times(0)

	state, err := f.app.Install(t.Context(), app.Options{AssumeYes: true})
	require.ErrorIs(t, err, domain.ErrIntegrity)
	assert.Equal(t, domain.RunFailed, state)
	assert.Contains(t, f.out.String(), "✗ Failed after 1 package action(s), lock file unchanged\n")
}

func TestApp_Install_CatalogFailure(t *testing.T) {
	f := newFixture(t)
	f.state([]domain.Dependency{vienna}, nil)
	f.expectExecution()
	f.telemetry.EXPECT().Close().Return(nil)
	f.catalog.EXPECT().Fetch(gomock.Any(), catalogURL).Return(nil, domain.ErrCatalogNotFound)

	state, err := f.app.Install(t.Context(), app.Options{AssumeYes: true})
	require.ErrorIs(t, err, domain.ErrCatalogNotFound)
	assert.Equal(t, domain.RunFailed, state)
}

func TestApp_Install_CommitFailure(t *testing.T) {
	f := newFixture(t)
	f.state(nil, []domain.Dependency{foo})
	f.expectExecution()
	f.telemetry.EXPECT().Close().Return(nil)
	f.logger.EXPECT().Warn(gomock.Any())
	f.catalog.EXPECT().Fetch(gomock.Any(), catalogURL).Return(&domain.Catalog{}, nil)
	f.store.EXPECT().CommitInstalled(&domain.InstalledSet{Packages: []domain.Dependency{}}).Return(domain.ErrLockCommitFailed)

	state, err := f.app.Install(t.Context(), app.Options{AssumeYes: true})
	require.ErrorIs(t, err, domain.ErrLockCommitFailed)
	assert.Equal(t, domain.RunFailed, state)
}

func TestApp_Install_MissingManifestKeepsInstallTree(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().LoadDesired().Return(&domain.DesiredSet{}, nil)
	f.store.EXPECT().LoadInstalled().Return(&domain.InstalledSet{Packages: []domain.Dependency{foo}}, nil)
	f.expectExecution()
	f.telemetry.EXPECT().Close().Return(nil)
	f.store.EXPECT().CommitInstalled(gomock.Any()).Times(0)
	require.NoError(t, os.MkdirAll(filepath.Join(f.cfg.InstallRoot, "foo"), 0o750))

	state, err := f.app.Install(t.Context(), app.Options{AssumeYes: true})
	require.ErrorIs(t, err, domain.ErrNoCatalogURL)
	assert.Equal(t, domain.RunFailed, state)
	assert.DirExists(t, filepath.Join(f.cfg.InstallRoot, "foo"))
}

func TestApp_Options_OverrideConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	factory := mocks.NewMockAdapterFactory(ctrl)
	store := mocks.NewMockManifestStore(ctrl)
	log := mocks.NewMockLogger(ctrl)

	cfg := domain.DefaultConfig()
	loader.EXPECT().Load("custom.yaml").Return(&cfg, nil)
	factory.EXPECT().ManifestStore(gomock.Any()).DoAndReturn(func(got *domain.Config) ports.ManifestStore {
		assert.Equal(t, "m.json", got.ManifestPath)
		assert.Equal(t, "m.lock", got.LockPath)
		assert.Equal(t, "vendor", got.InstallRoot)
		return store
	})
	store.EXPECT().LoadDesired().Return(&domain.DesiredSet{}, nil)
	store.EXPECT().LoadInstalled().Return(&domain.InstalledSet{}, nil)

	a := app.New(loader, factory, mocks.NewMockTelemetry(ctrl), mocks.NewMockPrompter(ctrl), log).
		WithReport(report.NewWithProfile(new(bytes.Buffer), termenv.Ascii))

	require.NoError(t, a.Check(t.Context(), app.Options{
		ConfigPath:   "custom.yaml",
		ManifestPath: "m.json",
		LockPath:     "m.lock",
		InstallRoot:  "vendor",
	}))
}

func TestApp_ConfigLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load("").Return(nil, domain.ErrConfigParseFailed)

	a := app.New(loader, mocks.NewMockAdapterFactory(ctrl), mocks.NewMockTelemetry(ctrl),
		mocks.NewMockPrompter(ctrl), mocks.NewMockLogger(ctrl))

	err := a.Check(t.Context(), app.Options{})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
