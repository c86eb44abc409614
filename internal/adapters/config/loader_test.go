package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/natdeps/internal/adapters/config"
	"go.trai.ch/natdeps/internal/core/domain"
	"go.trai.ch/natdeps/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := newLoader(t).Load(filepath.Join(dir, domain.ConfigFileName))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "deps.json"), cfg.ManifestPath)
	assert.Equal(t, filepath.Join(dir, "deps.lock"), cfg.LockPath)
	assert.Equal(t, filepath.Join(dir, "lib"), cfg.InstallRoot)
	assert.Equal(t, filepath.Join(dir, ".natdeps", "cache"), cfg.CacheDir)
	assert.False(t, cfg.AssumeYes)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 5, cfg.HTTP.RetryAttempts)
	assert.Equal(t, time.Second, cfg.HTTP.RetryBackoff)
}

func TestLoader_Load_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
manifest: native/deps.json
lock: native/deps.lock
install_root: /opt/natdeps
assume_yes: true
http:
  timeout: 5s
  retry_attempts: 2
`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "native", "deps.json"), cfg.ManifestPath)
	assert.Equal(t, filepath.Join(dir, "native", "deps.lock"), cfg.LockPath)
	assert.Equal(t, "/opt/natdeps", cfg.InstallRoot)
	assert.True(t, cfg.AssumeYes)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2, cfg.HTTP.RetryAttempts)
	assert.Equal(t, time.Second, cfg.HTTP.RetryBackoff, "unset keys keep their default")
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "invalid yaml",
			content: "manifest: [unclosed",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "wrong type",
			content: "http:\n  retry_attempts: many\n",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "zero attempts",
			content: "http:\n  retry_attempts: 0\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "negative timeout",
			content: "http:\n  timeout: -1s\n",
			wantErr: domain.ErrConfigInvalid,
		},
		{
			name:    "empty install root",
			content: "install_root: \"\"\n",
			wantErr: domain.ErrConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := newLoader(t).Load(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_Unreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be read as a file.
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.Mkdir(path, domain.DirPerm))

	_, err := newLoader(t).Load(path)
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}
