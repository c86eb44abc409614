package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/natdeps/internal/core/domain"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		BaseURL:     "https://x/cat.json",
		ArchiveRoot: "archives",
		Packages: map[string]domain.CatalogPackage{
			"viennarna": {Versions: map[string]domain.CatalogVersion{
				"2.4.3": {Platforms: map[domain.Platform]domain.CatalogArtifact{
					domain.PlatformLinux: {SHA256: "abc"},
				}},
			}},
		},
	}
}

func TestCatalog_Artifact(t *testing.T) {
	artifact, err := testCatalog().Artifact(domain.NewDependency("viennarna", "2.4.3"), domain.PlatformLinux)
	require.NoError(t, err)
	assert.Equal(t, "abc", artifact.SHA256)
}

func TestCatalog_ArtifactMissing(t *testing.T) {
	tests := []struct {
		name     string
		dep      domain.Dependency
		platform domain.Platform
		message  string
	}{
		{"package", domain.NewDependency("bar", "9.9"), domain.PlatformLinux, "package not in catalog"},
		{"version", domain.NewDependency("viennarna", "9.9"), domain.PlatformLinux, "version not in catalog"},
		{"platform", domain.NewDependency("viennarna", "2.4.3"), domain.PlatformWindows, "platform not in catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testCatalog().Artifact(tt.dep, tt.platform)
			require.ErrorIs(t, err, domain.ErrCatalogEntryMissing)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestArchiveName(t *testing.T) {
	name := domain.ArchiveName(domain.NewDependency("melting", "4.3"), domain.PlatformMac)
	assert.Equal(t, "melting_4.3_mac.zip", name)
}

func TestDetectPlatform(t *testing.T) {
	for goos, want := range map[string]domain.Platform{
		"windows": domain.PlatformWindows,
		"linux":   domain.PlatformLinux,
		"darwin":  domain.PlatformMac,
	} {
		got, err := domain.DetectPlatform(goos)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := domain.DetectPlatform("plan9")
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}
