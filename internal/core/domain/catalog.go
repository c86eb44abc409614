package domain

import "go.trai.ch/zerr"

// Catalog is the remote package index fetched once per run.
type Catalog struct {
	// BaseURL is the URL the catalog document was fetched from.
	// Archive URLs are derived relative to its directory.
	BaseURL string

	// ArchiveRoot is the catalog-declared directory holding the archives.
	ArchiveRoot string

	// Packages maps package names to their published versions.
	Packages map[string]CatalogPackage
}

// CatalogPackage lists the published versions of one package.
type CatalogPackage struct {
	Versions map[string]CatalogVersion
}

// CatalogVersion lists the platforms one version is built for.
type CatalogVersion struct {
	Platforms map[Platform]CatalogArtifact
}

// CatalogArtifact describes one downloadable archive.
type CatalogArtifact struct {
	// SHA256 is the hex encoded content hash of the archive.
	SHA256 string
}

// Resolution is where to download a dependency's archive and how to verify it.
type Resolution struct {
	URL    string
	SHA256 string
}

// Artifact looks up the archive entry for dep on platform.
// The returned error names the first level of the lookup path that is missing.
func (c *Catalog) Artifact(dep Dependency, platform Platform) (CatalogArtifact, error) {
	pkg, ok := c.Packages[dep.Name.String()]
	if !ok {
		return CatalogArtifact{}, zerr.With(zerr.Wrap(ErrCatalogEntryMissing, "package not in catalog"),
			"package", dep.Name.String())
	}

	version, ok := pkg.Versions[dep.Version.String()]
	if !ok {
		err := zerr.With(zerr.Wrap(ErrCatalogEntryMissing, "version not in catalog"), "package", dep.Name.String())
		return CatalogArtifact{}, zerr.With(err, "version", dep.Version.String())
	}

	artifact, ok := version.Platforms[platform]
	if !ok {
		err := zerr.With(zerr.Wrap(ErrCatalogEntryMissing, "platform not in catalog"), "package", dep.Name.String())
		err = zerr.With(err, "version", dep.Version.String())
		return CatalogArtifact{}, zerr.With(err, "platform", string(platform))
	}

	return artifact, nil
}

// ArchiveName returns the file name of dep's archive for platform: {name}_{version}_{platform}.zip.
func ArchiveName(dep Dependency, platform Platform) string {
	return dep.Name.String() + "_" + dep.Version.String() + "_" + string(platform) + ".zip"
}
