package domain

import (
	"path/filepath"
	"strings"
)

// Dependency is a package pinned to one exact version.
// Versions are opaque and compared only for equality.
type Dependency struct {
	// Name is the package name (e.g., "viennarna"). It is the unique key within a package set.
	Name InternedString

	// Version is the pinned version string (e.g., "2.4.3").
	Version InternedString
}

// NewDependency creates a Dependency from plain strings.
func NewDependency(name, version string) Dependency {
	return Dependency{
		Name:    NewInternedString(name),
		Version: NewInternedString(version),
	}
}

// Equal reports whether both name and version match.
func (d Dependency) Equal(other Dependency) bool {
	return d.Name == other.Name && d.Version == other.Version
}

// String renders the dependency as name@version.
func (d Dependency) String() string {
	return d.Name.String() + "@" + d.Version.String()
}

// ValidPackageName reports whether name can be used as a directory directly below the
// install root. Names starting with a dot are reserved for backup and staging directories.
func ValidPackageName(name string) bool {
	return name != "" &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`) &&
		filepath.IsLocal(name)
}

// DesiredSet is the parsed manifest: where to find the catalog and which packages are wanted.
type DesiredSet struct {
	// CatalogURL is the location of the remote package index.
	CatalogURL string

	// Packages lists the wanted packages in manifest order.
	Packages []Dependency
}

// Lookup returns the desired entry with the given name.
func (s *DesiredSet) Lookup(name InternedString) (Dependency, bool) {
	return lookup(s.Packages, name)
}

// InstalledSet is the lock state: which package versions are currently installed.
type InstalledSet struct {
	// Packages lists the installed packages in lock file order.
	Packages []Dependency
}

// Lookup returns the installed entry with the given name.
func (s *InstalledSet) Lookup(name InternedString) (Dependency, bool) {
	return lookup(s.Packages, name)
}

// Clone returns an independent copy of the set.
func (s *InstalledSet) Clone() *InstalledSet {
	packages := make([]Dependency, len(s.Packages))
	copy(packages, s.Packages)
	return &InstalledSet{Packages: packages}
}

// Apply returns a new set reflecting the completed actions.
// For every action the entry with the same name is dropped and, unless the action
// removed the package, the target version is appended.
func (s *InstalledSet) Apply(completed []PendingAction) *InstalledSet {
	next := s.Clone()
	for _, action := range completed {
		name := action.Name()
		kept := next.Packages[:0]
		for _, dep := range next.Packages {
			if dep.Name != name {
				kept = append(kept, dep)
			}
		}
		next.Packages = kept

		if action.Kind != ActionRemove && action.Target != nil {
			next.Packages = append(next.Packages, *action.Target)
		}
	}
	return next
}

func lookup(packages []Dependency, name InternedString) (Dependency, bool) {
	for _, dep := range packages {
		if dep.Name == name {
			return dep, true
		}
	}
	return Dependency{}, false
}
