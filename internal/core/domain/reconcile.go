package domain

// Diff computes one action per distinct package name across both sets.
//
// Desired packages come first in manifest order and are classified as Install,
// Replace or NoOp. Installed packages that are no longer desired follow in lock
// file order as Remove.
func Diff(desired *DesiredSet, installed *InstalledSet) []PendingAction {
	actions := make([]PendingAction, 0, len(desired.Packages)+len(installed.Packages))

	for _, want := range desired.Packages {
		have, ok := installed.Lookup(want.Name)
		switch {
		case !ok:
			actions = append(actions, NewInstall(want))
		case have.Version != want.Version:
			actions = append(actions, NewReplace(have, want))
		default:
			actions = append(actions, NewNoOp(have, want))
		}
	}

	for _, have := range installed.Packages {
		if _, ok := desired.Lookup(have.Name); !ok {
			actions = append(actions, NewRemove(have))
		}
	}

	return actions
}
