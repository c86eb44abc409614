package domain

// ActionKind classifies what must happen to a package to reach the desired state.
type ActionKind int

const (
	// ActionNoOp means the installed version already matches the desired one.
	ActionNoOp ActionKind = iota
	// ActionInstall means the package is desired but not installed.
	ActionInstall
	// ActionReplace means a different version of the package is installed.
	ActionReplace
	// ActionRemove means the package is installed but no longer desired.
	ActionRemove
)

// String returns the lower-case name of the kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNoOp:
		return "noop"
	case ActionInstall:
		return "install"
	case ActionReplace:
		return "replace"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// PendingAction is a single reconciliation step for one package.
// Install has no Current, Remove has no Target, Replace and NoOp carry both.
type PendingAction struct {
	Kind    ActionKind
	Current *Dependency
	Target  *Dependency
}

// NewInstall creates an action installing target.
func NewInstall(target Dependency) PendingAction {
	return PendingAction{Kind: ActionInstall, Target: &target}
}

// NewReplace creates an action swapping current for target.
func NewReplace(current, target Dependency) PendingAction {
	return PendingAction{Kind: ActionReplace, Current: &current, Target: &target}
}

// NewRemove creates an action removing current.
func NewRemove(current Dependency) PendingAction {
	return PendingAction{Kind: ActionRemove, Current: &current}
}

// NewNoOp creates an action that requires no work.
func NewNoOp(current, target Dependency) PendingAction {
	return PendingAction{Kind: ActionNoOp, Current: &current, Target: &target}
}

// Name returns the package name from the target, or from the current entry when there is no target.
func (a PendingAction) Name() InternedString {
	if a.Target != nil {
		return a.Target.Name
	}
	return a.Current.Name
}

// CurrentVersion returns the installed version, if any.
func (a PendingAction) CurrentVersion() (string, bool) {
	if a.Current == nil {
		return "", false
	}
	return a.Current.Version.String(), true
}

// TargetVersion returns the wanted version, if any.
func (a PendingAction) TargetVersion() (string, bool) {
	if a.Target == nil {
		return "", false
	}
	return a.Target.Version.String(), true
}

// Plan groups the actions that require work, in execution order.
type Plan struct {
	Install []PendingAction
	Replace []PendingAction
	Remove  []PendingAction
}

// NewPlan drops NoOp actions and partitions the rest by kind, preserving order within each group.
func NewPlan(actions []PendingAction) *Plan {
	plan := &Plan{}
	for _, action := range actions {
		switch action.Kind {
		case ActionInstall:
			plan.Install = append(plan.Install, action)
		case ActionReplace:
			plan.Replace = append(plan.Replace, action)
		case ActionRemove:
			plan.Remove = append(plan.Remove, action)
		case ActionNoOp:
		}
	}
	return plan
}

// Len returns the number of actions in the plan.
func (p *Plan) Len() int {
	return len(p.Install) + len(p.Replace) + len(p.Remove)
}

// IsEmpty reports whether the plan has nothing to do.
func (p *Plan) IsEmpty() bool {
	return p.Len() == 0
}

// Ordered returns all actions in execution order: installs, then replacements, then removals.
func (p *Plan) Ordered() []PendingAction {
	ordered := make([]PendingAction, 0, p.Len())
	ordered = append(ordered, p.Install...)
	ordered = append(ordered, p.Replace...)
	return append(ordered, p.Remove...)
}
