package domain

// RunState is the phase an install run reached.
type RunState string

const (
	// RunPlanning is computing the actions.
	RunPlanning RunState = "Planning"
	// RunConfirming is waiting for the operator to accept the plan.
	RunConfirming RunState = "Confirming"
	// RunExecuting is applying actions to the install tree.
	RunExecuting RunState = "Executing"
	// RunCommitted means the lock file reflects the completed actions.
	RunCommitted RunState = "Committed"
	// RunAborted means the operator declined and nothing was changed.
	RunAborted RunState = "Aborted"
	// RunFailed means a fatal error stopped the run before the lock file was committed.
	RunFailed RunState = "Failed"
)
