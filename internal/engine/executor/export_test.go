package executor

import "go.trai.ch/natdeps/internal/core/domain"

// WithPlatformFunc replaces host platform detection.
func (e *Executor) WithPlatformFunc(fn func() (domain.Platform, error)) *Executor {
	e.platform = fn
	return e
}
