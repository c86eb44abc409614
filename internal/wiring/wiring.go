// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/natdeps/internal/adapters/config"
	_ "go.trai.ch/natdeps/internal/adapters/logger"
	_ "go.trai.ch/natdeps/internal/adapters/prompt"
	_ "go.trai.ch/natdeps/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/natdeps/internal/adapters/workspace"
	// Register app nodes.
	_ "go.trai.ch/natdeps/internal/app"
)
