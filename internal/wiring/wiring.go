// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/licache/internal/adapters/config"
	_ "go.trai.ch/licache/internal/adapters/fs"
	_ "go.trai.ch/licache/internal/adapters/logger"
	_ "go.trai.ch/licache/internal/adapters/recordstore"
	_ "go.trai.ch/licache/internal/adapters/reporter"
	_ "go.trai.ch/licache/internal/adapters/source"
	_ "go.trai.ch/licache/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/licache/internal/app"
	_ "go.trai.ch/licache/internal/engine/reconciler"
)
