// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/brieflab/briefkit/internal/adapters/config"
	_ "github.com/brieflab/briefkit/internal/adapters/logger"
	_ "github.com/brieflab/briefkit/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "github.com/brieflab/briefkit/internal/app"
)
