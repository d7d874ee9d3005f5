package ports

import "github.com/brieflab/briefkit/internal/core/domain"

// ConfigLoader defines the interface for loading the toolbox configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory.
	Load(cwd string) (*domain.Config, error)
}
