// Package app provides the application context and dependency management
// for the verdant CLI. It centralizes configuration, logging, and catalog
// access for the command handlers.
package app

import (
	"github.com/rs/zerolog"

	"github.com/verdantlabs/verdant/pkg/catalogs"
	"github.com/verdantlabs/verdant/pkg/errors"
)

// App represents the verdant application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	return app, nil
}

// Version returns the version string.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Catalog opens the configured record store.
func (a *App) Catalog() (catalogs.Catalog, error) {
	return catalogs.NewFromPath(a.config.StorePath)
}
