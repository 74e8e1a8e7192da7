// Package app provides the application context and dependency management
// for the skuforge CLI. It centralizes configuration, logging, and pipeline
// construction for the command handlers.
package app

import (
	"github.com/rs/zerolog"

	"github.com/skuforge/skuforge"
	"github.com/skuforge/skuforge/pkg/errors"
)

// App represents the skuforge application with all its dependencies.
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
// The app is initialized with configuration loaded from the environment,
// .env files, and the config file; functional options override it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Pipeline builds a reconciliation pipeline from the app configuration.
// Each invocation constructs a fresh pipeline; pipelines carry no state
// between runs.
func (a *App) Pipeline() (*skuforge.Pipeline, error) {
	return skuforge.New(a.buildPipelineOptions()...)
}

// buildPipelineOptions translates app configuration into pipeline options.
func (a *App) buildPipelineOptions() []skuforge.Option {
	opts := []skuforge.Option{
		skuforge.WithCatalogFeed(a.config.CatalogFeed),
		skuforge.WithInventoryFeed(a.config.InventoryFeed),
		skuforge.WithVendorMapFeed(a.config.VendorMapFeed),
		skuforge.WithVendor(a.config.Vendor),
		skuforge.WithOutputDir(a.config.OutDir),
		skuforge.WithERPFiles(a.config.ERPFiles),
		skuforge.WithChunkSize(a.config.ChunkSize),
	}

	if a.config.Markup > 0 {
		opts = append(opts, skuforge.WithMarkup(a.config.Markup))
	}
	if a.config.LocationRoot != "" {
		opts = append(opts, skuforge.WithLocationRoot(a.config.LocationRoot))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
