// Package app provides the application context and dependency management
// for the specmap CLI: configuration, logging, and the lazily created
// specmap instance shared by all commands.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/specmap"
	"github.com/agentstation/specmap/pkg/errors"
)

// App represents the specmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Specmap instance (lazy-initialized, singleton)
	mu sync.Mutex
	sm specmap.Specmap
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading configuration", err)
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

// Specmap returns the specmap instance, creating it lazily on first use.
func (a *App) Specmap() (specmap.Specmap, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sm != nil {
		return a.sm, nil
	}

	sm, err := specmap.New(a.buildOptions()...)
	if err != nil {
		return nil, err
	}
	a.sm = sm
	return sm, nil
}

// Shutdown releases the catalog backend if one was opened.
func (a *App) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sm != nil {
		if err := a.sm.Close(); err != nil {
			a.logger.Error().Err(err).Msg("closing catalog")
		}
		a.sm = nil
	}
}

// buildOptions constructs specmap options from the app configuration.
func (a *App) buildOptions() []specmap.Option {
	opts := []specmap.Option{
		specmap.WithLogger(a.logger),
	}

	if a.config.DatabasePath != "" {
		opts = append(opts, specmap.WithSQLite(a.config.DatabasePath))
	} else {
		opts = append(opts, specmap.WithCatalogDir(a.config.CatalogDir))
	}

	if a.config.VocabularyPath != "" {
		opts = append(opts, specmap.WithVocabularyFile(a.config.VocabularyPath))
	}

	if a.config.NoAuditLog {
		opts = append(opts, specmap.WithoutAuditLog())
	} else if a.config.AuditLogPath != "" {
		opts = append(opts, specmap.WithAuditLog(a.config.AuditLogPath))
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

// WithSpecmap sets a custom specmap instance (useful for testing).
func WithSpecmap(sm specmap.Specmap) Option {
	return func(a *App) error {
		a.sm = sm
		return nil
	}
}
