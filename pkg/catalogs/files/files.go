// Package files constructs the disk-backed catalog: one JSON document per
// brand partition inside a directory.
package files

import (
	"github.com/agentstation/specmap/internal/catalogs/files"
	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/errors"
)

// Option is a function that configures a files catalog.
type Option func(*config)

// WithReadOnly makes every write return errors.ErrReadOnly. Useful for
// inspection commands that must not touch the catalog.
func WithReadOnly() Option {
	return func(cfg *config) {
		cfg.readOnly = true
	}
}

// New creates a disk-backed catalog rooted at dir, creating the directory
// when it does not exist and indexing any partition documents already there.
func New(dir string, opts ...Option) (catalogs.Catalog, error) {
	if dir == "" {
		return nil, errors.NewValidationError("dir", dir, "catalog directory is required")
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return files.NewCatalog(dir, cfg.readOnly)
}

// config is the configuration for a files catalog.
type config struct {
	readOnly bool
}
