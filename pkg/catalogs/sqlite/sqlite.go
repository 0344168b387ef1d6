// Package sqlite constructs the SQLite-backed catalog, which keeps every
// brand partition in a single database file.
package sqlite

import (
	"github.com/agentstation/specmap/internal/catalogs/sqlite"
	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/errors"
)

// New opens (creating if needed) a SQLite-backed catalog at path.
func New(path string) (catalogs.Catalog, error) {
	if path == "" {
		return nil, errors.NewValidationError("path", path, "database path is required")
	}
	return sqlite.NewCatalog(path)
}
