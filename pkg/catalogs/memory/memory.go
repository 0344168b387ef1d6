// Package memory constructs the in-memory catalog used by tests and
// dry runs.
package memory

import (
	"github.com/agentstation/specmap/internal/catalogs/memory"
	"github.com/agentstation/specmap/pkg/catalogs"
)

// New creates an empty in-memory catalog. It cannot fail.
func New() catalogs.Catalog {
	return memory.NewCatalog()
}
