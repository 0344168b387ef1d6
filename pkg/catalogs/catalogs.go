// Package catalogs defines the partitioned device store: merged entities
// grouped by brand, one partition per distinct brand, each persisted
// independently. Implementations live under internal/catalogs and are
// constructed through the files, memory, and sqlite subpackages.
//
// Every write is a full read-modify-write of one partition. Correctness
// depends on single-writer sequencing by the caller; implementations do not
// coordinate between processes.
package catalogs

import (
	"context"

	"github.com/agentstation/specmap/pkg/specs"
)

// Reader provides read-only access to persisted partitions.
type Reader interface {
	// Brands lists every brand with a persisted partition, sorted by
	// partition key.
	Brands(ctx context.Context) ([]string, error)

	// Partition returns the partition document for a brand.
	// Returns an error satisfying errors.IsNotFound when none exists.
	Partition(ctx context.Context, brand string) (*specs.Partition, error)

	// Device returns the merged entity for a brand+model pair.
	// Returns an error satisfying errors.IsNotFound when none exists.
	Device(ctx context.Context, brand, model string) (*specs.Device, error)
}

// Writer provides the single mutation of the store.
type Writer interface {
	// Upsert folds incoming attributes into the entity identified by
	// brand+model, creating the partition and the entity as needed, and
	// persists the whole partition back. The returned device reflects the
	// post-merge state. Failures are fatal to a merge run.
	Upsert(ctx context.Context, brand, model string, attrs specs.Attributes) (*specs.Device, error)
}

// Catalog is the complete store interface.
type Catalog interface {
	Reader
	Writer

	// Close releases any resources held by the backend.
	Close() error
}
