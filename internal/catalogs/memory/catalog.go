// Package memory provides an in-memory catalog for tests and dry runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/agentstation/specmap/internal/catalogs/base"
	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/errors"
	"github.com/agentstation/specmap/pkg/specs"
)

// catalog keeps partitions keyed by their case-folded partition key. Nothing
// persists past the process.
type catalog struct {
	mu         sync.RWMutex
	partitions map[string]*specs.Partition
}

// NewCatalog creates an empty in-memory catalog.
func NewCatalog() catalogs.Catalog {
	return &catalog{
		partitions: make(map[string]*specs.Partition),
	}
}

// Upsert implements catalogs.Writer.
func (c *catalog) Upsert(ctx context.Context, brand, model string, attrs specs.Attributes) (*specs.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := base.PartitionKey(brand)
	p, ok := c.partitions[key]
	if !ok {
		p = specs.NewPartition(brand)
		c.partitions[key] = p
	}
	return base.Apply(p, brand, model, attrs), nil
}

// Partition implements catalogs.Reader.
func (c *catalog) Partition(ctx context.Context, brand string) (*specs.Partition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.partitions[base.PartitionKey(brand)]
	if !ok {
		return nil, errors.NewNotFoundError("partition", brand)
	}
	return p, nil
}

// Device implements catalogs.Reader.
func (c *catalog) Device(ctx context.Context, brand, model string) (*specs.Device, error) {
	p, err := c.Partition(ctx, brand)
	if err != nil {
		return nil, err
	}
	id := specs.DeviceID(brand, model)
	d, ok := p.Entities[id]
	if !ok {
		return nil, errors.NewNotFoundError("device", id)
	}
	return d, nil
}

// Brands implements catalogs.Reader.
func (c *catalog) Brands(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.partitions))
	for key := range c.partitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	brands := make([]string, 0, len(keys))
	for _, key := range keys {
		brands = append(brands, c.partitions[key].Brand)
	}
	return brands, nil
}

// Close implements catalogs.Catalog.
func (c *catalog) Close() error {
	return nil
}
