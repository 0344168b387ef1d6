// Package files provides the disk-backed catalog: one JSON document per
// brand partition inside a single directory.
package files

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/agentstation/specmap/internal/catalogs/base"
	"github.com/agentstation/specmap/internal/catalogs/persistence"
	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/constants"
	"github.com/agentstation/specmap/pkg/errors"
	"github.com/agentstation/specmap/pkg/specs"
)

// catalog persists partitions as <dir>/<sanitized-brand>.json. An index of
// case-folded partition keys to on-disk file names keeps case variants of a
// brand ("Samsung", "SAMSUNG") mapped to the one document the first variant
// created.
type catalog struct {
	mu       sync.Mutex
	dir      string
	readOnly bool
	index    map[string]string
}

// NewCatalog creates a disk-backed catalog rooted at dir, creating the
// directory if needed and indexing any partition documents already present.
func NewCatalog(dir string, readOnly bool) (catalogs.Catalog, error) {
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapStore("open", "", err)
	}

	c := &catalog{
		dir:      dir,
		readOnly: readOnly,
		index:    make(map[string]string),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WrapStore("open", "", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, constants.CatalogFileExt) {
			continue
		}
		key := strings.ToLower(strings.TrimSuffix(name, constants.CatalogFileExt))
		if _, dup := c.index[key]; !dup {
			c.index[key] = name
		}
	}
	return c, nil
}

// fileName returns the document name for a brand, preferring whatever file
// an earlier case variant of the brand established.
func (c *catalog) fileName(brand string) string {
	if name, ok := c.index[base.PartitionKey(brand)]; ok {
		return name
	}
	return specs.SanitizeBrand(brand) + constants.CatalogFileExt
}

// load reads the partition for brand, or returns os.ErrNotExist.
func (c *catalog) load(brand string) (*specs.Partition, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, c.fileName(brand)))
	if err != nil {
		return nil, err
	}
	return persistence.Unmarshal(data)
}

// persist writes the partition document atomically: full serialization to a
// temp file in the same directory, then rename over the target.
func (c *catalog) persist(brand string, p *specs.Partition) error {
	data, err := persistence.Marshal(p)
	if err != nil {
		return err
	}

	name := c.fileName(brand)
	target := filepath.Join(c.dir, name)
	tmp, err := os.CreateTemp(c.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}

	c.index[base.PartitionKey(brand)] = name
	return nil
}

// Upsert implements catalogs.Writer.
func (c *catalog) Upsert(ctx context.Context, brand, model string, attrs specs.Attributes) (*specs.Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.readOnly {
		return nil, errors.ErrReadOnly
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.load(brand)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.WrapStore("load", brand, err)
		}
		p = specs.NewPartition(brand)
	}

	d := base.Apply(p, brand, model, attrs)

	if err := c.persist(brand, p); err != nil {
		return nil, errors.WrapStore("persist", brand, err)
	}
	return d, nil
}

// Partition implements catalogs.Reader.
func (c *catalog) Partition(ctx context.Context, brand string) (*specs.Partition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.load(brand)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("partition", brand)
		}
		return nil, errors.WrapStore("load", brand, err)
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

	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.index))
	for key := range c.index {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	brands := make([]string, 0, len(keys))
	for _, key := range keys {
		data, err := os.ReadFile(filepath.Join(c.dir, c.index[key]))
		if err != nil {
			return nil, errors.WrapStore("load", key, err)
		}
		p, err := persistence.Unmarshal(data)
		if err != nil {
			return nil, errors.WrapStore("load", key, err)
		}
		brands = append(brands, p.Brand)
	}
	return brands, nil
}

// Close implements catalogs.Catalog. Disk-backed catalogs hold no
// long-lived resources.
func (c *catalog) Close() error {
	return nil
}
