// Package integration exercises the full merge pipeline against every
// catalog backend, verifying they agree on final state for the same input.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/specmap"
	"github.com/agentstation/specmap/pkg/catalogs"
	"github.com/agentstation/specmap/pkg/catalogs/memory"
	"github.com/agentstation/specmap/pkg/logging"
	"github.com/agentstation/specmap/pkg/specs"
)

// writeFixtures lays out a small multi-source input tree: overlapping
// devices, a combined identity column, mixed casing, and one junk file.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"flipkart/phones.csv": "Brand,Model,RAM (GB),Price\n" +
			"Samsung,Galaxy S21,8,59999\n" +
			"Xiaomi,Redmi Note 12,6,17999\n",
		"amazon/listings.csv": "Name,Storage,Price\n" +
			"Samsung Galaxy S21,128GB,54999\n",
		"gsmarena/export.tsv": "brand_name\tmodel_name\tBattery\n" +
			"SAMSUNG\tGalaxy S21\t4000 mAh\n",
		"notes/readme.txt": "not a table\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func mergeWith(t *testing.T, cat catalogs.Catalog, input string) {
	t.Helper()
	sm, err := specmap.New(
		specmap.WithCatalog(cat),
		specmap.WithoutAuditLog(),
		specmap.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	result, err := sm.Merge(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 3, result.Files)
	require.Equal(t, 4, result.Merged)
}

func assertFinalState(t *testing.T, cat catalogs.Catalog) {
	t.Helper()
	ctx := context.Background()

	brands, err := cat.Brands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Samsung", "Xiaomi"}, brands)

	// Three sources, one Galaxy S21: price accumulated, the rest merged
	// first-write-wins across files in lexicographic path order
	// (amazon, flipkart, gsmarena).
	d, err := cat.Device(ctx, "Samsung", "Galaxy S21")
	require.NoError(t, err)
	assert.Equal(t, specs.Attributes{
		"storage":          specs.Int(128),
		"price":            specs.List(specs.Int(54999), specs.Int(59999)),
		"ram":              specs.Int(8),
		"battery_capacity": specs.Int(4000),
	}, d.Attributes)

	d, err = cat.Device(ctx, "Xiaomi", "Redmi Note 12")
	require.NoError(t, err)
	assert.Equal(t, specs.Int(6), d.Attributes["ram"])
}

func TestBackendsAgreeOnFinalState(t *testing.T) {
	input := writeFixtures(t)

	t.Run("memory", func(t *testing.T) {
		cat := memory.New()
		defer cat.Close()
		mergeWith(t, cat, input)
		assertFinalState(t, cat)
	})

	t.Run("files", func(t *testing.T) {
		sm, err := specmap.New(
			specmap.WithCatalogDir(filepath.Join(t.TempDir(), "catalog")),
			specmap.WithoutAuditLog(),
			specmap.WithLogger(logging.NewNopLogger()),
		)
		require.NoError(t, err)
		defer sm.Close()

		result, err := sm.Merge(context.Background(), input)
		require.NoError(t, err)
		require.Equal(t, 4, result.Merged)
		assertFinalState(t, sm.Catalog())
	})

	t.Run("sqlite", func(t *testing.T) {
		sm, err := specmap.New(
			specmap.WithSQLite(filepath.Join(t.TempDir(), "catalog.db")),
			specmap.WithoutAuditLog(),
			specmap.WithLogger(logging.NewNopLogger()),
		)
		require.NoError(t, err)
		defer sm.Close()

		result, err := sm.Merge(context.Background(), input)
		require.NoError(t, err)
		require.Equal(t, 4, result.Merged)
		assertFinalState(t, sm.Catalog())
	})
}
