package specmap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/specmap/pkg/catalogs/memory"
	"github.com/agentstation/specmap/pkg/logging"
	"github.com/agentstation/specmap/pkg/specs"
)

func TestMergeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	require.NoError(t, os.MkdirAll(input, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "a.csv"),
		[]byte("Brand,Model,RAM\nSamsung,Galaxy S21,8GB\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "b.csv"),
		[]byte("Model,Storage\nSamsung Galaxy S21,128GB\n"), 0o644))

	sm, err := New(
		WithCatalogDir(filepath.Join(dir, "catalog")),
		WithoutAuditLog(),
		WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	defer sm.Close()

	ctx := context.Background()
	result, err := sm.Merge(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 2, result.Merged)

	d, err := sm.Catalog().Device(ctx, "Samsung", "Galaxy S21")
	require.NoError(t, err)
	assert.Equal(t, specs.Attributes{
		"ram":     specs.Int(8),
		"storage": specs.Int(128),
	}, d.Attributes)

	_, err = os.Stat(filepath.Join(dir, "catalog", "Samsung.json"))
	assert.NoError(t, err)
}

func TestNewWithProvidedCatalog(t *testing.T) {
	cat := memory.New()
	sm, err := New(WithCatalog(cat), WithoutAuditLog(), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, cat, sm.Catalog())
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(WithCatalog(nil))
	assert.Error(t, err)

	_, err = New(WithCatalogDir(""))
	assert.Error(t, err)

	_, err = New(WithVocabularyFile(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}
