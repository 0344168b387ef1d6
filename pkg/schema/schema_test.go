package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 1.0, Ratio("model", "model"))
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))

	// 2*5 matching runes over 11 total.
	assert.InDelta(t, 0.9091, Ratio("modell", "model"), 0.0001)

	// Symmetric regardless of argument order.
	assert.Equal(t, Ratio("brand name", "brandname"), Ratio("brandname", "brand name"))

	// Multi-byte runes count as single characters.
	assert.Equal(t, 1.0, Ratio("crème", "crème"))
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"RAM (GB)", "ram gb"},
		{"  Brand_Name  ", "brand name"},
		{"Foo---Bar...Baz", "foo bar baz"},
		{"price", "price"},
		{"***", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanName(tt.in), "CleanName(%q)", tt.in)
	}
}

func TestFallbackKey(t *testing.T) {
	assert.Equal(t, "attr_foo_bar_baz", FallbackKey("Foo Bar Baz"))
	assert.Equal(t, "attr_antutu_score", FallbackKey("AnTuTu-Score"))
}

func TestResolveExact(t *testing.T) {
	c := NewCanonicalizer(nil)

	tests := []struct {
		column, want string
	}{
		{"RAM (GB)", "ram"},
		{"ram", "ram"},
		{"Battery", "battery_capacity"},
		{"Operating_System", "os"},
		{"Rear Camera", "camera_main"},
		{"colour", "colors"},
	}
	for _, tt := range tests {
		key, ok := c.Resolve(tt.column)
		require.True(t, ok, "Resolve(%q)", tt.column)
		assert.Equal(t, tt.want, key)
	}
}

func TestResolveFuzzyAlias(t *testing.T) {
	c := NewCanonicalizer(nil)

	// "ram size gb" vs alias "ram size" scores 0.8421 on shape alone and
	// clears 0.85 only with the two shared-token bonuses.
	key, ok := c.Resolve("RAM Size (GB)")
	require.True(t, ok)
	assert.Equal(t, "ram", key)

	// Typo within alias distance.
	key, ok = c.Resolve("Batery")
	require.True(t, ok)
	assert.Equal(t, "battery_capacity", key)
}

func TestResolveFuzzyKeyName(t *testing.T) {
	c := NewCanonicalizer(nil)

	// "camera main" matches no alias above 0.85 (best is "camera" at 0.76
	// with bonus) but equals the canonical key name itself.
	key, ok := c.Resolve("Camera Main")
	require.True(t, ok)
	assert.Equal(t, "camera_main", key)
}

func TestResolveRejects(t *testing.T) {
	c := NewCanonicalizer(nil)

	for _, col := range []string{"Foo Bar Baz", "qqqq", "", "***"} {
		_, ok := c.Resolve(col)
		assert.False(t, ok, "Resolve(%q) should not map", col)
	}
}

func TestCanonicalize(t *testing.T) {
	c := NewCanonicalizer(nil)

	assert.Equal(t, "ram", c.Canonicalize("RAM (GB)"))
	assert.Equal(t, "attr_foo_bar_baz", c.Canonicalize("Foo Bar Baz"))
}

func TestCanonicalizeDeterministic(t *testing.T) {
	columns := []string{"RAM (GB)", "Batery", "Camera Main", "Foo Bar Baz", "Screen Size"}

	first := NewCanonicalizer(nil)
	want := make([]string, len(columns))
	for i, col := range columns {
		want[i] = first.Canonicalize(col)
	}

	for i := 0; i < 10; i++ {
		c := NewCanonicalizer(nil)
		for j, col := range columns {
			assert.Equal(t, want[j], c.Canonicalize(col))
		}
	}
}

func TestWithThresholds(t *testing.T) {
	strict := NewCanonicalizer(nil, WithThresholds(Thresholds{Alias: 1.01, Key: 1.01, Role: 1.01}))

	// Exact alias hits bypass thresholds entirely.
	key, ok := strict.Resolve("ram")
	require.True(t, ok)
	assert.Equal(t, "ram", key)

	// Fuzzy hits cannot clear an impossible bar.
	_, ok = strict.Resolve("Batery")
	assert.False(t, ok)
}

func TestResolveRole(t *testing.T) {
	c := NewCanonicalizer(nil)

	// Exact cleaned-equality wins in candidate priority order.
	col, ok := c.ResolveRole([]string{"Company", "Brand Name", "Model"}, BrandCandidates)
	require.True(t, ok)
	assert.Equal(t, "Brand Name", col)

	col, ok = c.ResolveRole([]string{"Brand Name", "Model Name"}, ModelCandidates)
	require.True(t, ok)
	assert.Equal(t, "Model Name", col)

	// Fuzzy election above the role threshold.
	col, ok = c.ResolveRole([]string{"Price", "Modell"}, ModelCandidates)
	require.True(t, ok)
	assert.Equal(t, "Modell", col)

	// Nothing close enough.
	_, ok = c.ResolveRole([]string{"Price", "Color"}, ModelCandidates)
	assert.False(t, ok)

	_, ok = c.ResolveRole(nil, BrandCandidates)
	assert.False(t, ok)
}

func TestGenericModelColumn(t *testing.T) {
	c := NewCanonicalizer(nil)

	col, ok := c.GenericModelColumn([]string{"Price", "Name", "Rating"})
	require.True(t, ok)
	assert.Equal(t, "Name", col)

	_, ok = c.GenericModelColumn([]string{"Price", "Rating"})
	assert.False(t, ok)
}

func TestVocabularyLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	data := []byte(`- key: ram
  aliases: [ram, memory_ram]
- key: storage
  aliases: [storage, rom]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	vocab, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ram", "storage"}, vocab.Keys())
	assert.Equal(t, 2, vocab.Len())

	c := NewCanonicalizer(vocab)
	key, ok := c.Resolve("ROM")
	require.True(t, ok)
	assert.Equal(t, "storage", key)

	// Columns outside the custom vocabulary fall through.
	_, ok = c.Resolve("price")
	assert.False(t, ok)
}

func TestVocabularyLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
