package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/specmap/pkg/specs"
)

func TestAttributesFirstWriteWins(t *testing.T) {
	existing := specs.Attributes{"chipset": specs.String("Snapdragon 888")}
	Attributes(existing, specs.Attributes{"chipset": specs.String("SD888")})

	assert.Equal(t, specs.String("Snapdragon 888"), existing["chipset"])
}

func TestAttributesSetsAbsentKeys(t *testing.T) {
	existing := specs.Attributes{}
	Attributes(existing, specs.Attributes{
		"chipset": specs.String("Snapdragon 888"),
		"weight":  specs.Int(169),
	})

	assert.Equal(t, specs.String("Snapdragon 888"), existing["chipset"])
	assert.Equal(t, specs.Int(169), existing["weight"])
}

func TestAttributesReplacesMeaninglessExisting(t *testing.T) {
	existing := specs.Attributes{"os": specs.String("n/a")}
	Attributes(existing, specs.Attributes{"os": specs.String("Android 13")})

	assert.Equal(t, specs.String("Android 13"), existing["os"])
}

func TestAttributesSkipsMeaninglessIncoming(t *testing.T) {
	existing := specs.Attributes{"os": specs.String("Android 13")}
	Attributes(existing, specs.Attributes{
		"os":      specs.String("none"),
		"chipset": specs.String("   "),
	})

	assert.Equal(t, specs.String("Android 13"), existing["os"])
	assert.NotContains(t, existing, "chipset")
}

func TestAttributesAccumulatesMultiValued(t *testing.T) {
	existing := specs.Attributes{"ram": specs.String("8GB")}

	Attributes(existing, specs.Attributes{"ram": specs.String("12GB")})
	assert.Equal(t, specs.List(specs.String("8GB"), specs.String("12GB")), existing["ram"])

	Attributes(existing, specs.Attributes{"ram": specs.String("16GB")})
	assert.Equal(t,
		specs.List(specs.String("8GB"), specs.String("12GB"), specs.String("16GB")),
		existing["ram"])
}

func TestAttributesDedupesFoldInsensitive(t *testing.T) {
	existing := specs.Attributes{"colors": specs.String("Phantom Black")}

	Attributes(existing, specs.Attributes{"colors": specs.String("  phantom black ")})
	assert.Equal(t, specs.String("Phantom Black"), existing["colors"])

	Attributes(existing, specs.Attributes{"colors": specs.String("Cream")})
	Attributes(existing, specs.Attributes{"colors": specs.String("CREAM")})
	assert.Equal(t, specs.List(specs.String("Phantom Black"), specs.String("Cream")), existing["colors"])
}

func TestAttributesNumericListDedupe(t *testing.T) {
	existing := specs.Attributes{"price": specs.Int(59999)}

	Attributes(existing, specs.Attributes{"price": specs.Int(54999)})
	Attributes(existing, specs.Attributes{"price": specs.Int(59999)})

	assert.Equal(t, specs.List(specs.Int(59999), specs.Int(54999)), existing["price"])
}

func TestAttributesIdempotent(t *testing.T) {
	incoming := specs.Attributes{
		"ram":     specs.String("8GB"),
		"chipset": specs.String("Snapdragon 888"),
		"price":   specs.Int(59999),
	}

	existing := specs.Attributes{}
	Attributes(existing, incoming)
	snapshot := existing.Copy()

	Attributes(existing, incoming)
	Attributes(existing, incoming)
	assert.Equal(t, snapshot, existing)
}

func TestMultiValued(t *testing.T) {
	for _, key := range []string{"ram", "storage", "colors", "price", "color"} {
		assert.True(t, MultiValued(key), key)
	}
	for _, key := range []string{"chipset", "os", "weight", "attr_foo"} {
		assert.False(t, MultiValued(key), key)
	}
}

func TestRow(t *testing.T) {
	attrs := Row(map[string]string{
		"battery_capacity": "5000 mAh",
		"display_size":     "6.7 inch",
		"chipset":          "Snapdragon 888",
		"nfc":              "n/a",
		"gpu":              "",
	})

	assert.Equal(t, specs.Attributes{
		"battery_capacity": specs.Int(5000),
		"display_size":     specs.Float(6.7),
		"chipset":          specs.String("Snapdragon 888"),
	}, attrs)
}
