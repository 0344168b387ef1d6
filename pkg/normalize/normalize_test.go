package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/specmap/pkg/specs"
)

func TestMeaningful(t *testing.T) {
	meaningful := []string{"Samsung", " 8GB ", "0", "n/b", "not available"}
	for _, s := range meaningful {
		assert.True(t, Meaningful(s), "expected %q to be meaningful", s)
	}

	meaningless := []string{"", "   ", "na", "NA", "n/a", "N/A", "none", "None", "null", "NULL", "nan", "NaN"}
	for _, s := range meaningless {
		assert.False(t, Meaningful(s), "expected %q to be meaningless", s)
	}
}

func TestMeaningfulValue(t *testing.T) {
	assert.True(t, MeaningfulValue(specs.Int(0)))
	assert.True(t, MeaningfulValue(specs.Float(6.7)))
	assert.True(t, MeaningfulValue(specs.List(specs.String("8GB"))))
	assert.True(t, MeaningfulValue(specs.String("8GB")))

	assert.False(t, MeaningfulValue(specs.String("n/a")))
	assert.False(t, MeaningfulValue(specs.String("  ")))
	assert.False(t, MeaningfulValue(specs.Float(math.NaN())))
	assert.False(t, MeaningfulValue(specs.Float(math.Inf(1))))
	assert.False(t, MeaningfulValue(specs.List()))
}

func TestScalarNumericCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want specs.Value
	}{
		{"battery with unit", "5000 mAh", specs.Int(5000)},
		{"display with unit", "6.7 inch", specs.Float(6.7)},
		{"bare integer", "128", specs.Int(128)},
		{"thousands separators", "1,20,000 Rs", specs.Int(120000)},
		{"leading whitespace", "  90 Hz", specs.Int(90)},
		{"no numeric prefix", "Snapdragon 888", specs.String("Snapdragon 888")},
		{"negative passes through", "-5 deg", specs.String("-5 deg")},
		{"empty passes through", "", specs.String("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scalar(tt.in))
		})
	}
}
