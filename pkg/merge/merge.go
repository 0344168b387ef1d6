// Package merge implements attribute-level conflict resolution between an
// entity's accumulated attributes and one incoming row. Scalar fields are
// first-write-wins; a small set of fields known to legitimately vary across
// listings accumulate every distinct value instead.
package merge

import (
	"github.com/agentstation/specmap/pkg/normalize"
	"github.com/agentstation/specmap/pkg/specs"
)

// multiValued lists the canonical keys that accumulate distinct values
// rather than keeping the first writer. RAM, storage and color vary by
// retail variant, price varies by seller and time.
var multiValued = map[string]struct{}{
	"ram":     {},
	"storage": {},
	"colors":  {},
	"price":   {},
	"color":   {},
}

// MultiValued reports whether key accumulates values instead of keeping the
// first meaningful one.
func MultiValued(key string) bool {
	_, ok := multiValued[key]
	return ok
}

// Attributes folds incoming into existing in place.
//
// Per incoming key: meaningless values are skipped; a key that is absent or
// currently meaningless is set; multi-valued keys append the value unless an
// equal one (case- and whitespace-insensitive) is already present; everything
// else keeps its existing value. Re-applying the same incoming map is a
// no-op, so replays of the same source data never change stored state.
func Attributes(existing specs.Attributes, incoming specs.Attributes) {
	for key, value := range incoming {
		if !normalize.MeaningfulValue(value) {
			continue
		}

		current, present := existing[key]
		if !present || !normalize.MeaningfulValue(current) {
			existing[key] = value
			continue
		}

		if !MultiValued(key) {
			continue
		}
		if current.Contains(value) {
			continue
		}
		existing[key] = current.Append(value)
	}
}

// Row normalizes a raw cell map into typed attributes, dropping meaningless
// cells. Keys are assumed already canonical.
func Row(cells map[string]string) specs.Attributes {
	attrs := make(specs.Attributes, len(cells))
	for key, raw := range cells {
		if !normalize.Meaningful(raw) {
			continue
		}
		attrs[key] = normalize.Scalar(raw)
	}
	return attrs
}
