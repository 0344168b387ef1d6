// Package extract resolves the brand/model identity of a source row,
// including the heuristic split of combined "Brand Model ..." strings found
// in exports that collapse both into a single column.
package extract

import (
	"strings"
	"unicode"

	"github.com/agentstation/specmap/pkg/constants"
	"github.com/agentstation/specmap/pkg/normalize"
)

// Identity is the resolved brand/model pair for one row. Both fields are
// trimmed but otherwise preserve source casing; identifier derivation
// normalizes separately.
type Identity struct {
	Brand string
	Model string
}

// Resolve derives an Identity from the raw brand and model cell values.
// When the brand cell is missing or meaningless but the model cell is not,
// the model string is split: a leading token that looks like a brand name
// becomes the brand and the remainder becomes the model. Rows whose identity
// cannot be resolved report false and produce no entity.
func Resolve(brandRaw, modelRaw string) (Identity, bool) {
	brand := strings.TrimSpace(brandRaw)
	model := strings.TrimSpace(modelRaw)

	if !normalize.Meaningful(model) {
		return Identity{}, false
	}

	if !normalize.Meaningful(brand) {
		split, rest, ok := SplitBrand(model)
		if !ok {
			return Identity{}, false
		}
		brand, model = split, rest
	}

	return Identity{Brand: brand, Model: model}, true
}

// SplitBrand attempts to peel a brand token off the front of a combined
// identity string. The split is accepted when the string has at least two
// whitespace-delimited tokens and the first one passes looksLikeBrand.
func SplitBrand(combined string) (brand, model string, ok bool) {
	tokens := strings.Fields(combined)
	if len(tokens) < 2 {
		return "", "", false
	}
	if !looksLikeBrand(tokens[0]) {
		return "", "", false
	}
	return tokens[0], strings.Join(tokens[1:], " "), true
}

// looksLikeBrand reports whether a token plausibly names a manufacturer:
// length within [MinBrandTokenLength, MaxBrandTokenLength] runes and either
// an uppercase first letter or a fully uppercase token (e.g. "LG", "OPPO").
func looksLikeBrand(token string) bool {
	runes := []rune(token)
	if len(runes) < constants.MinBrandTokenLength || len(runes) > constants.MaxBrandTokenLength {
		return false
	}
	if unicode.IsUpper(runes[0]) {
		return true
	}
	return token == strings.ToUpper(token) && token != strings.ToLower(token)
}
