// Package normalize coerces loosely-formatted scalar cell values into typed
// values and decides which values are meaningful enough to merge.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/specmap/pkg/specs"
)

// stoplist holds case-insensitive string forms that carry no information.
var stoplist = map[string]struct{}{
	"na":   {},
	"n/a":  {},
	"none": {},
	"null": {},
	"nan":  {},
}

// numericPrefixRE matches a leading integer with an optional decimal part,
// e.g. the "5000" of "5000 mAh" or the "6.7" of "6.7 inch".
var numericPrefixRE = regexp.MustCompile(`^\d+(?:\.\d+)?`)

// Meaningful reports whether a raw cell value carries information: non-empty
// after trimming and not a member of the stoplist.
func Meaningful(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	_, stop := stoplist[strings.ToLower(s)]
	return !stop
}

// MeaningfulValue extends Meaningful to typed values: NaN and infinite floats
// are not meaningful, empty lists are not meaningful, integers always are.
func MeaningfulValue(v specs.Value) bool {
	switch v.Kind() {
	case specs.KindString:
		return Meaningful(v.StringVal())
	case specs.KindFloat:
		f := v.FloatVal()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case specs.KindList:
		return len(v.ListVal()) > 0
	default:
		return true
	}
}

// Scalar normalizes a raw cell value. If the trimmed string (thousands
// separators stripped) starts with a numeric prefix, the prefix is extracted
// and cast: float when it contains a decimal point, integer otherwise.
// Anything else passes through unchanged as a string.
func Scalar(raw string) specs.Value {
	st := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	prefix := numericPrefixRE.FindString(st)
	if prefix == "" {
		return specs.String(raw)
	}

	if strings.Contains(prefix, ".") {
		f, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return specs.String(raw)
		}
		return specs.Float(f)
	}

	i, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		// Numeric but too large for int64.
		f, ferr := strconv.ParseFloat(prefix, 64)
		if ferr != nil {
			return specs.String(raw)
		}
		return specs.Float(f)
	}
	return specs.Int(i)
}
