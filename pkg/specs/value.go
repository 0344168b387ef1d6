// Package specs defines the canonical device specification data model:
// typed attribute values, merged device entities, and per-brand partitions.
// It is the vocabulary shared by the merge engine, the partitioned store,
// and the batch ingestor.
package specs

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of an attribute Value.
type Kind int

const (
	// KindString is a plain string value.
	KindString Kind = iota
	// KindInt is an integer value coerced from a numeric prefix.
	KindInt
	// KindFloat is a floating point value coerced from a numeric prefix.
	KindFloat
	// KindList is an ordered sequence of scalar values, used only for
	// multi-valued fields.
	KindList
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a tagged attribute value: string, integer, float, or an ordered
// list of these. The zero Value is the empty string.
type Value struct {
	kind Kind
	str  string
	i    int64
	f    float64
	list []Value
}

// String creates a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int creates an integer Value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float creates a floating point Value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// List creates a list Value from the given items.
func List(items ...Value) Value {
	return Value{kind: KindList, list: items}
}

// Kind returns the runtime type of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// StringVal returns the string payload. Valid only for KindString.
func (v Value) StringVal() string {
	return v.str
}

// IntVal returns the integer payload. Valid only for KindInt.
func (v Value) IntVal() int64 {
	return v.i
}

// FloatVal returns the float payload. Valid only for KindFloat.
func (v Value) FloatVal() float64 {
	return v.f
}

// ListVal returns the list payload. Valid only for KindList.
func (v Value) ListVal() []Value {
	return v.list
}

// Text renders the scalar payload as a string, the form used for
// fold-insensitive comparisons. Lists render their elements joined
// by ", " but are never compared as a whole.
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Text()
		}
		return strings.Join(parts, ", ")
	default:
		return v.str
	}
}

// EqualFold reports whether two scalar values are equal under
// case-insensitive, whitespace-trim-insensitive comparison of their
// text forms. This is the dedupe rule for multi-valued fields.
func (v Value) EqualFold(o Value) bool {
	return strings.EqualFold(strings.TrimSpace(v.Text()), strings.TrimSpace(o.Text()))
}

// Append returns a list Value with item appended. A scalar receiver is
// first wrapped into a single-element list.
func (v Value) Append(item Value) Value {
	if v.kind != KindList {
		return Value{kind: KindList, list: []Value{v, item}}
	}
	out := make([]Value, len(v.list), len(v.list)+1)
	copy(out, v.list)
	out = append(out, item)
	return Value{kind: KindList, list: out}
}

// Contains reports whether a list value already holds an element equal to
// item under EqualFold. A scalar receiver compares itself directly.
func (v Value) Contains(item Value) bool {
	if v.kind != KindList {
		return v.EqualFold(item)
	}
	for _, existing := range v.list {
		if existing.EqualFold(item) {
			return true
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler. Numbers marshal as JSON numbers,
// lists as JSON arrays, everything else as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			// JSON has no NaN/Inf; these never survive normalization anyway.
			return json.Marshal(v.Text())
		}
		return []byte(strconv.FormatFloat(v.f, 'g', -1, 64)), nil
	case KindList:
		// Marshal elements individually so strings inside lists get the
		// same no-escape treatment as top-level strings.
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return marshalStringNoEscape(v.str)
	}
}

// UnmarshalJSON implements json.Unmarshaler, restoring the tagged kind from
// the JSON token type. Integer/float discrimination follows the token text:
// a decimal point or exponent makes a float.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*v = Value{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '[':
		var items []Value
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*v = Value{kind: KindList, list: items}
		return nil
	case 'n': // null
		*v = Value{}
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = String(strconv.FormatBool(b))
		return nil
	default:
		text := string(trimmed)
		if strings.ContainsAny(text, ".eE") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return err
			}
			*v = Float(f)
			return nil
		}
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// Out-of-range integers fall back to float.
			f, ferr := strconv.ParseFloat(text, 64)
			if ferr != nil {
				return err
			}
			*v = Float(f)
			return nil
		}
		*v = Int(i)
		return nil
	}
}

// marshalStringNoEscape marshals a string without HTML escaping so that
// non-ASCII and characters like '&' survive into the partition documents.
func marshalStringNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
