// Package persistence serializes partition documents. Output is
// deterministic: map keys sort lexicographically, indentation is fixed, and
// HTML escaping is disabled so non-ASCII brand and model names survive
// byte-identically across write/read/write cycles.
package persistence

import (
	"bytes"
	"encoding/json"

	"github.com/agentstation/specmap/pkg/specs"
)

// Marshal encodes a partition document as indented UTF-8 JSON with a
// trailing newline.
func Marshal(p *specs.Partition) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a partition document.
func Unmarshal(data []byte) (*specs.Partition, error) {
	var p specs.Partition
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Entities == nil {
		p.Entities = make(map[string]*specs.Device)
	}
	return &p, nil
}
