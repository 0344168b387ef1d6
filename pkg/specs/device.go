package specs

// Attributes maps canonical attribute keys to their merged values.
// Keys are unique; multi-valued fields hold KindList values.
type Attributes map[string]Value

// Copy returns a shallow copy of the attribute map. List values share
// backing arrays; callers mutate only through the merge engine, which
// copies on append.
func (a Attributes) Copy() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Device is a merged brand+model product record with accumulated attributes.
// A device is born the first time a row resolves to its ID and is only ever
// merged into thereafter, never deleted or replaced wholesale.
type Device struct {
	ID         string     `json:"id"`
	Brand      string     `json:"brand"`
	Model      string     `json:"model"`
	Attributes Attributes `json:"attributes"`
}

// NewDevice creates a device with its deterministic content-based ID.
func NewDevice(brand, model string) *Device {
	return &Device{
		ID:         DeviceID(brand, model),
		Brand:      brand,
		Model:      model,
		Attributes: make(Attributes),
	}
}

// Partition is the persisted collection of devices for one brand.
// Partitions accumulate indefinitely across runs.
type Partition struct {
	Brand    string             `json:"brand"`
	Entities map[string]*Device `json:"entities"`
}

// NewPartition creates an empty partition for a brand.
func NewPartition(brand string) *Partition {
	return &Partition{
		Brand:    brand,
		Entities: make(map[string]*Device),
	}
}

// Ensure returns the device for the given brand+model, creating it on first
// encounter of its ID.
func (p *Partition) Ensure(brand, model string) *Device {
	id := DeviceID(brand, model)
	if d, ok := p.Entities[id]; ok {
		return d
	}
	d := NewDevice(brand, model)
	p.Entities[id] = d
	return d
}

// Len returns the number of devices in the partition.
func (p *Partition) Len() int {
	return len(p.Entities)
}
