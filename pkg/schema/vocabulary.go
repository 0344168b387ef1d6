// Package schema maps arbitrary source column names onto a fixed canonical
// attribute vocabulary. Matching runs exact-first, then fuzzy against known
// aliases with a token-overlap bonus, then fuzzy against the canonical key
// names themselves, and finally synthesizes a namespaced fallback key so no
// column is ever dropped.
package schema

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/specmap/pkg/errors"
)

// Entry declares one canonical key and the raw column-name variants known to
// mean it.
type Entry struct {
	Key     string   `yaml:"key"`
	Aliases []string `yaml:"aliases"`
}

// Vocabulary is an immutable, ordered alias table. Order matters: fuzzy
// matching must be deterministic, so iteration always follows declaration
// order and ties resolve to the first-encountered maximum.
type Vocabulary struct {
	entries []Entry
}

// NewVocabulary builds a vocabulary from entries. The entry slice is copied;
// the vocabulary never mutates after construction.
func NewVocabulary(entries []Entry) *Vocabulary {
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return &Vocabulary{entries: copied}
}

// Load reads a vocabulary from a YAML file: a list of {key, aliases} entries,
// preserving file order.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if len(entries) == 0 {
		return nil, errors.NewConfigError("vocabulary", "no entries in "+path, nil)
	}
	return NewVocabulary(entries), nil
}

// Entries returns the ordered entries. Callers must not mutate the result.
func (v *Vocabulary) Entries() []Entry {
	return v.entries
}

// Keys returns the canonical keys in declaration order.
func (v *Vocabulary) Keys() []string {
	keys := make([]string, len(v.entries))
	for i, e := range v.entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of canonical keys.
func (v *Vocabulary) Len() int {
	return len(v.entries)
}

// Default returns the built-in smartphone specification vocabulary.
func Default() *Vocabulary {
	return NewVocabulary(defaultEntries)
}

// defaultEntries is the built-in alias table. Extend freely; new aliases only
// ever widen what canonicalizes, never change existing outcomes.
var defaultEntries = []Entry{
	// identity
	{Key: "brand", Aliases: []string{"brand", "brand_name", "manufacturer", "company"}},
	{Key: "model", Aliases: []string{"model", "model_name", "phone_model", "device", "device_name", "product_name", "name", "title"}},
	{Key: "variant", Aliases: []string{"variant", "version", "trim"}},

	// price/ratings
	{Key: "price", Aliases: []string{"price", "price_inr", "price_rupee", "price_rs", "current_price", "discount_price"}},
	{Key: "mrp", Aliases: []string{"mrp", "list_price", "original_price"}},
	{Key: "rating", Aliases: []string{"rating", "ratings", "avg_rating"}},
	{Key: "review_count", Aliases: []string{"review_count", "num_reviews", "ratings_count", "reviews_count"}},

	// performance
	{Key: "chipset", Aliases: []string{"chipset", "soc", "processor", "processor_model"}},
	{Key: "cpu", Aliases: []string{"cpu", "processor_name", "cpu_model"}},
	{Key: "gpu", Aliases: []string{"gpu", "graphics"}},
	{Key: "ram", Aliases: []string{"ram", "memory_ram", "ram_gb", "ram_size"}},
	{Key: "storage", Aliases: []string{"storage", "rom", "internal_storage", "memory_storage", "storage_gb"}},

	// display
	{Key: "display_size", Aliases: []string{"display", "display_size", "screen_size", "screen"}},
	{Key: "display_type", Aliases: []string{"display_type", "panel_type"}},
	{Key: "refresh_rate", Aliases: []string{"refresh_rate", "screen_refresh_rate"}},
	{Key: "resolution", Aliases: []string{"resolution", "screen_resolution"}},

	// camera
	{Key: "camera_main", Aliases: []string{"rear_camera", "main_camera", "primary_camera", "camera", "rear_cam"}},
	{Key: "camera_front", Aliases: []string{"front_camera", "selfie_camera", "secondary_camera"}},

	// battery/charging
	{Key: "battery_capacity", Aliases: []string{"battery", "battery_capacity", "battery_mah"}},
	{Key: "charging", Aliases: []string{"charging", "fast_charging", "charging_speed", "charger_watt", "charging_watt"}},

	// os/network
	{Key: "os", Aliases: []string{"os", "operating_system", "android_version", "ios_version", "software"}},
	{Key: "network", Aliases: []string{"network", "network_technology", "connectivity"}},
	{Key: "sim", Aliases: []string{"sim", "sim_type", "sim_slots"}},
	{Key: "nfc", Aliases: []string{"nfc"}},
	{Key: "wifi", Aliases: []string{"wifi", "wi fi"}},
	{Key: "bluetooth", Aliases: []string{"bluetooth"}},

	// build
	{Key: "dimensions", Aliases: []string{"dimensions", "size"}},
	{Key: "weight", Aliases: []string{"weight"}},
	{Key: "colors", Aliases: []string{"colors", "colour", "color"}},

	// misc
	{Key: "release_date", Aliases: []string{"release_date", "launch_date", "announced"}},
	{Key: "image_url", Aliases: []string{"image_url", "img_url", "image", "thumbnail"}},
	{Key: "usb", Aliases: []string{"usb", "usb_type", "usb_port"}},
	{Key: "sensors", Aliases: []string{"sensors", "sensor_list"}},
	{Key: "warranty", Aliases: []string{"warranty"}},
	{Key: "seller", Aliases: []string{"seller", "seller_name", "store"}},
	{Key: "url", Aliases: []string{"url", "product_url", "link"}},
}
