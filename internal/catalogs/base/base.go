// Package base holds logic shared by every catalog backend: partition
// keying and the fold of one row's attributes into a partition.
package base

import (
	"strings"

	"github.com/agentstation/specmap/pkg/merge"
	"github.com/agentstation/specmap/pkg/specs"
)

// PartitionKey derives the storage key for a brand: the filesystem-safe
// sanitized form, case-folded so that case variants of a brand land in the
// same partition.
func PartitionKey(brand string) string {
	return strings.ToLower(specs.SanitizeBrand(brand))
}

// Apply folds attrs into the partition's entity for brand+model, creating
// the entity on first encounter. Returns the post-merge device.
func Apply(p *specs.Partition, brand, model string, attrs specs.Attributes) *specs.Device {
	d := p.Ensure(brand, model)
	merge.Attributes(d.Attributes, attrs)
	return d
}
