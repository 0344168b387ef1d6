package specs

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// brandSanitizeRE matches runs of characters unsafe in filenames.
var brandSanitizeRE = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// NormalizeIdentity folds an identity component (brand or model) for
// ID derivation: trim then lowercase.
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DeviceID derives the stable content-based identifier for a brand+model
// pair: a version-5 UUID over the URL namespace of
// "normalize(brand)|normalize(model)". The same pair always yields the
// same ID regardless of source file, run, or process.
func DeviceID(brand, model string) string {
	name := NormalizeIdentity(brand) + "|" + NormalizeIdentity(model)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// SanitizeBrand maps a brand name to a filesystem-safe partition key:
// trim, then replace every run of unsafe characters with a single
// underscore. Applied identically on read and write so a brand always
// resolves to the same partition document.
func SanitizeBrand(brand string) string {
	return brandSanitizeRE.ReplaceAllString(strings.TrimSpace(brand), "_")
}
