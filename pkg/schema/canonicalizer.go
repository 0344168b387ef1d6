package schema

import (
	"regexp"
	"strings"
)

// Similarity acceptance thresholds. These are deliberate configuration, not
// incidental numbers: alias matches may lean on the token bonus, key-name
// matches may not, and role matches only need a single winner per table.
type Thresholds struct {
	// Alias is the minimum bonus-adjusted score for a fuzzy alias match.
	Alias float64
	// Key is the minimum score for a fuzzy match against canonical key names.
	Key float64
	// Role is the minimum score when electing a brand or model column.
	Role float64
}

// DefaultThresholds returns the standard acceptance thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Alias: 0.85, Key: 0.90, Role: 0.80}
}

// TokenBonus is the similarity-score increment per shared whitespace-delimited
// token between a cleaned column name and a cleaned alias.
const TokenBonus = 0.05

// FallbackPrefix namespaces synthesized keys so they never collide with real
// canonical keys.
const FallbackPrefix = "attr_"

// nonAlnumRE matches runs of characters that are neither lowercase letters
// nor digits. CleanName lowercases first, so uppercase never reaches it.
var nonAlnumRE = regexp.MustCompile(`[^a-z0-9]+`)

// CleanName normalizes a column name to a comparable token stream: lowercase,
// non-alphanumeric runs collapsed to single spaces, trimmed.
func CleanName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnumRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FallbackKey synthesizes the namespaced key used when no confident mapping
// exists, e.g. "Foo Bar Baz" -> "attr_foo_bar_baz".
func FallbackKey(name string) string {
	return FallbackPrefix + strings.ReplaceAll(CleanName(name), " ", "_")
}

// aliasEntry is one precomputed (cleaned alias, canonical key) pair.
type aliasEntry struct {
	cleaned string
	tokens  map[string]struct{}
	key     string
}

// Canonicalizer maps raw column names to canonical attribute keys against an
// immutable vocabulary. Cleaned alias forms are precomputed at construction;
// this must not (and does not) change matching outcomes versus cleaning per
// lookup.
type Canonicalizer struct {
	vocab      *Vocabulary
	thresholds Thresholds
	exact      map[string]string
	flat       []aliasEntry
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithThresholds overrides the similarity acceptance thresholds.
func WithThresholds(t Thresholds) Option {
	return func(c *Canonicalizer) {
		c.thresholds = t
	}
}

// NewCanonicalizer creates a Canonicalizer over the given vocabulary.
// A nil vocabulary uses the built-in default.
func NewCanonicalizer(vocab *Vocabulary, opts ...Option) *Canonicalizer {
	if vocab == nil {
		vocab = Default()
	}

	c := &Canonicalizer{
		vocab:      vocab,
		thresholds: DefaultThresholds(),
		exact:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, entry := range vocab.Entries() {
		for _, alias := range entry.Aliases {
			cleaned := CleanName(alias)
			if cleaned == "" {
				continue
			}
			if _, dup := c.exact[cleaned]; !dup {
				c.exact[cleaned] = entry.Key
			}
			c.flat = append(c.flat, aliasEntry{
				cleaned: cleaned,
				tokens:  tokenSet(cleaned),
				key:     entry.Key,
			})
		}
	}

	return c
}

// Thresholds returns the active acceptance thresholds.
func (c *Canonicalizer) Thresholds() Thresholds {
	return c.thresholds
}

// Resolve maps a raw column name to a canonical key, reporting false when no
// confident mapping exists. Applied in order, first hit wins:
//
//  1. exact match of the cleaned name against the flattened alias table
//  2. fuzzy match over all aliases, score = Ratio + TokenBonus per shared
//     token, accepted at >= Thresholds.Alias
//  3. fuzzy match over the canonical key names, accepted at >= Thresholds.Key
func (c *Canonicalizer) Resolve(column string) (string, bool) {
	cleaned := CleanName(column)
	if cleaned == "" {
		return "", false
	}

	if key, ok := c.exact[cleaned]; ok {
		return key, true
	}

	inTokens := tokenSet(cleaned)

	bestKey, bestScore := "", 0.0
	for _, entry := range c.flat {
		score := Ratio(cleaned, entry.cleaned)
		score += TokenBonus * float64(sharedTokens(inTokens, entry.tokens))
		if score > bestScore {
			bestKey, bestScore = entry.key, score
		}
	}
	if bestKey != "" && bestScore >= c.thresholds.Alias {
		return bestKey, true
	}

	bestKey, bestScore = "", 0.0
	for _, key := range c.vocab.Keys() {
		score := Ratio(cleaned, CleanName(key))
		if score > bestScore {
			bestKey, bestScore = key, score
		}
	}
	if bestKey != "" && bestScore >= c.thresholds.Key {
		return bestKey, true
	}

	return "", false
}

// Canonicalize maps a raw column name to a canonical key, synthesizing the
// namespaced fallback key when no confident mapping exists.
func (c *Canonicalizer) Canonicalize(column string) string {
	if key, ok := c.Resolve(column); ok {
		return key
	}
	return FallbackKey(column)
}

// tokenSet splits a cleaned name into its distinct whitespace-delimited
// tokens.
func tokenSet(cleaned string) map[string]struct{} {
	fields := strings.Fields(cleaned)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// sharedTokens counts tokens present in both sets.
func sharedTokens(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}
