package schema

// Priority candidate lists for electing identity columns from a table header.
// Exact cleaned-name matches are tried in candidate order before any fuzzy
// scoring, so "brand" beats "brand_name" when both are present.
var (
	// BrandCandidates are column names that usually carry the brand.
	BrandCandidates = []string{"brand", "brand_name", "manufacturer", "company"}

	// ModelCandidates are column names that usually carry the model.
	// Bare "name"/"title" columns are deliberately absent: they only count
	// as a model column through the generic fallback, which callers treat
	// as a degraded mode.
	ModelCandidates = []string{"model", "model_name", "phone_model", "device", "device_name"}

	// GenericModelCandidates are the last-resort names tried when no
	// model-like column resolves; a bare "name" column is still usually
	// the model.
	GenericModelCandidates = []string{"name", "title", "product_name"}
)

// ResolveRole elects the table column best matching one of the candidate
// names. Exact cleaned-equality wins first, in candidate priority order;
// otherwise every column is scored by its best Ratio against any candidate
// and the highest-scoring column is accepted at >= Thresholds.Role. Only one
// winner is needed per role, hence the looser threshold than Resolve uses.
func (c *Canonicalizer) ResolveRole(columns []string, candidates []string) (string, bool) {
	for _, cand := range candidates {
		cleaned := CleanName(cand)
		for _, col := range columns {
			if CleanName(col) == cleaned {
				return col, true
			}
		}
	}

	bestCol, bestScore := "", 0.0
	for _, col := range columns {
		colCleaned := CleanName(col)
		score := 0.0
		for _, cand := range candidates {
			if r := Ratio(colCleaned, CleanName(cand)); r > score {
				score = r
			}
		}
		if score > bestScore {
			bestCol, bestScore = col, score
		}
	}
	if bestCol != "" && bestScore >= c.thresholds.Role {
		return bestCol, true
	}
	return "", false
}

// GenericModelColumn finds a column whose cleaned name is literally one of
// the generic fallback candidates. Used after both roles fail to resolve.
func (c *Canonicalizer) GenericModelColumn(columns []string) (string, bool) {
	allowed := make(map[string]struct{}, len(GenericModelCandidates))
	for _, cand := range GenericModelCandidates {
		allowed[CleanName(cand)] = struct{}{}
	}
	for _, col := range columns {
		if _, ok := allowed[CleanName(col)]; ok {
			return col, true
		}
	}
	return "", false
}
