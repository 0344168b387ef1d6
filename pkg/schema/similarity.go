package schema

// Ratio computes a similarity measure in [0, 1] between two strings based on
// the total size of their longest matching blocks: 2*M / (len(a)+len(b)),
// where M is the number of characters covered by recursively locating the
// longest common contiguous substring and repeating on the pieces to either
// side. Equal strings score 1.0, fully disjoint strings 0.0.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2 * float64(matchingTotal(ra, rb)) / float64(total)
}

// matchingTotal sums the sizes of all matching blocks between a and b.
func matchingTotal(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, c := range b {
		b2j[c] = append(b2j[c], j)
	}

	type span struct {
		alo, ahi, blo, bhi int
	}

	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		matched += k
		queue = append(queue,
			span{s.alo, i, s.blo, j},
			span{i + k, s.ahi, j + k, s.bhi},
		)
	}
	return matched
}

// longestMatch finds the longest contiguous matching block of a[alo:ahi] and
// b[blo:bhi]. Ties resolve to the earliest block in a, then in b, keeping
// the result deterministic.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
