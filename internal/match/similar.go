package match

// DefaultThreshold is the similarity ratio a catalog candidate must reach
// to count as a verified match. 0.8 trades some missed matches for very few
// false positives, the safer failure mode for enrichment.
const DefaultThreshold = 0.8

// IsSimilar reports whether two strings are equivalent after normalization:
// the similarity ratio of their normalized forms must reach the threshold.
// Empty input never matches anything, regardless of threshold.
func IsSimilar(a, b string, threshold float64) bool {
	if a == "" || b == "" {
		return false
	}
	return Ratio(Normalize(a), Normalize(b)) >= threshold
}

// Ratio computes a similarity ratio in [0,1]: twice the number of matching
// characters over the combined length, where matches are counted by
// recursively taking the longest common block and matching the pieces on
// either side of it. Two empty strings are identical (ratio 1).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchedRunes(ra, rb)) / float64(total)
}

func matchedRunes(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	matched := size
	matched += matchedRunes(a[:ai], b[:bi])
	matched += matchedRunes(a[ai+size:], b[bi+size:])
	return matched
}

// longestCommonBlock locates the longest common contiguous run of runes.
// Ties go to the earliest position in a, then in b.
func longestCommonBlock(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
		for j := range cur {
			cur[j] = 0
		}
	}
	return ai, bi, size
}
