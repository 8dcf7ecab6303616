package resolver

import "playlist-enricher/internal/shared"

// MergeTagSets concatenates the genre lists, then the style lists, of each
// contribution in the order the sources were consulted, and removes exact
// duplicates keeping the first occurrence. Earlier sources' terms therefore
// lead the merged lists, which reporting relies on when showing top genres.
// The result's Source is the first contributing source.
func MergeTagSets(sets []shared.TagSet) shared.ResolutionResult {
	var result shared.ResolutionResult
	seenGenres := make(map[string]struct{})
	seenStyles := make(map[string]struct{})

	for _, set := range sets {
		contributed := false
		for _, genre := range set.Genres {
			if genre == "" {
				continue
			}
			contributed = true
			if _, ok := seenGenres[genre]; ok {
				continue
			}
			seenGenres[genre] = struct{}{}
			result.Genres = append(result.Genres, genre)
		}
		for _, style := range set.Styles {
			if style == "" {
				continue
			}
			contributed = true
			if _, ok := seenStyles[style]; ok {
				continue
			}
			seenStyles[style] = struct{}{}
			result.Styles = append(result.Styles, style)
		}
		if contributed && !result.Matched {
			result.Matched = true
			result.Source = set.Source
		}
	}

	return result
}
