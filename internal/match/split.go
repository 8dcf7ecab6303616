package match

import "strings"

// Join-words that separate co-credited artists inside one segment. "feat."
// is handled before "ft." so the shorter form never matches inside it.
var artistSeparators = []string{"&", "feat.", "ft.", "featuring"}

// Leading words too generic to be useful as a standalone search term.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "nor": true, "for": true, "yet": true,
}

// SplitArtists parses a raw artist credit into individual artist names.
// Commas split only at parenthesis depth zero, so a credit like
// "ACE (TOMOri Kudo, CHiCO)" stays one name. Each top-level segment is then
// split on the join-words. Empty segments are discarded and duplicates
// removed, preserving first occurrence.
func SplitArtists(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var names []string
	for _, segment := range splitTopLevel(raw) {
		names = append(names, splitSeparators(segment)...)
	}
	return dedupe(names)
}

// ExtractArtistParts produces the prioritized list of search candidates for
// one artist credit: the full credit itself, each individual name, the
// credit with parenthetical content removed plus each name inside the
// parentheses, and the first word of a multi-word credit unless it is a
// stop-word. Order defines fallback priority; duplicates are removed
// preserving first occurrence.
func ExtractArtistParts(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	parts := []string{name}
	parts = append(parts, SplitArtists(name)...)

	// Parenthetical collaborators: "ACE (TOMOri Kudo, CHiCO)" contributes
	// "ACE" plus each name listed inside the parentheses.
	if strings.Contains(name, "(") {
		var inner []string
		stripped := name
		for {
			open := strings.Index(stripped, "(")
			if open < 0 {
				break
			}
			rest := stripped[open+1:]
			end := strings.Index(rest, ")")
			if end < 0 {
				break
			}
			for _, item := range strings.Split(rest[:end], ",") {
				if item = strings.TrimSpace(item); item != "" {
					inner = append(inner, item)
				}
			}
			stripped = strings.Join(strings.Fields(stripped[:open]+" "+rest[end+1:]), " ")
		}
		if stripped != "" {
			parts = append(parts, stripped)
		}
		parts = append(parts, inner...)
	}

	if words := strings.Fields(name); len(words) > 1 && !stopWords[strings.ToLower(words[0])] {
		parts = append(parts, words[0])
	}

	return dedupe(parts)
}

// splitTopLevel splits on commas at parenthesis depth zero. An unmatched
// closing parenthesis is treated as depth already zero rather than going
// negative.
func splitTopLevel(raw string) []string {
	var segments []string
	var current strings.Builder
	depth := 0
	for _, r := range raw {
		switch r {
		case '(':
			depth++
			current.WriteRune(r)
		case ')':
			if depth > 0 {
				depth--
			}
			current.WriteRune(r)
		case ',':
			if depth == 0 {
				segments = append(segments, current.String())
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	segments = append(segments, current.String())
	return segments
}

// splitSeparators splits one segment on each join-word in turn,
// case-insensitively, only where the separator stands alone between
// whitespace. Results are trimmed; empties are dropped.
func splitSeparators(segment string) []string {
	parts := []string{segment}
	for _, sep := range artistSeparators {
		var next []string
		for _, part := range parts {
			next = append(next, splitOnWord(part, sep)...)
		}
		parts = next
	}
	var out []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitOnWord splits s on every whitespace-surrounded, case-insensitive
// occurrence of sep. String boundaries count as whitespace. Case folding is
// ASCII-only so byte offsets into the folded string stay valid in s; full
// Unicode lowercasing can change a rune's UTF-8 length (e.g. İ), and the
// separators are ASCII anyway.
func splitOnWord(s, sep string) []string {
	lower := lowerASCII(s)
	sep = lowerASCII(sep)
	var parts []string
	start := 0
	for i := 0; i+len(sep) <= len(lower); {
		if lower[i:i+len(sep)] != sep {
			i++
			continue
		}
		okBefore := i == 0 || isSpaceByte(lower[i-1])
		okAfter := i+len(sep) == len(lower) || isSpaceByte(lower[i+len(sep)])
		if okBefore && okAfter {
			parts = append(parts, s[start:i])
			i += len(sep)
			start = i
		} else {
			i++
		}
	}
	return append(parts, s[start:])
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// lowerASCII lowercases ASCII letters only, leaving every other byte as is.
func lowerASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// dedupe removes empty strings and duplicates, preserving first occurrence.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
