package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// normalizeForMatch lowercases s, strips diacritics via canonical
// decomposition, drops everything that is not a letter, digit or space, and
// trims the result. Applying it twice yields the same string.
func normalizeForMatch(s string) string {
	s = strings.ToLower(s)
	s = norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Similarity scores how close two place names are, in [0,1]. Exact match
// after normalization scores 1.0, containment 0.8, anything else a Dice-style
// bigram overlap. Symmetric in its arguments.
func Similarity(a, b string) float64 {
	na, nb := normalizeForMatch(a), normalizeForMatch(b)

	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}

	ga, gb := bigrams(na), bigrams(nb)
	if len(ga) == 0 || len(gb) == 0 {
		return 0
	}

	intersection := 0
	for g := range ga {
		if _, ok := gb[g]; ok {
			intersection++
		}
	}
	union := len(ga) + len(gb) - intersection
	return float64(intersection) / float64(union)
}

// bigrams returns the set of contiguous two-rune shingles of s, or nil when s
// is too short to have any.
func bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	set := make(map[string]struct{}, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}
