package resolver

import (
	"strings"
	"unicode"
)

// NormalizeName is the cache and deduplication key for a user-supplied game
// name: lowercased with whitespace collapsed.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Variations generates the search strings tried against each provider, in
// order: the name verbatim, with punctuation stripped, with separators
// normalized to spaces, and title-cased. Duplicates collapse while keeping
// first-occurrence order.
func Variations(name string) []string {
	verbatim := strings.Join(strings.Fields(name), " ")
	stripped := stripPunctuation(verbatim)
	separated := normalizeSeparators(verbatim)
	titled := titleCase(strings.ToLower(separated))

	seen := make(map[string]bool)
	var out []string
	for _, v := range []string{verbatim, stripped, separated, titled} {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func stripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func normalizeSeparators(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ':', '/', '.':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
