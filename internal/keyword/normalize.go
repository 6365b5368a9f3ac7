package keyword

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinKeywordLength is the minimum rune count for a cacheable keyword
	MinKeywordLength = 2
	// MaxKeywordLength is the maximum rune count for a cacheable keyword
	MaxKeywordLength = 100
)

// umlautReplacer folds the German letters that do not decompose into a
// plain base letter. It runs on lowercased input, before decomposition,
// so that ü becomes "ue" rather than bare "u".
var umlautReplacer = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// stripMarks decomposes the input (NFKD) and removes combining marks,
// so accented letters fold to their base letter (é -> e).
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize reduces a raw dish-name string to its canonical cache key:
// lowercase Unicode letters and single spaces only, with German umlauts
// expanded (ä -> ae, ß -> ss) and accents stripped (café -> cafe).
// Non-Latin letters (including CJK) are kept, so non-Latin dish names
// remain cacheable. Normalize is total and idempotent; it never fails,
// though it may return an empty string.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = umlautReplacer.Replace(s)
	s, _, _ = transform.String(stripMarks, s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// IsValid reports whether a normalized keyword is acceptable as a cache
// key. Keys outside the bounds are treated as unresolvable by callers,
// without touching the store or the image search.
func IsValid(key string) bool {
	n := utf8.RuneCountInString(key)
	return n >= MinKeywordLength && n <= MaxKeywordLength
}
