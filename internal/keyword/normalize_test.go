package keyword

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_FoldsAccentsAndUmlauts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"german umlaut", "Müller", "mueller"},
		{"french accent", "café", "cafe"},
		{"sharp s", "Weißwurst", "weisswurst"},
		{"uppercase umlaut", "Äpfel", "aepfel"},
		{"o umlaut", "Königsberger Klopse", "koenigsberger klopse"},
		{"mixed accents", "Crème Brûlée", "creme brulee"},
		{"spanish tilde", "Jalapeño", "jalapeno"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_DropsNonLetters(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"price fragment", "Pizza Margherita $12.99", "pizza margherita"},
		{"punctuation", "Fish & Chips!", "fish chips"},
		{"digits", "7-Layer Dip", "layer dip"},
		{"quotes and commas", `"Spaghetti", Carbonara`, "spaghetti carbonara"},
		{"only symbols", "$$$ 123 !!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_KeepsNonLatinLetters(t *testing.T) {
	// CJK and other non-Latin scripts stay cacheable
	assert.Equal(t, "寿司", Normalize("寿司"))
	assert.Equal(t, "北京烤鴨", Normalize(" 北京烤鴨 "))
	assert.Equal(t, "μουσακας", Normalize("Μουσακάς"))
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"leading and trailing", "  chicken curry  ", "chicken curry"},
		{"internal runs", "chicken    tikka\t\tmasala", "chicken tikka masala"},
		{"newlines", "beef\nnoodle\nsoup", "beef noodle soup"},
		{"only whitespace", " \t\n ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_OutputCharsetInvariant(t *testing.T) {
	// For any input, the output contains only lowercase letters and
	// single spaces, with no leading or trailing space
	inputs := []string{
		"Grilled Chicken Caesar Salad",
		"  POMMES   FRITES!!  ",
		"Crème Brûlée à la Maison ($8.50)",
		"Über-Burger #1 & Fries",
		"寿司 セット B",
		"\tkäse\nspätzle\t",
		"!@#$%^&*()",
	}

	for _, input := range inputs {
		got := Normalize(input)

		assert.Equal(t, strings.TrimSpace(got), got, "no leading/trailing space for %q", input)
		assert.NotContains(t, got, "  ", "no doubled spaces for %q", input)
		for _, r := range got {
			if r == ' ' {
				continue
			}
			assert.True(t, unicode.IsLetter(r), "non-letter rune %q in output for %q", r, input)
			assert.False(t, unicode.IsUpper(r), "uppercase rune %q in output for %q", r, input)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Müller",
		"Crème Brûlée",
		"  chicken   curry  ",
		"寿司",
		"Fish & Chips ($9.99)",
		"",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", input)
	}
}

func TestIsValid_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{"empty", "", false},
		{"single rune", "a", false},
		{"two runes", "ab", true},
		{"two CJK runes", "寿司", true},
		{"exactly 100 runes", strings.Repeat("a", 100), true},
		{"101 runes", strings.Repeat("a", 101), false},
		{"typical keyword", "chicken caesar salad", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValid(tt.key))
		})
	}
}
