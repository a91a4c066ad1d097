package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Empty", input: "", expected: ""},
		{name: "Plain text untouched", input: "Все по 100 ₽", expected: "Все по 100 ₽"},
		{name: "LRM removed", input: "a\u200eb", expected: "ab"},
		{name: "RLM removed", input: "a\u200fb", expected: "ab"},
		{name: "Embeddings and overrides removed", input: "\u202aa\u202bb\u202cc\u202dd\u202ee", expected: "abcde"},
		{name: "Isolates removed", input: "\u2066x\u2067y\u2068z\u2069", expected: "xyz"},
		{name: "Newlines kept", input: "Line 1\nLine 2", expected: "Line 1\nLine 2"},
		{name: "NFC composition", input: "e\u0301", expected: "\u00e9"},
		{name: "Composition across stripped control", input: "e\u200e\u0301", expected: "\u00e9"},
		{name: "HTML is left as text", input: "<b>hi</b>", expected: "<b>hi</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a\u200eb",
		"e\u0301\u202ee\u0301",
		"\u2066שלום\u2069 world",
		"Ангстрем Å",
		"↑↓←→",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once))
		for _, r := range once {
			assert.False(t, IsBidiControl(r), "control %U survived", r)
		}
	}
}

func TestSanitizeAny(t *testing.T) {
	assert.Equal(t, "", SanitizeAny(nil))
	assert.Equal(t, "", SanitizeAny(42))
	assert.Equal(t, "ab", SanitizeAny("a\u200fb"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \n\t "))
	assert.False(t, IsBlank(" x "))
}

func TestInsertArrow(t *testing.T) {
	assert.Equal(t, "Sale ↑", InsertArrow("Sale ", ArrowUp))
	assert.Equal(t, "→", InsertArrow("", ArrowRight))

	a, err := ParseArrow("←")
	assert.NoError(t, err)
	assert.Equal(t, ArrowLeft, a)

	a, err = ParseArrow("down")
	assert.NoError(t, err)
	assert.Equal(t, "↓", a.Symbol())

	_, err = ParseArrow("sideways")
	assert.Error(t, err)
}
