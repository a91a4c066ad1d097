package textclean

import "fmt"

// Arrow is one of the symbols offered by the editor's arrow toolbar
type Arrow string

// Toolbar arrows
const (
	ArrowUp    Arrow = "up"
	ArrowDown  Arrow = "down"
	ArrowLeft  Arrow = "left"
	ArrowRight Arrow = "right"
)

var arrowSymbols = map[Arrow]string{
	ArrowUp:    "↑",
	ArrowDown:  "↓",
	ArrowLeft:  "←",
	ArrowRight: "→",
}

// Symbol returns the character inserted for the arrow
func (a Arrow) Symbol() string {
	return arrowSymbols[a]
}

// ParseArrow accepts either the arrow name or its symbol
func ParseArrow(s string) (Arrow, error) {
	if _, ok := arrowSymbols[Arrow(s)]; ok {
		return Arrow(s), nil
	}
	for a, sym := range arrowSymbols {
		if sym == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown arrow %q", s)
}

// InsertArrow appends the arrow symbol to the editor content
func InsertArrow(content string, a Arrow) string {
	return Sanitize(content + a.Symbol())
}
