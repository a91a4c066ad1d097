package editor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatDebugSnapshot renders the pass for the debug panel. The layout is
// meant for people, not parsers.
func FormatDebugSnapshot(s Settings, p *Pass) string {
	fits := "YES"
	if !p.TextFits {
		fits = "NO (CLAMPED)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TEXT\n")
	fmt.Fprintf(&b, "Content Length: %d chars\n", p.ContentLength)
	fmt.Fprintf(&b, "Text Height: %.1fpx\n", p.TextHeight)
	fmt.Fprintf(&b, "Base Font Size: %dpx\n", s.FontSize)
	fmt.Fprintf(&b, "Scaled Font Size: %.1fpx\n", p.Typography.FontSizePx)
	fmt.Fprintf(&b, "Line Height: %.1fpx\n", p.Typography.LineHeightPx)
	fmt.Fprintf(&b, "\nPOSITION\n")
	fmt.Fprintf(&b, "Vertical Position: %d%%\n", s.VerticalPosition)
	fmt.Fprintf(&b, "Padding Top: %.1fpx\n", p.Style.PaddingTopPx)
	fmt.Fprintf(&b, "Padding Bottom: %.1fpx\n", p.Style.PaddingBottomPx)
	fmt.Fprintf(&b, "Usable Height: %.1fpx\n", p.Placement.UsableHeight)
	fmt.Fprintf(&b, "Text Center Y: %.1fpx\n", p.Placement.TextCenterY)
	fmt.Fprintf(&b, "Text Fits: %s\n", fits)
	fmt.Fprintf(&b, "\nPAPER\n")
	fmt.Fprintf(&b, "Size: %.0f×%.0f px\n", p.Paper.Width, p.Paper.Height)
	fmt.Fprintf(&b, "Scale: %.3f\n", p.Paper.Scale)
	fmt.Fprintf(&b, "\nDIRECTION\n")
	fmt.Fprintf(&b, "Text Direction: ltr\n")
	fmt.Fprintf(&b, "Unicode Bidi: isolate-override\n")
	fmt.Fprintf(&b, "Computed Direction: %s", p.Direction)
	return b.String()
}

func contentLength(s string) int {
	return utf8.RuneCountInString(s)
}
