package probe

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultCharWidthRatio is the average glyph advance as a fraction of the
// font size for a bold sans-serif face.
const DefaultCharWidthRatio = 0.6

// EstimateHost approximates the wrapped height without a layout engine. It is
// used when no browser is available, e.g. for layout requests whose text was
// already measured by the client.
type EstimateHost struct {
	CharWidthRatio float64
}

// ScrollHeight implements Host
func (h EstimateHost) ScrollHeight(ctx context.Context, spec Spec) (float64, error) {
	if spec.Text == "" {
		return 0, nil
	}

	ratio := h.CharWidthRatio
	if ratio <= 0 {
		ratio = DefaultCharWidthRatio
	}
	charWidth := spec.FontSizePx*ratio + cssPx(spec.LetterSpacing)
	contentWidth := spec.WidthPx - cssPx(spec.PaddingLeft) - cssPx(spec.PaddingRight)

	lines := 0
	for _, paragraph := range strings.Split(spec.Text, "\n") {
		n := utf8.RuneCountInString(paragraph)
		if n == 0 || contentWidth <= 0 || charWidth <= 0 {
			lines++
			continue
		}
		perLine := math.Max(1, math.Floor(contentWidth/charWidth))
		lines += int(math.Ceil(float64(n) / perLine))
	}

	return float64(lines) * spec.LineHeightPx, nil
}

// FixedHost reports a height measured elsewhere
type FixedHost struct {
	Height float64
}

// ScrollHeight implements Host
func (h FixedHost) ScrollHeight(ctx context.Context, spec Spec) (float64, error) {
	return h.Height, nil
}

// cssPx parses values like "12px"; keywords such as "normal" yield 0
func cssPx(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0
	}
	return f
}
