// Package probe measures the rendered height of a text block with a hidden,
// off-screen element that mirrors the editor's typography.
package probe

import (
	"context"
	"fmt"
	"math"

	"ad_generator_go/services/surface"
)

// Spec describes the probe element created for one measurement
type Spec struct {
	Text          string  `json:"text"`
	WidthPx       float64 `json:"widthPx"`
	FontSizePx    float64 `json:"fontSizePx"`
	LineHeightPx  float64 `json:"lineHeightPx"`
	FontFamily    string  `json:"fontFamily"`
	FontWeight    string  `json:"fontWeight"`
	LetterSpacing string  `json:"letterSpacing"`
	WordBreak     string  `json:"wordBreak"`
	OverflowWrap  string  `json:"overflowWrap"`
	PaddingLeft   string  `json:"paddingLeft"`
	PaddingRight  string  `json:"paddingRight"`
}

// Host creates the probe element, reads its scroll height and removes it
// within a single call.
type Host interface {
	ScrollHeight(ctx context.Context, spec Spec) (float64, error)
}

// NewSpec copies the typography of the reference editor into a probe spec
func NewSpec(text string, cs surface.ComputedStyle, widthPx, fontSizePx, lineHeightPx float64) Spec {
	wordBreak := cs.WordBreak
	if wordBreak == "" {
		wordBreak = "break-word"
	}
	overflowWrap := cs.OverflowWrap
	if overflowWrap == "" {
		overflowWrap = "break-word"
	}
	return Spec{
		Text:          text,
		WidthPx:       widthPx,
		FontSizePx:    fontSizePx,
		LineHeightPx:  lineHeightPx,
		FontFamily:    cs.FontFamily,
		FontWeight:    cs.FontWeight,
		LetterSpacing: cs.LetterSpacing,
		WordBreak:     wordBreak,
		OverflowWrap:  overflowWrap,
		PaddingLeft:   cs.PaddingLeft,
		PaddingRight:  cs.PaddingRight,
	}
}

// MeasureTextHeight returns the height text would occupy in the reference
// editor at the candidate font size and line height. The result is never
// less than one line.
func MeasureTextHeight(ctx context.Context, host Host, text string, reference surface.Editor, fontSizePx, lineHeightPx float64) (float64, error) {
	cs, err := reference.ComputedStyle(ctx)
	if err != nil {
		return 0, err
	}
	width, err := reference.ClientWidth(ctx)
	if err != nil {
		return 0, err
	}

	measured, err := host.ScrollHeight(ctx, NewSpec(text, cs, width, fontSizePx, lineHeightPx))
	if err != nil {
		return 0, fmt.Errorf("failed to measure text height: %w", err)
	}

	return math.Max(math.Ceil(measured), lineHeightPx), nil
}
