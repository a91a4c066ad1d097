package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontHost lays out the probe text with real glyph advances from the Go font
// family, wrapping like white-space: pre-wrap with break-word. It is the
// server-side stand-in for a browser layout engine.
type FontHost struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

// NewFontHost parses the embedded Go Regular and Go Bold faces
func NewFontHost() (*FontHost, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return &FontHost{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// ScrollHeight implements Host
func (h *FontHost) ScrollHeight(ctx context.Context, spec Spec) (float64, error) {
	if spec.Text == "" {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	face, err := h.face(isBold(spec.FontWeight), spec.FontSizePx)
	if err != nil {
		return 0, err
	}

	w := wrapper{
		face:    face,
		spacing: cssPx(spec.LetterSpacing),
		width:   spec.WidthPx - cssPx(spec.PaddingLeft) - cssPx(spec.PaddingRight),
	}

	lines := 0
	for _, paragraph := range strings.Split(spec.Text, "\n") {
		lines += w.lineCount(paragraph)
	}
	return float64(lines) * spec.LineHeightPx, nil
}

// face must be called with h.mu held. Faces keep per-call buffers and are
// not safe for concurrent use.
func (h *FontHost) face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: size}
	if f, ok := h.faces[key]; ok {
		return f, nil
	}

	src := h.regular
	if bold {
		src = h.bold
	}
	// 72 DPI makes one point one CSS pixel
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	h.faces[key] = f
	return f, nil
}

func isBold(weight string) bool {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(strings.TrimSpace(weight))
	return err == nil && n >= 600
}

type wrapper struct {
	face    font.Face
	spacing float64
	width   float64
}

func (w wrapper) advance(s string) float64 {
	return float64(font.MeasureString(w.face, s))/64 + w.spacing*float64(utf8.RuneCountInString(s))
}

// lineCount wraps one hard line. Whitespace at the end of a line hangs and
// never forces a break; a word wider than the line is broken between
// characters.
func (w wrapper) lineCount(paragraph string) int {
	if paragraph == "" || w.width <= 0 {
		return 1
	}

	lines := 1
	current := 0.0
	for _, word := range splitKeepSpaces(paragraph) {
		trimmed := strings.TrimRight(word, " ")
		need := w.advance(trimmed)

		if current > 0 && current+need > w.width {
			lines++
			current = 0
		}
		if need > w.width {
			for _, r := range trimmed {
				adv := w.advance(string(r))
				if current > 0 && current+adv > w.width {
					lines++
					current = 0
				}
				current += adv
			}
			current += w.advance(word[len(trimmed):])
			continue
		}
		current += w.advance(word)
	}
	return lines
}

// splitKeepSpaces splits after each run of spaces, so "a  b c" yields
// "a  ", "b ", "c".
func splitKeepSpaces(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && (i+1 == len(s) || s[i+1] != ' ') {
			parts = append(parts, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
