package probe

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fontSpec(text string, width float64) Spec {
	return Spec{
		Text:         text,
		WidthPx:      width,
		FontSizePx:   20,
		LineHeightPx: 28,
		FontWeight:   "700",
		WordBreak:    "break-word",
		OverflowWrap: "break-word",
	}
}

func TestFontHostLines(t *testing.T) {
	host, err := NewFontHost()
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name  string
		text  string
		width float64
		lines float64
	}{
		{"empty", "", 500, 0},
		{"short word", "Hi", 500, 1},
		{"hard breaks", "a\nb\nc", 500, 3},
		{"blank line counts", "a\n\nb", 500, 3},
		{"long word breaks", strings.Repeat("W", 40), 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := host.ScrollHeight(ctx, fontSpec(tt.text, tt.width))
			require.NoError(t, err)
			if tt.lines == 0 && tt.text != "" {
				assert.Greater(t, h, 28.0)
				return
			}
			assert.Equal(t, tt.lines*28, h)
		})
	}
}

func TestFontHostWrapsWords(t *testing.T) {
	host, err := NewFontHost()
	require.NoError(t, err)
	ctx := context.Background()

	text := strings.TrimSpace(strings.Repeat("word ", 30))
	wide, err := host.ScrollHeight(ctx, fontSpec(text, 2000))
	require.NoError(t, err)
	narrow, err := host.ScrollHeight(ctx, fontSpec(text, 150))
	require.NoError(t, err)

	assert.Equal(t, 28.0, wide)
	assert.Greater(t, narrow, wide)
}

func TestFontHostMonotonicInText(t *testing.T) {
	host, err := NewFontHost()
	require.NoError(t, err)
	ctx := context.Background()

	prev := 0.0
	for n := 1; n <= 60; n += 5 {
		h, err := host.ScrollHeight(ctx, fontSpec(strings.Repeat("ab ", n), 200))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, h, prev)
		prev = h
	}
}

func TestFontHostBoldIsWider(t *testing.T) {
	host, err := NewFontHost()
	require.NoError(t, err)

	regular, err := host.face(false, 40)
	require.NoError(t, err)
	bold, err := host.face(true, 40)
	require.NoError(t, err)

	text := "Boldness matters"
	assert.Greater(t, wrapper{face: bold}.advance(text), wrapper{face: regular}.advance(text))
}

func TestIsBold(t *testing.T) {
	assert.True(t, isBold("700"))
	assert.True(t, isBold("bold"))
	assert.False(t, isBold("400"))
	assert.False(t, isBold("normal"))
	assert.False(t, isBold(""))
}

func TestSplitKeepSpaces(t *testing.T) {
	assert.Equal(t, []string{"a  ", "b ", "c"}, splitKeepSpaces("a  b c"))
	assert.Equal(t, []string{"  ", "x "}, splitKeepSpaces("  x "))
	assert.Nil(t, splitKeepSpaces(""))
}
