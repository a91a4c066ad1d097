package printing

import (
	"testing"

	"ad_generator_go/services/layout"

	"github.com/stretchr/testify/assert"
)

func TestPaperInches(t *testing.T) {
	tests := []struct {
		format layout.PaperFormat
		width  float64
		height float64
	}{
		{layout.FormatPortrait, 8.268, 11.693},
		{layout.FormatLandscape, 11.693, 8.268},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			width, height := paperInches(tt.format)
			assert.InDelta(t, tt.width, width, 0.001)
			assert.InDelta(t, tt.height, height, 0.001)
		})
	}
}
