package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaperFormat(t *testing.T) {
	f, err := ParsePaperFormat("a4-landscape")
	assert.NoError(t, err)
	assert.Equal(t, FormatLandscape, f)

	_, err = ParsePaperFormat("letter")
	assert.Error(t, err)
}

func TestPaperFormatDimensions(t *testing.T) {
	tests := []struct {
		format   PaperFormat
		width    float64
		height   float64
		pageRule string
	}{
		{FormatPortrait, 210, 297, "A4 portrait"},
		{FormatLandscape, 297, 210, "A4 landscape"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			d := tt.format.Dimensions()
			assert.Equal(t, tt.width, d.Width)
			assert.Equal(t, tt.height, d.Height)
			assert.InDelta(t, tt.width/tt.height, d.AspectRatio, 1e-12)
			assert.Equal(t, tt.pageRule, tt.format.PageRule())
		})
	}
}

func TestFitPaperToContainer(t *testing.T) {
	t.Run("Portrait in 800x1000", func(t *testing.T) {
		paper := FitPaperToContainer(ContainerDimensions{Width: 800, Height: 1000}, FormatPortrait, DefaultMaxScale)

		assert.InDelta(t, 3.199, paper.Scale, 0.001)
		assert.InDelta(t, 671.7, paper.Width, 0.1)
		assert.InDelta(t, 950.0, paper.Height, 0.01)
	})

	t.Run("Aspect ratio and scale bound hold", func(t *testing.T) {
		containers := []ContainerDimensions{
			{Width: 1, Height: 1},
			{Width: 320, Height: 568},
			{Width: 1920, Height: 1080},
			{Width: 5000, Height: 300},
			{Width: 123.4, Height: 987.6},
		}
		for _, c := range containers {
			for _, f := range []PaperFormat{FormatPortrait, FormatLandscape} {
				for _, maxScale := range []float64{0.5, 0.95, 1} {
					paper := FitPaperToContainer(c, f, maxScale)
					assert.Greater(t, paper.Scale, 0.0)
					assert.InDelta(t, f.Dimensions().AspectRatio, paper.Width/paper.Height, 1e-9)
					assert.LessOrEqual(t, paper.Width, c.Width*maxScale+1e-9)
					assert.LessOrEqual(t, paper.Height, c.Height*maxScale+1e-9)
				}
			}
		}
	})
}

func TestScaleFont(t *testing.T) {
	t.Run("Linear then clamped", func(t *testing.T) {
		typo := ScaleFontDefault(50, 2)
		assert.Equal(t, 100.0, typo.FontSizePx)
		assert.Equal(t, 140.0, typo.LineHeightPx)

		typo = ScaleFontDefault(100, 3)
		assert.Equal(t, 120.0, typo.FontSizePx)
		assert.Equal(t, 168.0, typo.LineHeightPx)

		typo = ScaleFontDefault(10, 0.1)
		assert.Equal(t, 8.0, typo.FontSizePx)
		assert.Equal(t, 11.0, typo.LineHeightPx)
	})

	t.Run("Line height rounds", func(t *testing.T) {
		typo := ScaleFontDefault(25, 1)
		assert.Equal(t, 35.0, typo.LineHeightPx)
		typo = ScaleFontDefault(11, 1)
		assert.Equal(t, 15.0, typo.LineHeightPx) // 15.4
	})

	t.Run("Monotonic and bounded", func(t *testing.T) {
		for _, scale := range []float64{0.2, 1, 3.199, 10} {
			prev := 0.0
			for base := 10.0; base <= 100; base++ {
				typo := ScaleFontDefault(base, scale)
				assert.GreaterOrEqual(t, typo.FontSizePx, prev)
				assert.GreaterOrEqual(t, typo.FontSizePx, MinFontPx)
				assert.LessOrEqual(t, typo.FontSizePx, MaxFontPx)
				assert.Equal(t, math.Floor(typo.FontSizePx*1.4+0.5), typo.LineHeightPx)
				prev = typo.FontSizePx
			}
		}
	})
}

func TestPlaceTextVertically(t *testing.T) {
	const h = 950.0
	base := h * DefaultPaddingRatio

	t.Run("Top anchor", func(t *testing.T) {
		vp := PlaceTextVertically(h, 0, 200, DefaultPaddingRatio)
		assert.Equal(t, base, vp.PaddingTop)
		assert.InDelta(t, h-2*base, vp.UsableHeight, 1e-9)
	})

	t.Run("Bottom anchor", func(t *testing.T) {
		vp := PlaceTextVertically(h, 100, 200, DefaultPaddingRatio)
		assert.InDelta(t, base, vp.PaddingBottom, 1e-9)
	})

	t.Run("Centered", func(t *testing.T) {
		vp := PlaceTextVertically(h, 50, 200, DefaultPaddingRatio)
		assert.InDelta(t, vp.PaddingTop, vp.PaddingBottom, 1e-9)
		assert.InDelta(t, h/2, vp.TextCenterY, 1e-9)
	})

	t.Run("Percent is clamped", func(t *testing.T) {
		below := PlaceTextVertically(h, -40, 200, DefaultPaddingRatio)
		above := PlaceTextVertically(h, 250, 200, DefaultPaddingRatio)
		assert.Equal(t, PlaceTextVertically(h, 0, 200, DefaultPaddingRatio), below)
		assert.Equal(t, PlaceTextVertically(h, 100, 200, DefaultPaddingRatio), above)
	})

	t.Run("Oversized text is clamped", func(t *testing.T) {
		vp := PlaceTextVertically(h, 70, 5000, DefaultPaddingRatio)
		assert.InDelta(t, base, vp.PaddingTop, 1e-9)
		assert.InDelta(t, base, vp.PaddingBottom, 1e-9)
		assert.False(t, vp.TextFits(5000))
	})

	t.Run("Paddings and text sum to container", func(t *testing.T) {
		for _, pos := range []float64{0, 13, 50, 87, 100} {
			for _, text := range []float64{0, 40, 400, 855, 2000} {
				vp := PlaceTextVertically(h, pos, text, DefaultPaddingRatio)
				clamped := math.Min(text, vp.UsableHeight)
				assert.InDelta(t, h, vp.PaddingTop+clamped+vp.PaddingBottom, 1e-9)
			}
		}
	})
}

func TestClampSettings(t *testing.T) {
	assert.Equal(t, 10, ClampNominalFontSize(2))
	assert.Equal(t, 100, ClampNominalFontSize(500))
	assert.Equal(t, 42, ClampNominalFontSize(42))
	assert.Equal(t, 0, ClampPercent(-5))
	assert.Equal(t, 100, ClampPercent(101))
}
