package layout

import (
	"fmt"
	"math"
)

// PaperFormat is the physical page orientation of the A4 sheet
type PaperFormat string

// Paper format constants
const (
	FormatPortrait  PaperFormat = "a4-portrait"
	FormatLandscape PaperFormat = "a4-landscape"
)

// Layout defaults
const (
	DefaultMaxScale     = 0.95
	DefaultPaddingRatio = 0.05
	MinFontPx           = 8.0
	MaxFontPx           = 120.0
	LineHeightFactor    = 1.4
)

// Nominal font size bounds accepted from the settings owner
const (
	MinNominalFontSize = 10
	MaxNominalFontSize = 100
)

// PaperDimensions holds the physical size of a paper format in millimeters
type PaperDimensions struct {
	Width       float64
	Height      float64
	AspectRatio float64
}

// ContainerDimensions is the on-screen size of the hosting viewport in pixels
type ContainerDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScaledDimensions is the on-screen paper size after fitting it into a container
type ScaledDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// Typography holds the scaled font size and line height in pixels
type Typography struct {
	FontSizePx   float64 `json:"fontSizePx"`
	LineHeightPx float64 `json:"lineHeightPx"`
}

// VerticalPlacement is the result of anchoring a text block inside the paper
type VerticalPlacement struct {
	PaddingTop    float64 `json:"paddingTop"`
	PaddingBottom float64 `json:"paddingBottom"`
	UsableHeight  float64 `json:"usableHeight"`
	TextCenterY   float64 `json:"textCenterY"`
}

var (
	a4Portrait  = PaperDimensions{Width: 210, Height: 297, AspectRatio: 210.0 / 297.0}
	a4Landscape = PaperDimensions{Width: 297, Height: 210, AspectRatio: 297.0 / 210.0}
)

// ParsePaperFormat validates a paper format string
func ParsePaperFormat(s string) (PaperFormat, error) {
	switch PaperFormat(s) {
	case FormatPortrait, FormatLandscape:
		return PaperFormat(s), nil
	default:
		return "", fmt.Errorf("unknown paper format %q", s)
	}
}

// IsLandscape reports whether the format is the landscape orientation
func (f PaperFormat) IsLandscape() bool {
	return f == FormatLandscape
}

// Dimensions returns the canonical A4 size in millimeters. Anything that is
// not landscape is treated as portrait.
func (f PaperFormat) Dimensions() PaperDimensions {
	if f.IsLandscape() {
		return a4Landscape
	}
	return a4Portrait
}

// WidthMM returns the physical page width
func (f PaperFormat) WidthMM() float64 {
	return f.Dimensions().Width
}

// HeightMM returns the physical page height
func (f PaperFormat) HeightMM() float64 {
	return f.Dimensions().Height
}

// PageRule returns the size value used in the CSS @page rule
func (f PaperFormat) PageRule() string {
	if f.IsLandscape() {
		return "A4 landscape"
	}
	return "A4 portrait"
}

// Label returns the badge text shown under the on-screen paper
func (f PaperFormat) Label() string {
	if f.IsLandscape() {
		return "📄 A4 Landscape"
	}
	return "📄 A4 Portrait"
}

// FitPaperToContainer fits the paper into the container while preserving the
// aspect ratio. maxScale leaves room around the sheet.
func FitPaperToContainer(container ContainerDimensions, format PaperFormat, maxScale float64) ScaledDimensions {
	paper := format.Dimensions()
	availableWidth := container.Width * maxScale
	availableHeight := container.Height * maxScale

	scaleX := availableWidth / paper.Width
	scaleY := availableHeight / paper.Height
	scale := math.Min(scaleX, scaleY)

	return ScaledDimensions{
		Width:  paper.Width * scale,
		Height: paper.Height * scale,
		Scale:  scale,
	}
}

// ScaleFont scales the nominal font size by the paper scale and clamps it.
// Line height is always round(fontSize * 1.4).
func ScaleFont(basePx, paperScale, maxPx, minPx float64) Typography {
	px := math.Max(minPx, math.Min(maxPx, basePx*paperScale))
	return Typography{
		FontSizePx:   px,
		LineHeightPx: RoundHalfUp(px * LineHeightFactor),
	}
}

// ScaleFontDefault applies ScaleFont with the standard [8, 120] bounds
func ScaleFontDefault(basePx, paperScale float64) Typography {
	return ScaleFont(basePx, paperScale, MaxFontPx, MinFontPx)
}

// PlaceTextVertically anchors a text block of textHeight inside containerHeight.
// 0% puts the block at the top edge of the usable band, 100% at the bottom.
func PlaceTextVertically(containerHeight, positionPercent, textHeight, paddingRatio float64) VerticalPlacement {
	basePadding := containerHeight * paddingRatio
	usable := math.Max(0, containerHeight-2*basePadding)
	clampedText := math.Min(textHeight, usable)
	ratio := math.Max(0, math.Min(1, positionPercent/100))
	slideRange := math.Max(0, usable-clampedText)
	topWithin := ratio * slideRange

	paddingTop := basePadding + topWithin
	paddingBottom := basePadding + (usable - clampedText - topWithin)

	return VerticalPlacement{
		PaddingTop:    paddingTop,
		PaddingBottom: paddingBottom,
		UsableHeight:  usable,
		TextCenterY:   paddingTop + clampedText/2,
	}
}

// TextFits reports whether a measured block fits the usable band unclamped
func (v VerticalPlacement) TextFits(textHeight float64) bool {
	return textHeight <= v.UsableHeight
}

// ClampNominalFontSize keeps a user supplied font size within 10..100
func ClampNominalFontSize(size int) int {
	return clampInt(size, MinNominalFontSize, MaxNominalFontSize)
}

// ClampPercent keeps a vertical position within 0..100
func ClampPercent(p int) int {
	return clampInt(p, 0, 100)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundHalfUp rounds x.5 up, the way line heights are rounded on screen
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
