package editor

import (
	"fmt"

	"ad_generator_go/services/layout"
)

// PaperStyle is the initial inline size of the paper before the first
// layout pass: the physical size at 96 dpi, shrunk to fit the viewport.
func PaperStyle(format layout.PaperFormat) string {
	d := format.Dimensions()
	const pxPerMM = 96 / 25.4
	return fmt.Sprintf("width: %.0fpx; height: %.0fpx; max-width: 100%%;", d.Width*pxPerMM, d.Height*pxPerMM)
}

// FormatOption is one entry of the paper format selector
type FormatOption struct {
	Value    layout.PaperFormat
	Label    string
	Selected bool
}

// FormatOptions lists the selectable paper formats
func FormatOptions(current layout.PaperFormat) []FormatOption {
	formats := []layout.PaperFormat{layout.FormatPortrait, layout.FormatLandscape}
	options := make([]FormatOption, 0, len(formats))
	for _, f := range formats {
		options = append(options, FormatOption{Value: f, Label: f.Label(), Selected: f == current})
	}
	return options
}
