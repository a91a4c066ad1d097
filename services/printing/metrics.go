package printing

import (
	"context"

	"ad_generator_go/services/layout"
	"ad_generator_go/services/surface"
)

// Metrics are the editor's on-screen typography re-expressed in millimeters
type Metrics struct {
	MMPerPx     float64 `json:"mmPerPx"`
	FontMM      float64 `json:"fontMM"`
	LineMM      float64 `json:"lineMM"`
	PadTopMM    float64 `json:"padTopMM"`
	PadBottomMM float64 `json:"padBottomMM"`
}

// ComputeMetrics converts the live editor's computed font size, line height
// and vertical paddings to millimeters, using the ratio between the physical
// page height and the on-screen paper's content height.
func ComputeMetrics(ctx context.Context, format layout.PaperFormat, paper surface.Paper, editor surface.Editor) (Metrics, error) {
	if paper == nil || editor == nil {
		return Metrics{}, surface.ErrNotMounted
	}

	_, paperHeightPx, err := paper.ClientSize(ctx)
	if err != nil {
		return Metrics{}, err
	}
	if paperHeightPx <= 0 {
		paperHeightPx = 1
	}
	mmPerPx := format.HeightMM() / paperHeightPx

	cs, err := editor.ComputedStyle(ctx)
	if err != nil {
		return Metrics{}, err
	}

	linePx := cs.LineHeightPx
	if linePx <= 0 {
		linePx = layout.RoundHalfUp(cs.FontSizePx * layout.LineHeightFactor)
	}

	return Metrics{
		MMPerPx:     mmPerPx,
		FontMM:      cs.FontSizePx * mmPerPx,
		LineMM:      linePx * mmPerPx,
		PadTopMM:    cs.PaddingTopPx * mmPerPx,
		PadBottomMM: cs.PaddingBottomPx * mmPerPx,
	}, nil
}
