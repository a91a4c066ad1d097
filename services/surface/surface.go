// Package surface abstracts the on-screen elements the layout controller and
// print renderer read from and write to.
package surface

import (
	"context"
	"errors"

	"ad_generator_go/services/layout"
)

// ErrNotMounted is returned by a surface whose element is not attached yet
var ErrNotMounted = errors.New("surface not mounted")

// Element selectors of the editor page
const (
	ContainerSelector = ".paper-container"
	PaperSelector     = ".paper-base"
	EditorSelector    = "#editor"
	DebugSelector     = "#debugMessages"
)

// Style is the set of values the layout pass writes onto the editor
type Style struct {
	FontSizePx      float64 `json:"fontSizePx"`
	LineHeightPx    float64 `json:"lineHeightPx"`
	PaddingTopPx    float64 `json:"paddingTopPx"`
	PaddingBottomPx float64 `json:"paddingBottomPx"`
}

// ComputedStyle is the subset of the editor's computed CSS used for
// measurement and print metrics. LineHeightPx is 0 when the browser reports
// "normal".
type ComputedStyle struct {
	FontFamily      string  `json:"fontFamily"`
	FontWeight      string  `json:"fontWeight"`
	LetterSpacing   string  `json:"letterSpacing"`
	WordBreak       string  `json:"wordBreak"`
	OverflowWrap    string  `json:"overflowWrap"`
	PaddingLeft     string  `json:"paddingLeft"`
	PaddingRight    string  `json:"paddingRight"`
	Direction       string  `json:"direction"`
	FontSizePx      float64 `json:"fontSizePx"`
	LineHeightPx    float64 `json:"lineHeightPx"`
	PaddingTopPx    float64 `json:"paddingTopPx"`
	PaddingBottomPx float64 `json:"paddingBottomPx"`
}

// Container is the viewport hosting the paper
type Container interface {
	Size(ctx context.Context) (layout.ContainerDimensions, error)
}

// Paper is the on-screen sheet
type Paper interface {
	SetSize(ctx context.Context, size layout.ScaledDimensions) error
	// ClientSize returns the content box size, borders excluded
	ClientSize(ctx context.Context) (width, height float64, err error)
}

// Editor is the content-editable text block inside the paper
type Editor interface {
	Text(ctx context.Context) (string, error)
	SetText(ctx context.Context, text string) error
	InsertText(ctx context.Context, text string) error
	ApplyStyle(ctx context.Context, style Style) error
	ComputedStyle(ctx context.Context) (ComputedStyle, error)
	ClientWidth(ctx context.Context) (float64, error)
	HasSelectionAnchor(ctx context.Context) (bool, error)
	MoveCaretToEnd(ctx context.Context) error
}

// DebugSink receives the human readable layout snapshot
type DebugSink interface {
	Write(ctx context.Context, text string) error
}

// Surfaces groups the elements handed to the layout controller
type Surfaces struct {
	Container Container
	Paper     Paper
	Editor    Editor
	Debug     DebugSink
}
