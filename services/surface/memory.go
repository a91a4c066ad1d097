package surface

import (
	"context"
	"sync"

	"ad_generator_go/services/layout"
)

// MemoryContainer is a fixed-size container
type MemoryContainer struct {
	mu      sync.Mutex
	width   float64
	height  float64
	mounted bool
}

// NewMemoryContainer creates a mounted container of the given size
func NewMemoryContainer(width, height float64) *MemoryContainer {
	return &MemoryContainer{width: width, height: height, mounted: true}
}

// Resize changes the container size
func (c *MemoryContainer) Resize(width, height float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}

// SetMounted attaches or detaches the container
func (c *MemoryContainer) SetMounted(mounted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounted = mounted
}

// Size implements Container
func (c *MemoryContainer) Size(ctx context.Context) (layout.ContainerDimensions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return layout.ContainerDimensions{}, ErrNotMounted
	}
	return layout.ContainerDimensions{Width: c.width, Height: c.height}, nil
}

// MemoryPaper stores the size written by the layout pass. Border is
// subtracted from each side when reporting the client size.
type MemoryPaper struct {
	mu      sync.Mutex
	size    layout.ScaledDimensions
	border  float64
	mounted bool
	writes  int
}

// NewMemoryPaper creates a mounted paper with the given border width
func NewMemoryPaper(border float64) *MemoryPaper {
	return &MemoryPaper{border: border, mounted: true}
}

// NewMemoryPaperWithSize creates a paper that already has a rendered size
func NewMemoryPaperWithSize(width, height, border float64) *MemoryPaper {
	p := NewMemoryPaper(border)
	p.size = layout.ScaledDimensions{Width: width, Height: height, Scale: 1}
	return p
}

// SetMounted attaches or detaches the paper
func (p *MemoryPaper) SetMounted(mounted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounted = mounted
}

// SetSize implements Paper
func (p *MemoryPaper) SetSize(ctx context.Context, size layout.ScaledDimensions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return ErrNotMounted
	}
	p.size = size
	p.writes++
	return nil
}

// ClientSize implements Paper
func (p *MemoryPaper) ClientSize(ctx context.Context) (float64, float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.mounted {
		return 0, 0, ErrNotMounted
	}
	w := p.size.Width - 2*p.border
	h := p.size.Height - 2*p.border
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h, nil
}

// Size returns the last size written
func (p *MemoryPaper) Size() layout.ScaledDimensions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}

// Writes returns how many times the size was set
func (p *MemoryPaper) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

// MemoryEditor is an in-memory editable block. Its width follows the paper
// it is placed on.
type MemoryEditor struct {
	mu       sync.Mutex
	paper    Paper
	text     string
	style    Style
	computed ComputedStyle
	anchored bool
	caretEnd bool
	mounted  bool
	applies  int
}

// NewMemoryEditor creates a mounted editor on the paper
func NewMemoryEditor(paper Paper) *MemoryEditor {
	return &MemoryEditor{
		paper:   paper,
		mounted: true,
		computed: ComputedStyle{
			FontFamily:    "Roboto, Arial, sans-serif",
			FontWeight:    "700",
			LetterSpacing: "normal",
			WordBreak:     "break-word",
			OverflowWrap:  "break-word",
			PaddingLeft:   "0px",
			PaddingRight:  "0px",
			Direction:     "ltr",
		},
	}
}

// SetMounted attaches or detaches the editor
func (e *MemoryEditor) SetMounted(mounted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mounted = mounted
}

// SetSelectionAnchor simulates whether the user has an active caret
func (e *MemoryEditor) SetSelectionAnchor(anchored bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.anchored = anchored
}

// SetComputed overrides the computed style reported to callers. Values written
// by ApplyStyle still take precedence for font size, line height and paddings.
func (e *MemoryEditor) SetComputed(cs ComputedStyle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.computed = cs
}

// Text implements Editor
func (e *MemoryEditor) Text(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return "", ErrNotMounted
	}
	return e.text, nil
}

// SetText implements Editor
func (e *MemoryEditor) SetText(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return ErrNotMounted
	}
	e.text = text
	e.caretEnd = false
	return nil
}

// InsertText implements Editor. Text is inserted at the caret, which is
// always the end of the content here.
func (e *MemoryEditor) InsertText(ctx context.Context, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return ErrNotMounted
	}
	e.text += text
	return nil
}

// ApplyStyle implements Editor
func (e *MemoryEditor) ApplyStyle(ctx context.Context, style Style) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return ErrNotMounted
	}
	e.style = style
	e.applies++
	return nil
}

// ComputedStyle implements Editor
func (e *MemoryEditor) ComputedStyle(ctx context.Context) (ComputedStyle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return ComputedStyle{}, ErrNotMounted
	}
	cs := e.computed
	if e.applies > 0 {
		cs.FontSizePx = e.style.FontSizePx
		cs.LineHeightPx = e.style.LineHeightPx
		cs.PaddingTopPx = e.style.PaddingTopPx
		cs.PaddingBottomPx = e.style.PaddingBottomPx
	}
	return cs, nil
}

// ClientWidth implements Editor
func (e *MemoryEditor) ClientWidth(ctx context.Context) (float64, error) {
	e.mu.Lock()
	mounted := e.mounted
	e.mu.Unlock()
	if !mounted || e.paper == nil {
		return 0, ErrNotMounted
	}
	w, _, err := e.paper.ClientSize(ctx)
	return w, err
}

// HasSelectionAnchor implements Editor
func (e *MemoryEditor) HasSelectionAnchor(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.anchored, nil
}

// MoveCaretToEnd implements Editor
func (e *MemoryEditor) MoveCaretToEnd(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.caretEnd = true
	return nil
}

// Style returns the last style written by the layout pass
func (e *MemoryEditor) Style() Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.style
}

// Applies returns how many times a style was written
func (e *MemoryEditor) Applies() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applies
}

// CaretAtEnd reports whether the caret was moved to the end
func (e *MemoryEditor) CaretAtEnd() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.caretEnd
}

// MemoryDebugSink keeps the last snapshot
type MemoryDebugSink struct {
	mu     sync.Mutex
	last   string
	writes int
}

// Write implements DebugSink
func (d *MemoryDebugSink) Write(ctx context.Context, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = text
	d.writes++
	return nil
}

// Last returns the last snapshot written
func (d *MemoryDebugSink) Last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Writes returns the number of snapshots written
func (d *MemoryDebugSink) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// NewMemorySurfaces wires a container, paper, editor and debug sink together
func NewMemorySurfaces(width, height, border float64) (Surfaces, *MemoryContainer, *MemoryPaper, *MemoryEditor, *MemoryDebugSink) {
	container := NewMemoryContainer(width, height)
	paper := NewMemoryPaper(border)
	editor := NewMemoryEditor(paper)
	debug := &MemoryDebugSink{}
	return Surfaces{Container: container, Paper: paper, Editor: editor, Debug: debug}, container, paper, editor, debug
}
