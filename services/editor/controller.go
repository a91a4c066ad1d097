// Package editor keeps the on-screen editor in sync with the physical page
// constraints. Bursts of triggers are coalesced into one layout pass per frame.
package editor

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"

	"ad_generator_go/services/frame"
	"ad_generator_go/services/layout"
	"ad_generator_go/services/probe"
	"ad_generator_go/services/surface"
	"ad_generator_go/services/textclean"
)

// ContainerInset is subtracted from the container rect on each axis before
// fitting the paper.
const ContainerInset = 40.0

// State of the controller
type State int

// Controller states
const (
	StateIdle State = iota
	StateScheduled
	StateComputing
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateComputing:
		return "computing"
	default:
		return "idle"
	}
}

// Trigger names what caused a layout request
type Trigger string

// Layout triggers
const (
	TriggerResize   Trigger = "resize"
	TriggerSettings Trigger = "settings"
	TriggerDebug    Trigger = "debug"
	TriggerEdit     Trigger = "edit"
)

// Pass is the outcome of one layout pass
type Pass struct {
	Paper         layout.ScaledDimensions  `json:"paper"`
	PaperHeight   float64                  `json:"paperHeight"`
	Typography    layout.Typography        `json:"typography"`
	TextHeight    float64                  `json:"textHeight"`
	Placement     layout.VerticalPlacement `json:"placement"`
	Style         surface.Style            `json:"style"`
	TextFits      bool                     `json:"textFits"`
	ContentLength int                      `json:"contentLength"`
	Direction     string                   `json:"direction"`
	Debug         string                   `json:"debug,omitempty"`
}

// Clipboard maps MIME types to clipboard payloads
type Clipboard map[string]string

// Controller is the live layout controller
type Controller struct {
	ctx       context.Context
	surfaces  surface.Surfaces
	host      probe.Host
	settings  SettingsSource
	coalescer *frame.Coalescer

	mu     sync.Mutex
	state  State
	dirty  bool
	closed bool
	last   *Pass
	// done is closed when the running pass finishes
	done chan struct{}
}

// NewController creates a controller. ctx bounds the passes run from the
// scheduler; Close should be called when the editor goes away.
func NewController(ctx context.Context, surfaces surface.Surfaces, scheduler frame.Scheduler, host probe.Host, settings SettingsSource) *Controller {
	c := &Controller{
		ctx:      ctx,
		surfaces: surfaces,
		host:     host,
		settings: settings,
	}
	c.coalescer = frame.NewCoalescer(scheduler, c.onFrame)
	return c
}

// State returns the current controller state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastPass returns the result of the most recent successful pass
func (c *Controller) LastPass() *Pass {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Trigger requests a layout pass on the next frame. Triggers arriving while a
// pass is already scheduled are absorbed by it. Triggers after Close are
// ignored.
func (c *Controller) Trigger(reason Trigger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	switch c.state {
	case StateIdle:
		c.state = StateScheduled
		c.coalescer.Request()
	case StateComputing:
		// Settings read by the running pass may already be stale
		c.dirty = true
	}
}

// Close cancels any pending pass so nothing is written to a detached editor
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.coalescer.Cancel()
	c.closed = true
	c.dirty = false
	if c.state == StateScheduled {
		c.state = StateIdle
	}
}

// Flush runs a pending pass immediately instead of waiting for the frame.
// A pass already running is waited for, along with any pass it rescheduled.
func (c *Controller) Flush(ctx context.Context) (*Pass, error) {
	for {
		c.mu.Lock()
		switch {
		case c.state == StateComputing:
			done := c.done
			c.mu.Unlock()
			select {
			case <-done:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		case c.state == StateScheduled && !c.closed:
			c.coalescer.Cancel()
			c.beginPass()
			c.mu.Unlock()
			return c.runPass(ctx)
		default:
			last := c.last
			c.mu.Unlock()
			return last, nil
		}
	}
}

// beginPass moves to computing; callers hold mu
func (c *Controller) beginPass() {
	c.state = StateComputing
	c.done = make(chan struct{})
}

func (c *Controller) onFrame() {
	c.mu.Lock()
	if c.state != StateScheduled || c.closed {
		c.mu.Unlock()
		return
	}
	c.beginPass()
	c.mu.Unlock()

	if _, err := c.runPass(c.ctx); err != nil {
		log.Printf("[WARNING] Layout pass failed: %v", err)
	}
}

// runPass performs the layout and moves the controller back to idle, or to
// scheduled if triggers arrived in the meantime.
func (c *Controller) runPass(ctx context.Context) (*Pass, error) {
	pass, err := c.Layout(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if pass != nil {
		c.last = pass
	}
	c.state = StateIdle
	close(c.done)
	if c.dirty && !c.closed {
		c.dirty = false
		c.state = StateScheduled
		c.coalescer.Request()
	}
	return pass, err
}

// Layout runs a full pass synchronously: fit paper, scale typography, measure
// the text and place it vertically, then write the resulting styles. A nil
// pass with a nil error means a surface was not mounted and nothing changed.
func (c *Controller) Layout(ctx context.Context) (*Pass, error) {
	pass, err := c.layout(ctx)
	if errors.Is(err, surface.ErrNotMounted) {
		return nil, nil
	}
	return pass, err
}

func (c *Controller) layout(ctx context.Context) (*Pass, error) {
	s := c.settings()
	ed := c.surfaces.Editor
	if ed == nil || c.surfaces.Paper == nil {
		return nil, surface.ErrNotMounted
	}

	paper, err := c.applyPaperSize(ctx, s.PaperFormat)
	if err != nil {
		return nil, err
	}

	_, paperHeight, err := c.surfaces.Paper.ClientSize(ctx)
	if err != nil {
		return nil, err
	}

	typo := layout.ScaleFontDefault(float64(s.FontSize), paper.Scale)

	raw, err := ed.Text(ctx)
	if err != nil {
		return nil, err
	}
	content := textclean.Sanitize(raw)

	textHeight, err := probe.MeasureTextHeight(ctx, c.host, content, ed, typo.FontSizePx, typo.LineHeightPx)
	if err != nil {
		return nil, err
	}

	vp := layout.PlaceTextVertically(paperHeight, float64(s.VerticalPosition), textHeight, layout.DefaultPaddingRatio)

	// Rounded up so the rasterized page never clips a sub-pixel row
	style := surface.Style{
		FontSizePx:      typo.FontSizePx,
		LineHeightPx:    typo.LineHeightPx,
		PaddingTopPx:    math.Ceil(vp.PaddingTop),
		PaddingBottomPx: math.Ceil(vp.PaddingBottom),
	}
	if err := ed.ApplyStyle(ctx, style); err != nil {
		return nil, err
	}

	pass := &Pass{
		Paper:         paper,
		PaperHeight:   paperHeight,
		Typography:    typo,
		TextHeight:    textHeight,
		Placement:     vp,
		Style:         style,
		TextFits:      vp.TextFits(textHeight),
		ContentLength: contentLength(content),
		Direction:     "ltr",
	}

	if s.DebugMode {
		c.writeDebug(ctx, s, pass)
	}

	return pass, nil
}

// applyPaperSize fits the paper into the container. A controller built
// without a container keeps the paper at its current size and scale 1.
func (c *Controller) applyPaperSize(ctx context.Context, format layout.PaperFormat) (layout.ScaledDimensions, error) {
	if c.surfaces.Container == nil {
		w, h, err := c.surfaces.Paper.ClientSize(ctx)
		if err != nil {
			return layout.ScaledDimensions{}, err
		}
		return layout.ScaledDimensions{Width: w, Height: h, Scale: 1}, nil
	}

	rect, err := c.surfaces.Container.Size(ctx)
	if err != nil {
		return layout.ScaledDimensions{}, err
	}
	avail := layout.ContainerDimensions{
		Width:  rect.Width - ContainerInset,
		Height: rect.Height - ContainerInset,
	}
	paper := layout.FitPaperToContainer(avail, format, layout.DefaultMaxScale)
	if err := c.surfaces.Paper.SetSize(ctx, paper); err != nil {
		return layout.ScaledDimensions{}, err
	}
	return paper, nil
}

func (c *Controller) writeDebug(ctx context.Context, s Settings, pass *Pass) {
	if cs, err := c.surfaces.Editor.ComputedStyle(ctx); err == nil && cs.Direction != "" {
		pass.Direction = cs.Direction
	}
	pass.Debug = FormatDebugSnapshot(s, pass)

	if c.surfaces.Debug == nil {
		return
	}
	if err := c.surfaces.Debug.Write(ctx, pass.Debug); err != nil && !errors.Is(err, surface.ErrNotMounted) {
		log.Printf("[WARNING] Failed to write debug snapshot: %v", err)
	}
}

// HandleInput normalizes the editor's text after a direct edit. When
// sanitizing changed the text the element is overwritten, and the caret is
// moved to the end if no selection anchor survives. The cleaned text is
// returned for the settings owner.
func (c *Controller) HandleInput(ctx context.Context) (string, error) {
	ed := c.surfaces.Editor
	raw, err := ed.Text(ctx)
	if err != nil {
		return "", err
	}

	cleaned := textclean.Sanitize(raw)
	if cleaned != raw {
		anchored, _ := ed.HasSelectionAnchor(ctx)
		if err := ed.SetText(ctx, cleaned); err != nil {
			return "", err
		}
		if !anchored {
			if err := ed.MoveCaretToEnd(ctx); err != nil {
				log.Printf("[WARNING] Failed to restore caret: %v", err)
			}
		}
	}

	c.Trigger(TriggerEdit)
	return cleaned, nil
}

// HandlePaste inserts the plain-text flavor of the clipboard. Rich flavors
// such as text/html are ignored.
func (c *Controller) HandlePaste(ctx context.Context, clip Clipboard) (string, error) {
	ed := c.surfaces.Editor
	if err := ed.InsertText(ctx, textclean.Sanitize(clip["text/plain"])); err != nil {
		return "", err
	}

	now, err := ed.Text(ctx)
	if err != nil {
		return "", err
	}

	c.Trigger(TriggerEdit)
	return textclean.Sanitize(now), nil
}

// SyncContent reflects externally changed content into the editor, leaving
// the element alone when it already shows the same text.
func (c *Controller) SyncContent(ctx context.Context, content string) error {
	ed := c.surfaces.Editor
	sanitized := textclean.Sanitize(content)

	current, err := ed.Text(ctx)
	if err != nil && !errors.Is(err, surface.ErrNotMounted) {
		return err
	}
	if err == nil && sanitized != current {
		if err := ed.SetText(ctx, sanitized); err != nil {
			return err
		}
	}

	c.Trigger(TriggerSettings)
	return nil
}
