package surface

import (
	"context"
	"encoding/json"
	"fmt"

	"ad_generator_go/services/layout"

	"github.com/chromedp/chromedp"
)

// ChromeSurfaces drives the editor page loaded in a chromedp tab. Every call
// runs against the tab context given at construction.
type ChromeSurfaces struct {
	tab context.Context
}

// NewChromeSurfaces binds the surfaces to a tab created with chromedp.NewContext
func NewChromeSurfaces(tab context.Context) *ChromeSurfaces {
	return &ChromeSurfaces{tab: tab}
}

// Surfaces returns the chromedp-backed container, paper, editor and debug sink
func (s *ChromeSurfaces) Surfaces() Surfaces {
	return Surfaces{
		Container: chromeContainer{s},
		Paper:     chromePaper{s},
		Editor:    chromeEditor{s},
		Debug:     chromeDebug{s},
	}
}

// Every script returns an object with a mounted flag so a missing element is
// reported without relying on null handling in chromedp.
type mountedResult struct {
	Mounted bool `json:"mounted"`
}

type sizeResult struct {
	Mounted bool    `json:"mounted"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (s *ChromeSurfaces) eval(ctx context.Context, script string, out interface{}) error {
	// Cancelling ctx must not tear down the tab, so only deadlines are honored
	runCtx := s.tab
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.tab, deadline)
		defer cancel()
	}
	if err := chromedp.Run(runCtx, chromedp.Evaluate(script, out)); err != nil {
		return fmt.Errorf("failed to evaluate page script: %w", err)
	}
	return nil
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

type chromeContainer struct{ s *ChromeSurfaces }

func (c chromeContainer) Size(ctx context.Context) (layout.ContainerDimensions, error) {
	var res sizeResult
	script := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return { mounted: false };
  const r = el.getBoundingClientRect();
  return { mounted: true, width: r.width, height: r.height };
})()`, jsString(ContainerSelector))
	if err := c.s.eval(ctx, script, &res); err != nil {
		return layout.ContainerDimensions{}, err
	}
	if !res.Mounted {
		return layout.ContainerDimensions{}, ErrNotMounted
	}
	return layout.ContainerDimensions{Width: res.Width, Height: res.Height}, nil
}

type chromePaper struct{ s *ChromeSurfaces }

func (p chromePaper) SetSize(ctx context.Context, size layout.ScaledDimensions) error {
	var res mountedResult
	script := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return { mounted: false };
  const w = %q, h = %q;
  el.style.width = w; el.style.minWidth = w; el.style.maxWidth = w;
  el.style.height = h; el.style.minHeight = h; el.style.maxHeight = h;
  return { mounted: true };
})()`, jsString(PaperSelector), px(size.Width), px(size.Height))
	if err := p.s.eval(ctx, script, &res); err != nil {
		return err
	}
	if !res.Mounted {
		return ErrNotMounted
	}
	return nil
}

func (p chromePaper) ClientSize(ctx context.Context) (float64, float64, error) {
	var res sizeResult
	script := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return { mounted: false };
  return { mounted: true, width: el.clientWidth, height: el.clientHeight };
})()`, jsString(PaperSelector))
	if err := p.s.eval(ctx, script, &res); err != nil {
		return 0, 0, err
	}
	if !res.Mounted {
		return 0, 0, ErrNotMounted
	}
	return res.Width, res.Height, nil
}

type chromeEditor struct{ s *ChromeSurfaces }

// editorScript wraps body in a function that receives the editor element
func editorScript(body string, args ...interface{}) string {
	return fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return { mounted: false };
  %s
})()`, jsString(EditorSelector), fmt.Sprintf(body, args...))
}

func (e chromeEditor) Text(ctx context.Context) (string, error) {
	var res struct {
		Mounted bool   `json:"mounted"`
		Text    string `json:"text"`
	}
	if err := e.s.eval(ctx, editorScript(`return { mounted: true, text: el.innerText };`), &res); err != nil {
		return "", err
	}
	if !res.Mounted {
		return "", ErrNotMounted
	}
	return res.Text, nil
}

func (e chromeEditor) SetText(ctx context.Context, text string) error {
	return e.run(ctx, editorScript(`el.textContent = %s; return { mounted: true };`, jsString(text)))
}

func (e chromeEditor) InsertText(ctx context.Context, text string) error {
	return e.run(ctx, editorScript(`el.focus();
  document.execCommand('insertText', false, %s);
  return { mounted: true };`, jsString(text)))
}

func (e chromeEditor) ApplyStyle(ctx context.Context, style Style) error {
	return e.run(ctx, editorScript(`el.style.fontSize = %q;
  el.style.lineHeight = %q;
  el.style.paddingTop = %q;
  el.style.paddingBottom = %q;
  return { mounted: true };`,
		px(style.FontSizePx), px(style.LineHeightPx), px(style.PaddingTopPx), px(style.PaddingBottomPx)))
}

func (e chromeEditor) ComputedStyle(ctx context.Context) (ComputedStyle, error) {
	var res struct {
		Mounted bool          `json:"mounted"`
		Style   ComputedStyle `json:"style"`
	}
	script := editorScript(`const cs = getComputedStyle(el);
  const num = v => parseFloat(v) || 0;
  return { mounted: true, style: {
    fontFamily: cs.fontFamily,
    fontWeight: cs.fontWeight,
    letterSpacing: cs.letterSpacing,
    wordBreak: cs.wordBreak,
    overflowWrap: cs.overflowWrap,
    paddingLeft: cs.paddingLeft,
    paddingRight: cs.paddingRight,
    direction: cs.direction,
    fontSizePx: num(cs.fontSize),
    lineHeightPx: num(cs.lineHeight),
    paddingTopPx: num(cs.paddingTop),
    paddingBottomPx: num(cs.paddingBottom),
  } };`)
	if err := e.s.eval(ctx, script, &res); err != nil {
		return ComputedStyle{}, err
	}
	if !res.Mounted {
		return ComputedStyle{}, ErrNotMounted
	}
	return res.Style, nil
}

func (e chromeEditor) ClientWidth(ctx context.Context) (float64, error) {
	var res sizeResult
	if err := e.s.eval(ctx, editorScript(`return { mounted: true, width: el.clientWidth };`), &res); err != nil {
		return 0, err
	}
	if !res.Mounted {
		return 0, ErrNotMounted
	}
	return res.Width, nil
}

func (e chromeEditor) HasSelectionAnchor(ctx context.Context) (bool, error) {
	var res struct {
		Mounted  bool `json:"mounted"`
		Anchored bool `json:"anchored"`
	}
	script := editorScript(`const sel = document.getSelection();
  return { mounted: true, anchored: !!(sel && sel.anchorNode) };`)
	if err := e.s.eval(ctx, script, &res); err != nil {
		return false, err
	}
	if !res.Mounted {
		return false, ErrNotMounted
	}
	return res.Anchored, nil
}

func (e chromeEditor) MoveCaretToEnd(ctx context.Context) error {
	return e.run(ctx, editorScript(`const sel = document.getSelection();
  const r = document.createRange();
  r.selectNodeContents(el);
  r.collapse(false);
  if (sel) { sel.removeAllRanges(); sel.addRange(r); }
  return { mounted: true };`))
}

func (e chromeEditor) run(ctx context.Context, script string) error {
	var res mountedResult
	if err := e.s.eval(ctx, script, &res); err != nil {
		return err
	}
	if !res.Mounted {
		return ErrNotMounted
	}
	return nil
}

type chromeDebug struct{ s *ChromeSurfaces }

func (d chromeDebug) Write(ctx context.Context, text string) error {
	var res mountedResult
	script := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  if (!el) return { mounted: false };
  el.textContent = %s;
  return { mounted: true };
})()`, jsString(DebugSelector), jsString(text))
	if err := d.s.eval(ctx, script, &res); err != nil {
		return err
	}
	if !res.Mounted {
		return ErrNotMounted
	}
	return nil
}

func px(v float64) string {
	return fmt.Sprintf("%gpx", v)
}
