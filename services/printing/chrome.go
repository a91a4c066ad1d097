package printing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"ad_generator_go/services/layout"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

const mmPerInch = 25.4

// DefaultReadyTimeout bounds the fonts and frame settle wait
const DefaultReadyTimeout = 3 * time.Second

const injectScript = `((markup) => {
  const el = document.getElementById('editor');
  if (!el) return { mounted: false };
  el.innerHTML = markup;
  return { mounted: true };
})(%s)`

const readyScript = `(async () => {
  try {
    if (document.fonts && document.fonts.ready) await document.fonts.ready;
  } catch (e) {}
  await new Promise((resolve) => requestAnimationFrame(() => requestAnimationFrame(resolve)));
  return true;
})()`

// OutputFunc receives the document rendered by a frame's native print
type OutputFunc func(ctx context.Context, format layout.PaperFormat, pdf []byte) error

// ChromeSandbox opens every print context in a fresh tab of a shared
// headless browser. The native print of a tab is PrintToPDF.
type ChromeSandbox struct {
	browser      context.Context
	Output       OutputFunc
	ReadyTimeout time.Duration
}

// NewChromeSandbox binds the sandbox to a browser context created with
// chromedp.NewContext
func NewChromeSandbox(browser context.Context, output OutputFunc) *ChromeSandbox {
	return &ChromeSandbox{
		browser:      browser,
		Output:       output,
		ReadyTimeout: DefaultReadyTimeout,
	}
}

// Create implements Sandbox
func (s *ChromeSandbox) Create(ctx context.Context, markup string) (Frame, error) {
	info, err := InspectDocument(markup)
	if err != nil {
		return nil, err
	}
	format, ok := info.Format()
	if !ok {
		format = layout.FormatPortrait
	}

	tab, cancel := chromedp.NewContext(s.browser)
	f := &chromeFrame{
		sandbox:    s,
		tab:        tab,
		cancel:     cancel,
		format:     format,
		afterPrint: make(chan struct{}),
	}

	err = f.run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, markup).Do(ctx)
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load print document: %w", err)
	}
	return f, nil
}

type chromeFrame struct {
	sandbox *ChromeSandbox
	tab     context.Context
	cancel  context.CancelFunc
	format  layout.PaperFormat

	afterPrint  chan struct{}
	printedOnce sync.Once
	destroyOnce sync.Once
}

// run executes actions in the frame's tab. Cancelling ctx must not close the
// tab, so only its deadline is carried over.
func (f *chromeFrame) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := f.tab
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(f.tab, deadline)
		defer cancel()
	}
	return chromedp.Run(runCtx, actions...)
}

func (f *chromeFrame) InjectHTML(ctx context.Context, markup string) error {
	payload, err := json.Marshal(markup)
	if err != nil {
		return fmt.Errorf("failed to encode print content: %w", err)
	}

	var res struct {
		Mounted bool `json:"mounted"`
	}
	if err := f.run(ctx, chromedp.Evaluate(fmt.Sprintf(injectScript, payload), &res)); err != nil {
		return fmt.Errorf("failed to inject print content: %w", err)
	}
	if !res.Mounted {
		return ErrContextUnavailable
	}
	return nil
}

func (f *chromeFrame) WaitReady(ctx context.Context) error {
	timeout := f.sandbox.ReadyTimeout
	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var ok bool
	err := f.run(waitCtx, chromedp.Evaluate(readyScript, &ok, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	}))
	if err != nil {
		return fmt.Errorf("failed to wait for print document: %w", err)
	}
	return nil
}

func (f *chromeFrame) Focus(ctx context.Context) error {
	return f.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return page.BringToFront().Do(ctx)
	}))
}

// paperInches is the sheet size PrintToPDF expects
func paperInches(format layout.PaperFormat) (width, height float64) {
	dims := format.Dimensions()
	return dims.Width / mmPerInch, dims.Height / mmPerInch
}

func (f *chromeFrame) Print(ctx context.Context) error {
	width, height := paperInches(f.format)

	var pdf []byte
	err := f.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithPaperWidth(width).
			WithPaperHeight(height).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			WithPrintBackground(true).
			WithDisplayHeaderFooter(false).
			Do(ctx)
		if err != nil {
			return err
		}
		pdf = buf
		return nil
	}))
	if err != nil {
		return fmt.Errorf("failed to print document: %w", err)
	}

	if f.sandbox.Output != nil {
		if err := f.sandbox.Output(ctx, f.format, pdf); err != nil {
			return fmt.Errorf("failed to deliver printed document: %w", err)
		}
	}

	f.printedOnce.Do(func() { close(f.afterPrint) })
	return nil
}

func (f *chromeFrame) AfterPrint() <-chan struct{} {
	return f.afterPrint
}

func (f *chromeFrame) Destroy() error {
	f.destroyOnce.Do(f.cancel)
	return nil
}
