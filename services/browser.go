package services

import (
	"context"
	"fmt"
	"log"

	"ad_generator_go/services/layout"
	"ad_generator_go/services/printing"

	"github.com/chromedp/chromedp"
)

// Browser is the long-lived headless Chrome shared by editor sessions and
// print sandboxes. Each of them opens its own tab.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

// Chrome is the global browser instance, nil when Chrome could not start
var Chrome *Browser

// StartBrowser launches headless Chrome. chromePath overrides the executable
// lookup, e.g. for headless-shell in Docker.
func StartBrowser(chromePath string) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1280, 1024),
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Running with no actions starts the browser process
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Browser{ctx: ctx, cancel: cancel, allocCancel: allocCancel}, nil
}

// InitializeBrowser starts the global browser. Failure is not fatal: printing
// falls back to the PDF sandbox.
func InitializeBrowser(chromePath string) {
	b, err := StartBrowser(chromePath)
	if err != nil {
		log.Printf("[WARNING] Headless Chrome unavailable: %v. Falling back to built-in PDF rendering.", err)
		return
	}
	Chrome = b
	log.Println("Headless Chrome started")
}

// Context returns the browser context tabs are derived from
func (b *Browser) Context() context.Context {
	return b.ctx
}

// NewTab opens a fresh tab
func (b *Browser) NewTab() (context.Context, context.CancelFunc) {
	return chromedp.NewContext(b.ctx)
}

// Close shuts the browser down
func (b *Browser) Close() {
	if b == nil {
		return
	}
	b.cancel()
	b.allocCancel()
}

// NewPrintSandbox returns the Chrome sandbox when a browser is running and
// the built-in PDF sandbox otherwise.
func NewPrintSandbox(b *Browser, output printing.OutputFunc) printing.Sandbox {
	if b == nil {
		return printing.NewPDFSandbox(output)
	}
	return printing.NewChromeSandbox(b.ctx, output)
}

// PDFCollector keeps the last document printed through a sandbox
type PDFCollector struct {
	Format layout.PaperFormat
	PDF    []byte
}

// Collect implements printing.OutputFunc
func (p *PDFCollector) Collect(ctx context.Context, format layout.PaperFormat, pdf []byte) error {
	p.Format = format
	p.PDF = pdf
	return nil
}
