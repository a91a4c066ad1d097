// Package session binds one editor's layout controller and print renderer
// to a set of surfaces, either in memory or in a headless Chrome tab.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ad_generator_go/services/editor"
	"ad_generator_go/services/frame"
	"ad_generator_go/services/layout"
	"ad_generator_go/services/printing"
	"ad_generator_go/services/probe"
	"ad_generator_go/services/surface"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Options configure a session
type Options struct {
	Scheduler      frame.Scheduler
	Host           probe.Host
	Sandbox        printing.Sandbox
	Notifier       printing.Notifier
	CleanupTimeout time.Duration
}

// Session is one live editor
type Session struct {
	surfaces   surface.Surfaces
	controller *editor.Controller
	renderer   *printing.Renderer
	close      func()

	mu       sync.RWMutex
	settings editor.Settings
}

// New creates a session over existing surfaces
func New(ctx context.Context, surfaces surface.Surfaces, settings editor.Settings, opts Options) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = frame.NewTimerScheduler(frame.DefaultInterval)
	}
	if opts.Host == nil {
		opts.Host = probe.EstimateHost{}
	}

	s := &Session{surfaces: surfaces, settings: settings}
	s.controller = editor.NewController(ctx, surfaces, opts.Scheduler, opts.Host, s.Settings)
	s.renderer = printing.NewRenderer(opts.Sandbox, surfaces.Paper, surfaces.Editor, opts.Notifier)
	if opts.CleanupTimeout > 0 {
		s.renderer.CleanupTimeout = opts.CleanupTimeout
	}
	return s
}

// Settings returns the settings snapshot used by the next layout pass
func (s *Session) Settings() editor.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Controller exposes the layout controller
func (s *Session) Controller() *editor.Controller {
	return s.controller
}

// Renderer exposes the print renderer
func (s *Session) Renderer() *printing.Renderer {
	return s.renderer
}

// Apply replaces the settings, syncs the editor content and schedules a pass
func (s *Session) Apply(ctx context.Context, settings editor.Settings) error {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	return s.controller.SyncContent(ctx, settings.EditorContent)
}

// Layout applies the settings and runs the resulting pass right away
func (s *Session) Layout(ctx context.Context, settings editor.Settings) (*editor.Pass, error) {
	if err := s.Apply(ctx, settings); err != nil {
		return nil, err
	}
	return s.controller.Flush(ctx)
}

// Print settles any pending layout pass, so metrics never lag behind the
// latest settings, then runs the print pipeline.
func (s *Session) Print(ctx context.Context, opts printing.Options) error {
	if _, err := s.controller.Flush(ctx); err != nil {
		return fmt.Errorf("failed to settle layout before print: %w", err)
	}

	current := s.Settings()
	if opts.PaperFormat == "" {
		opts.PaperFormat = current.PaperFormat
	}
	if opts.EditorContent == "" {
		opts.EditorContent = current.EditorContent
	}
	return s.renderer.Print(ctx, opts)
}

// Close stops pending passes and releases the surfaces
func (s *Session) Close() {
	s.controller.Close()
	if s.close != nil {
		s.close()
	}
}

// NewMemory creates a session on in-memory surfaces sized like a browser
// viewport of the given container
func NewMemory(ctx context.Context, container layout.ContainerDimensions, settings editor.Settings, opts Options) (*Session, *surface.MemoryEditor) {
	surfaces, _, _, ed, _ := surface.NewMemorySurfaces(container.Width, container.Height, 0)
	return New(ctx, surfaces, settings, opts), ed
}

// OpenChrome loads the editor page into a fresh tab of browser and drives it
// through chromedp surfaces. The viewport is fixed to the given size.
func OpenChrome(browser context.Context, pageHTML string, viewport layout.ContainerDimensions, settings editor.Settings, opts Options) (*Session, error) {
	tab, cancel := chromedp.NewContext(browser)

	err := chromedp.Run(tab,
		emulation.SetDeviceMetricsOverride(int64(viewport.Width), int64(viewport.Height), 1, false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, pageHTML).Do(ctx)
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to load editor page: %w", err)
	}

	if opts.Host == nil {
		opts.Host = probe.NewChromeHost(tab)
	}
	s := New(tab, surface.NewChromeSurfaces(tab).Surfaces(), settings, opts)
	s.close = cancel
	return s, nil
}
