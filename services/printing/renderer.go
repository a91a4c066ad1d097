// Package printing renders the editor content onto one physical A4 page in
// an isolated, disposable sandbox and triggers its native print.
package printing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"ad_generator_go/services/i18n"
	"ad_generator_go/services/surface"
	"ad_generator_go/services/textclean"
)

// DefaultCleanupTimeout bounds the wait for the after-print signal
const DefaultCleanupTimeout = 5 * time.Second

var (
	// ErrEmptyContent is returned when there is nothing to print
	ErrEmptyContent = errors.New("editor content is empty")
	// ErrSurfaceUnavailable is returned when the on-screen paper or editor
	// cannot be read to derive print metrics
	ErrSurfaceUnavailable = errors.New("paper or editor surface unavailable")
	// ErrContextUnavailable is returned when the isolated print context
	// cannot be prepared
	ErrContextUnavailable = errors.New("print context unavailable")
)

// NoticeKey returns the translation key of the user-facing notice for a
// print error, or "" when the error carries none.
func NoticeKey(err error) string {
	switch {
	case errors.Is(err, ErrEmptyContent):
		return "print.enter_text"
	case errors.Is(err, ErrSurfaceUnavailable):
		return "print.no_surface"
	case errors.Is(err, ErrContextUnavailable):
		return "print.prepare_failed"
	}
	return ""
}

// Notifier delivers blocking user-facing notices
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, message string)

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

// State of a renderer
type State int

// Renderer states
const (
	StateIdle State = iota
	StateBuilding
	StatePrinting
	StateCleaningUp
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StatePrinting:
		return "printing"
	case StateCleaningUp:
		return "cleaning-up"
	default:
		return "idle"
	}
}

// Renderer is the print pipeline. Metrics are read from the on-screen paper
// and editor at invocation time; edits made after the sandbox is created do
// not reach the current job.
type Renderer struct {
	Sandbox        Sandbox
	Paper          surface.Paper
	Editor         surface.Editor
	Notifier       Notifier
	CleanupTimeout time.Duration

	mu    sync.Mutex
	state State
}

// NewRenderer creates a renderer with the default cleanup timeout
func NewRenderer(sandbox Sandbox, paper surface.Paper, editor surface.Editor, notifier Notifier) *Renderer {
	return &Renderer{
		Sandbox:        sandbox,
		Paper:          paper,
		Editor:         editor,
		Notifier:       notifier,
		CleanupTimeout: DefaultCleanupTimeout,
	}
}

// State returns the state of the in-flight invocation
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Renderer) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func (r *Renderer) notify(ctx context.Context, key string) {
	msg := i18n.T(ctx, key)
	if r.Notifier == nil {
		log.Printf("[WARNING] Print notice: %s", msg)
		return
	}
	r.Notifier.Notify(ctx, msg)
}

// Print runs one print job and returns once its sandbox has been destroyed,
// or immediately when a precondition fails. Precondition failures notify the
// user and leave no sandbox behind.
func (r *Renderer) Print(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	content := textclean.Sanitize(opts.EditorContent)
	if textclean.IsBlank(content) {
		r.notify(ctx, "print.enter_text")
		return ErrEmptyContent
	}

	r.setState(StateBuilding)
	defer r.setState(StateIdle)

	if r.Sandbox == nil {
		r.notify(ctx, "print.prepare_failed")
		return ErrContextUnavailable
	}

	m, err := ComputeMetrics(ctx, opts.PaperFormat, r.Paper, r.Editor)
	if err != nil {
		r.notify(ctx, "print.no_surface")
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}

	frame, err := r.Sandbox.Create(ctx, BuildDocument(opts.PaperFormat, m, opts))
	if err != nil {
		r.notify(ctx, "print.prepare_failed")
		return fmt.Errorf("%w: %w", ErrContextUnavailable, err)
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			r.setState(StateCleaningUp)
			if err := frame.Destroy(); err != nil {
				log.Printf("[WARNING] Failed to destroy print sandbox: %v", err)
			}
		})
	}
	defer cleanup()

	if err := frame.InjectHTML(ctx, ContentHTML(content, opts.TreatContentAsHTML)); err != nil {
		cleanup()
		r.notify(ctx, "print.prepare_failed")
		if errors.Is(err, ErrContextUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrContextUnavailable, err)
	}

	if err := frame.WaitReady(ctx); err != nil {
		log.Printf("[WARNING] Print sandbox readiness wait failed: %v", err)
	}

	r.setState(StatePrinting)
	if err := frame.Focus(ctx); err != nil {
		log.Printf("[WARNING] Failed to focus print sandbox: %v", err)
	}
	if err := frame.Print(ctx); err != nil {
		log.Printf("[WARNING] Print invocation failed: %v", err)
		return nil
	}

	timeout := r.CleanupTimeout
	if timeout <= 0 {
		timeout = DefaultCleanupTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-frame.AfterPrint():
	case <-timer.C:
		log.Printf("[INFO] No after-print signal within %s, cleaning up", timeout)
	case <-ctx.Done():
	}
	return nil
}
