package printing

import "context"

// Sandbox creates isolated, disposable rendering contexts for print jobs.
// A frame is owned by a single print invocation and never reused.
type Sandbox interface {
	Create(ctx context.Context, markup string) (Frame, error)
}

// Frame is one isolated rendering context
type Frame interface {
	// InjectHTML replaces the editor block's content. It fails with
	// ErrContextUnavailable when the block cannot be found.
	InjectHTML(ctx context.Context, html string) error
	// WaitReady waits for fonts and two layout frames
	WaitReady(ctx context.Context) error
	Focus(ctx context.Context) error
	// Print invokes the native print of the frame
	Print(ctx context.Context) error
	// AfterPrint is closed when the frame reports that printing finished
	AfterPrint() <-chan struct{}
	// Destroy detaches the frame; it must be safe to call more than once
	Destroy() error
}
