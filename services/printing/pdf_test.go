package printing

import (
	"bytes"
	"context"
	"testing"
	"time"

	"ad_generator_go/services/layout"
	"ad_generator_go/services/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF(layout.FormatLandscape, Metrics{FontMM: 20, LineMM: 28, PadTopMM: 80}, 700, "Привет, мир")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestPDFSandboxPrint(t *testing.T) {
	var got []byte
	var gotFormat layout.PaperFormat
	sandbox := NewPDFSandbox(func(ctx context.Context, format layout.PaperFormat, pdf []byte) error {
		got = pdf
		gotFormat = format
		return nil
	})

	paper := surface.NewMemoryPaperWithSize(900, 636, 0)
	editor := surface.NewMemoryEditor(paper)
	editor.SetComputed(surface.ComputedStyle{FontSizePx: 40, LineHeightPx: 56, PaddingTopPx: 200, PaddingBottomPx: 200})

	r := NewRenderer(sandbox, paper, editor, nil)
	r.CleanupTimeout = time.Second

	require.NoError(t, r.Print(context.Background(), Options{PaperFormat: layout.FormatLandscape, EditorContent: "<b>Sale</b> ↑"}))
	assert.Equal(t, layout.FormatLandscape, gotFormat)
	assert.True(t, bytes.HasPrefix(got, []byte("%PDF-")))
}

func TestPDFFrameInjectAfterDestroy(t *testing.T) {
	sandbox := NewPDFSandbox(nil)
	frame, err := sandbox.Create(context.Background(), BuildDocument(layout.FormatPortrait, Metrics{FontMM: 10}, Options{}))
	require.NoError(t, err)

	require.NoError(t, frame.InjectHTML(context.Background(), "&lt;b&gt;"))
	require.NoError(t, frame.Destroy())
	assert.ErrorIs(t, frame.InjectHTML(context.Background(), "x"), ErrContextUnavailable)
}
