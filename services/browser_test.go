package services

import (
	"context"
	"os"
	"testing"
	"time"

	"ad_generator_go/services/layout"
	"ad_generator_go/services/printing"
	"ad_generator_go/services/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrintSandboxFallback(t *testing.T) {
	var collector PDFCollector
	sandbox := NewPrintSandbox(nil, collector.Collect)

	_, ok := sandbox.(*printing.PDFSandbox)
	assert.True(t, ok)
}

func TestPrintSmoke(t *testing.T) {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		t.Skip("Skipping headless Chrome test: CHROME_PATH not set")
	}

	b, err := StartBrowser(chromePath)
	if err != nil {
		t.Skipf("Skipping: Chrome could not start from %s: %v", chromePath, err)
	}
	defer b.Close()

	var collector PDFCollector
	paper := surface.NewMemoryPaperWithSize(672, 950, 0)
	editor := surface.NewMemoryEditor(paper)
	editor.SetComputed(surface.ComputedStyle{FontSizePx: 48, LineHeightPx: 67, PaddingTopPx: 400, PaddingBottomPx: 400})

	r := printing.NewRenderer(NewPrintSandbox(b, collector.Collect), paper, editor, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, r.Print(ctx, printing.Options{PaperFormat: layout.FormatPortrait, EditorContent: "Hello"}))
	assert.Equal(t, layout.FormatPortrait, collector.Format)
	require.True(t, len(collector.PDF) > 5)
	assert.Contains(t, string(collector.PDF[:5]), "%PDF-")
}
