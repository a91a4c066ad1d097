package printing

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"ad_generator_go/services/layout"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const ptPerMM = 72 / mmPerInch

// PDFSandbox renders print documents straight to PDF without a browser. It
// reads the page rule and editor typography back from the document markup
// and lays the text out with the Go fonts. Used when headless Chrome is not
// available.
type PDFSandbox struct {
	Output OutputFunc
}

// NewPDFSandbox creates a sandbox delivering its PDFs to output
func NewPDFSandbox(output OutputFunc) *PDFSandbox {
	return &PDFSandbox{Output: output}
}

// Create implements Sandbox
func (s *PDFSandbox) Create(ctx context.Context, markup string) (Frame, error) {
	info, err := InspectDocument(markup)
	if err != nil {
		return nil, err
	}
	return &pdfFrame{
		sandbox:    s,
		info:       info,
		afterPrint: make(chan struct{}),
	}, nil
}

type pdfFrame struct {
	sandbox *PDFSandbox
	info    DocumentInfo

	mu         sync.Mutex
	text       string
	destroyed  bool
	afterPrint chan struct{}
	once       sync.Once
}

func (f *pdfFrame) InjectHTML(ctx context.Context, markup string) error {
	content, err := InspectDocument(`<div id="editor">` + markup + `</div>`)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyed {
		return ErrContextUnavailable
	}
	f.text = content.EditorText
	return nil
}

func (f *pdfFrame) WaitReady(ctx context.Context) error { return nil }

func (f *pdfFrame) Focus(ctx context.Context) error { return nil }

func (f *pdfFrame) Print(ctx context.Context) error {
	f.mu.Lock()
	text := f.text
	f.mu.Unlock()

	format, ok := f.info.Format()
	if !ok {
		format = layout.FormatPortrait
	}

	pdf, err := RenderPDF(format, f.info.Metrics, f.info.FontWeight, text)
	if err != nil {
		return err
	}

	if f.sandbox.Output != nil {
		if err := f.sandbox.Output(ctx, format, pdf); err != nil {
			return fmt.Errorf("failed to deliver printed document: %w", err)
		}
	}
	f.once.Do(func() { close(f.afterPrint) })
	return nil
}

func (f *pdfFrame) AfterPrint() <-chan struct{} {
	return f.afterPrint
}

func (f *pdfFrame) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = true
	return nil
}

// RenderPDF lays the text out on one A4 page using the millimeter metrics of
// a print document: centered lines, 5% side padding, top padding as given.
func RenderPDF(format layout.PaperFormat, m Metrics, fontWeight int, text string) ([]byte, error) {
	dims := format.Dimensions()
	orientation := "P"
	if format.IsLandscape() {
		orientation = "L"
	}

	// fpdf takes the portrait size and swaps it for landscape itself
	portrait := layout.FormatPortrait.Dimensions()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: portrait.Width, Ht: portrait.Height},
	})
	pdf.SetTitle("Печать", true)
	pdf.SetAutoPageBreak(false, 0)

	side := dims.Width * 0.05
	pdf.SetMargins(side, 0, side)

	ttf := goregular.TTF
	if fontWeight <= 0 || fontWeight >= 600 {
		ttf = gobold.TTF
	}
	pdf.AddUTF8FontFromBytes("editor", "", ttf)

	fontMM := m.FontMM
	if fontMM <= 0 {
		fontMM = 5
	}
	lineMM := m.LineMM
	if lineMM <= 0 {
		lineMM = fontMM * layout.LineHeightFactor
	}

	pdf.AddPage()
	pdf.SetFont("editor", "", fontMM*ptPerMM)
	pdf.SetXY(side, m.PadTopMM)
	pdf.MultiCell(dims.Width-2*side, lineMM, text, "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
