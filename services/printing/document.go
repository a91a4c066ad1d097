package printing

import (
	"fmt"
	"strings"

	"ad_generator_go/services/layout"
	"ad_generator_go/services/textclean"

	"github.com/a-h/templ"
)

// Typography defaults of the printed block, matching the on-screen editor
const (
	DefaultFontFamily = `'Roboto', Arial, sans-serif`
	DefaultFontWeight = 700
)

// editorShell is the empty inner block content is injected into
const editorShell = `<div class="editor" id="editor"></div>`

// Options describes one print request
type Options struct {
	PaperFormat        layout.PaperFormat `json:"paperFormat"`
	EditorContent      string             `json:"editorContent"`
	TreatContentAsHTML bool               `json:"treatContentAsHTML,omitempty"`
	FontFamily         string             `json:"fontFamily,omitempty"`
	FontWeight         int                `json:"fontWeight,omitempty"`
}

func (o Options) withDefaults() Options {
	if o.PaperFormat == "" {
		o.PaperFormat = layout.FormatPortrait
	}
	if strings.TrimSpace(o.FontFamily) == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.FontWeight <= 0 {
		o.FontWeight = DefaultFontWeight
	}
	return o
}

// cssValue drops characters that could close the declaration or the style
// element a value is written into.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '\\':
			return -1
		}
		return r
	}, v)
}

// BuildDocument returns the isolated print document with an empty editor
// block: one physical A4 page, the editor typography in millimeters, fixed 5%
// horizontal padding and an @page rule with zero margins.
func BuildDocument(format layout.PaperFormat, m Metrics, opts Options) string {
	opts = opts.withDefaults()

	css := fmt.Sprintf(`@page { size: %s; margin: 0; }
html, body { margin: 0; padding: 0; height: 100%%; background: #fff; color: #000; }
.paper {
  width: %gmm;
  height: %gmm;
  margin: 0 auto;
  background: #fff;
  position: relative;
  overflow: visible;
  box-sizing: border-box;
}
.editor {
  box-sizing: border-box;
  width: 100%%;
  height: 100%%;
  direction: ltr;
  unicode-bidi: isolate-override;
  white-space: pre-wrap;
  word-break: break-word;
  overflow-wrap: break-word;
  text-align: center;

  font-family: %s;
  font-weight: %d;
  font-size: %.4fmm;
  line-height: %.4fmm;
  padding-top: %.4fmm;
  padding-bottom: %.4fmm;
  padding-left: 5%%;
  padding-right: 5%%;
  background: transparent;
  color: #000;
}
@media screen {
  body { display: grid; place-items: center; padding: 16px; }
  .paper { box-shadow: 0 8px 32px rgba(0,0,0,.15); border-radius: 8px; }
}`,
		format.PageRule(),
		format.WidthMM(), format.HeightMM(),
		cssValue(opts.FontFamily), opts.FontWeight,
		m.FontMM, m.LineMM, m.PadTopMM, m.PadBottomMM,
	)

	return `<!doctype html>
<html lang="ru">
<head>
  <meta charset="utf-8" />
  <title>Печать</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>` + css + `</style>
</head>
<body>
  <div class="paper">
    ` + editorShell + `
  </div>
</body>
</html>`
}

// ContentHTML returns the markup injected into the editor block. Plain text
// is escaped; trusted HTML is passed through verbatim and must already be
// sanitized by the caller.
func ContentHTML(content string, trustedHTML bool) string {
	if trustedHTML {
		return content
	}
	return templ.EscapeString(content)
}

// RenderDocument returns the print document with the content already in
// place. Used for previews where no sandbox is involved. Content is sanitized
// the same way Renderer.Print does it.
func RenderDocument(format layout.PaperFormat, m Metrics, opts Options) string {
	doc := BuildDocument(format, m, opts)
	content := textclean.Sanitize(opts.EditorContent)
	filled := `<div class="editor" id="editor">` + ContentHTML(content, opts.TreatContentAsHTML) + `</div>`
	return strings.Replace(doc, editorShell, filled, 1)
}
