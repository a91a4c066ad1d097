package editor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ad_generator_go/services/editor"
	"ad_generator_go/services/i18n"
	"ad_generator_go/services/textclean"

	"github.com/a-h/templ"
)

// Paper renders the paper container with the editable block. Element classes
// and ids are the ones the layout surfaces address.
func Paper(s editor.Settings) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="paper-container"><div class="paper-base" data-format="%s" style="%s"><div id="editor" class="editor" contenteditable="true" spellcheck="false" dir="ltr" data-placeholder="%s">%s</div></div></div>`,
			templ.EscapeString(string(s.PaperFormat)),
			templ.EscapeString(PaperStyle(s.PaperFormat)),
			templ.EscapeString(i18n.T(ctx, "editor.placeholder")),
			templ.EscapeString(textclean.Sanitize(s.EditorContent)),
		)
		return err
	})
}

// Toolbar renders the settings controls, the arrow buttons and the print action
func Toolbar(s editor.Settings) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<div class="toolbar"><select id="paperFormat" name="paperFormat">`)
		for _, opt := range FormatOptions(s.PaperFormat) {
			selected := ""
			if opt.Selected {
				selected = " selected"
			}
			fmt.Fprintf(&sb, `<option value="%s"%s>%s</option>`, templ.EscapeString(string(opt.Value)), selected, templ.EscapeString(opt.Label))
		}
		sb.WriteString(`</select>`)
		fmt.Fprintf(&sb, `<input type="range" id="fontSize" name="fontSize" min="10" max="100" value="%d">`, s.FontSize)
		fmt.Fprintf(&sb, `<input type="range" id="verticalPosition" name="verticalPosition" min="0" max="100" value="%d">`, s.VerticalPosition)
		checked := ""
		if s.DebugMode {
			checked = " checked"
		}
		fmt.Fprintf(&sb, `<label><input type="checkbox" id="debugMode" name="debugMode"%s> debug</label>`, checked)
		sb.WriteString(`<span class="arrows">`)
		for _, a := range []textclean.Arrow{textclean.ArrowUp, textclean.ArrowDown, textclean.ArrowLeft, textclean.ArrowRight} {
			fmt.Fprintf(&sb, `<button type="button" data-arrow="%s">%s</button>`, a, a.Symbol())
		}
		sb.WriteString(`</span>`)
		fmt.Fprintf(&sb, `<button type="button" id="printButton">%s</button>`, templ.EscapeString(i18n.T(ctx, "print.title")))
		fmt.Fprintf(&sb, `<a href="/api/print/preview" id="previewLink">%s</a>`, templ.EscapeString(i18n.T(ctx, "editor.preview")))
		fmt.Fprintf(&sb, `<span class="badge">%s</span></div>`, templ.EscapeString(s.PaperFormat.Label()))

		_, err := io.WriteString(w, sb.String())
		return err
	})
}

// DebugPanel renders the block the layout controller writes its snapshot to
func DebugPanel(s editor.Settings) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hidden := " hidden"
		if s.DebugMode {
			hidden = ""
		}
		_, err := fmt.Fprintf(w, `<pre id="debugMessages" class="debug"%s></pre>`, hidden)
		return err
	})
}
