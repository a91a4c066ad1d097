package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ad_generator_go/services/editor"
	"ad_generator_go/services/i18n"
	"ad_generator_go/templates/components"
	partials "ad_generator_go/templates/partials/editor"

	"github.com/a-h/templ"
)

// EditorViewModel holds the data for the editor page
type EditorViewModel struct {
	Settings  editor.Settings
	Workspace string
	Nonce     string
	// Interactive adds the client script. Pages loaded into a headless
	// session are driven from the server and render without it.
	Interactive bool
}

const editorCSS = `html, body { margin: 0; height: 100%; font-family: system-ui, sans-serif; background: #f3f4f6; }
body { display: flex; flex-direction: column; }
.toolbar { display: flex; gap: 12px; align-items: center; padding: 8px 16px; background: #fff; border-bottom: 1px solid #e5e7eb; }
.badge { margin-left: auto; font-size: 13px; color: #374151; }
.paper-container { flex: 1; display: flex; align-items: center; justify-content: center; overflow: hidden; min-height: 0; }
.paper-base { position: relative; background: #fff; border: 1px solid #d1d5db; box-shadow: 0 8px 32px rgba(0,0,0,.15); box-sizing: border-box; overflow: hidden; }
.editor { box-sizing: border-box; width: 100%; height: 100%; outline: none; direction: ltr; unicode-bidi: isolate-override; white-space: pre-wrap; word-break: break-word; overflow-wrap: break-word; text-align: center; font-family: 'Roboto', Arial, sans-serif; font-weight: 700; padding-left: 5%; padding-right: 5%; color: #000; }
.editor:empty::before { content: attr(data-placeholder); color: #9ca3af; }
.debug { position: fixed; right: 8px; bottom: 8px; margin: 0; padding: 8px; max-width: 320px; font-size: 11px; background: rgba(17,24,39,.85); color: #e5e7eb; border-radius: 6px; white-space: pre-wrap; }`

// editorScript keeps the client thin: settings go to the server, the layout
// pass runs there and its styles are applied to the page.
const editorScript = `(() => {
  const state = JSON.parse(document.getElementById('settings').textContent);
  const container = document.querySelector('.paper-container');
  const paper = document.querySelector('.paper-base');
  const editor = document.getElementById('editor');
  const debug = document.getElementById('debugMessages');
  let frame = 0;

  const api = (method, url, body) => fetch(url, {
    method, headers: { 'Content-Type': 'application/json' }, body: body && JSON.stringify(body),
  });

  const layout = () => {
    cancelAnimationFrame(frame);
    frame = requestAnimationFrame(async () => {
      const r = container.getBoundingClientRect();
      const res = await api('POST', '/api/layout', { settings: state, container: { width: r.width, height: r.height } });
      if (!res.ok) return;
      const pass = await res.json();
      Object.assign(paper.style, {
        width: pass.paper.width + 'px', height: pass.paper.height + 'px',
        minWidth: pass.paper.width + 'px', minHeight: pass.paper.height + 'px',
        maxWidth: pass.paper.width + 'px', maxHeight: pass.paper.height + 'px',
      });
      Object.assign(editor.style, {
        fontSize: pass.style.fontSizePx + 'px', lineHeight: pass.style.lineHeightPx + 'px',
        paddingTop: pass.style.paddingTopPx + 'px', paddingBottom: pass.style.paddingBottomPx + 'px',
      });
      debug.textContent = pass.debug || '';
    });
  };

  const save = () => { api('PUT', '/api/settings', state); layout(); };

  editor.addEventListener('input', () => { state.editorContent = editor.innerText; save(); });
  editor.addEventListener('paste', async (e) => {
    e.preventDefault();
    const text = e.clipboardData.getData('text/plain');
    const res = await api('POST', '/api/editor/paste', { content: state.editorContent, text });
    if (res.ok) { state.editorContent = (await res.json()).content; editor.innerText = state.editorContent; save(); }
  });
  document.querySelectorAll('[data-arrow]').forEach((b) => b.addEventListener('click', async () => {
    const res = await api('POST', '/api/editor/arrow', { content: state.editorContent, arrow: b.dataset.arrow });
    if (res.ok) { state.editorContent = (await res.json()).content; editor.innerText = state.editorContent; save(); }
  }));
  document.getElementById('paperFormat').addEventListener('change', (e) => { state.paperFormat = e.target.value; save(); });
  document.getElementById('fontSize').addEventListener('input', (e) => { state.fontSize = +e.target.value; save(); });
  document.getElementById('verticalPosition').addEventListener('input', (e) => { state.verticalPosition = +e.target.value; save(); });
  document.getElementById('debugMode').addEventListener('change', (e) => { state.debugMode = e.target.checked; debug.hidden = !state.debugMode; save(); });
  document.getElementById('printButton').addEventListener('click', async () => {
    const cs = getComputedStyle(editor);
    const res = await api('POST', '/api/print', {
      paperFormat: state.paperFormat, editorContent: state.editorContent,
      screen: {
        paperHeightPx: paper.clientHeight, fontSizePx: parseFloat(cs.fontSize), lineHeightPx: parseFloat(cs.lineHeight) || 0,
        paddingTopPx: parseFloat(cs.paddingTop), paddingBottomPx: parseFloat(cs.paddingBottom),
      },
    });
    if (!res.ok) { alert((await res.json()).error); return; }
    window.open(URL.createObjectURL(await res.blob()));
  });
  window.addEventListener('resize', layout);
  layout();
})();`

// EditorPage renders the single-page editor
func EditorPage(vm EditorViewModel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		nonce := ""
		if vm.Nonce != "" {
			nonce = fmt.Sprintf(` nonce="%s"`, templ.EscapeString(vm.Nonce))
		}

		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="%s"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s</title><style%s>%s</style></head><body>`,
			templ.EscapeString(i18n.GetLocale(ctx)),
			templ.EscapeString(vm.Settings.PaperFormat.Label()),
			nonce, editorCSS,
		); err != nil {
			return err
		}

		for _, c := range []templ.Component{
			partials.Toolbar(vm.Settings),
			partials.Paper(vm.Settings),
			partials.DebugPanel(vm.Settings),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}

		if vm.Interactive {
			if _, err := fmt.Fprintf(w, `<script type="application/json" id="settings">%s</script><script%s>%s</script>`,
				components.JSON(vm.Settings), nonce, editorScript); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// RenderString renders a component to a string
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
