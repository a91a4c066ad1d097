package probe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/chromedp"
)

// probeScript builds the probe from a JSON spec, measures and removes it.
// Direction is forced to ltr with isolate-override to avoid bidi reflow.
const probeScript = `((spec) => {
  const probe = document.createElement('div');
  probe.textContent = spec.text || '';
  const s = probe.style;
  s.position = 'absolute';
  s.visibility = 'hidden';
  s.pointerEvents = 'none';
  s.left = '-99999px';
  s.top = '0';
  s.whiteSpace = 'pre-wrap';
  s.wordBreak = spec.wordBreak;
  s.overflowWrap = spec.overflowWrap;
  s.boxSizing = 'border-box';
  s.width = spec.widthPx + 'px';
  s.fontFamily = spec.fontFamily;
  s.fontWeight = spec.fontWeight;
  s.letterSpacing = spec.letterSpacing;
  s.direction = 'ltr';
  s.unicodeBidi = 'isolate-override';
  s.fontSize = spec.fontSizePx + 'px';
  s.lineHeight = spec.lineHeightPx + 'px';
  s.paddingLeft = spec.paddingLeft;
  s.paddingRight = spec.paddingRight;
  document.body.appendChild(probe);
  const h = probe.scrollHeight;
  document.body.removeChild(probe);
  return h;
})(%s)`

// ChromeHost measures with a real layout engine in a chromedp tab
type ChromeHost struct {
	tab context.Context
}

// NewChromeHost binds the host to the tab holding the editor page
func NewChromeHost(tab context.Context) *ChromeHost {
	return &ChromeHost{tab: tab}
}

// ScrollHeight implements Host
func (h *ChromeHost) ScrollHeight(ctx context.Context, spec Spec) (float64, error) {
	payload, err := json.Marshal(spec)
	if err != nil {
		return 0, fmt.Errorf("failed to encode probe spec: %w", err)
	}

	runCtx := h.tab
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(h.tab, deadline)
		defer cancel()
	}

	var height float64
	if err := chromedp.Run(runCtx, chromedp.Evaluate(fmt.Sprintf(probeScript, payload), &height)); err != nil {
		return 0, err
	}
	return height, nil
}
