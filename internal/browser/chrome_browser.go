package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/jhoicas/webapp-acceptance/pkg/config"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// ChromeBrowser Browser sobre un Chrome headless (chromedp). Ejecuta los scripts de la página;
// cada navegación está acotada por cfg.ScriptTimeout.
type ChromeBrowser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	log         *logger.Logger
}

// NewChromeBrowser lanza el navegador con la caché deshabilitada.
func NewChromeBrowser(ctx context.Context, cfg config.BrowserConfig, log *logger.Logger) (*ChromeBrowser, error) {
	if log == nil {
		log = logger.Nop()
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disk-cache-size", "0"),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	bctx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug().Msgf(format, args...)
		}),
	)

	b := &ChromeBrowser{
		ctx:         bctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		timeout:     cfg.ScriptTimeout,
		log:         log,
	}
	if b.timeout <= 0 {
		b.timeout = 15 * time.Second
	}

	err := chromedp.Run(bctx,
		network.Enable(),
		network.SetCacheDisabled(true),
		network.SetExtraHTTPHeaders(network.Headers{"Cache-Control": "no-cache"}),
	)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("iniciar chrome: %w", err)
	}
	return b, nil
}

func (b *ChromeBrowser) Open(ctx context.Context, ref string) (*Page, error) {
	return b.navigate(ctx, ref, chromedp.Navigate(ref))
}

func (b *ChromeBrowser) Get(ctx context.Context, ref string, params url.Values) (*Page, error) {
	full, err := withParams(ref, params)
	if err != nil {
		return nil, err
	}
	return b.Open(ctx, full)
}

// Submit carga la página del formulario si no es la actual, fija los valores y pulsa submit.
func (b *ChromeBrowser) Submit(ctx context.Context, form *Form) (*Page, error) {
	var current string
	if err := chromedp.Run(b.ctx, chromedp.Location(&current)); err != nil {
		return nil, fmt.Errorf("chrome location: %w", err)
	}
	if current != form.Page.URL.String() {
		if _, err := b.Open(ctx, form.Page.URL.String()); err != nil {
			return nil, err
		}
	}

	values := map[string]string{}
	for _, fl := range form.fields {
		values[fl.name] = fl.value
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	button, _ := form.Button()
	encodedButton, err := json.Marshal(button)
	if err != nil {
		return nil, err
	}
	script := fmt.Sprintf(`(function() {
		const f = document.forms[%d];
		const values = %s;
		for (const name in values) {
			const el = f.elements.namedItem(name);
			if (el) { el.value = values[name]; }
		}
		const button = f.elements.namedItem(%s);
		if (button && typeof button.click === "function") { button.click(); } else { f.submit(); }
		return true;
	})()`, form.Index, encoded, encodedButton)

	var ok bool
	return b.navigate(ctx, form.Action, chromedp.Evaluate(script, &ok))
}

func (b *ChromeBrowser) Close() error {
	b.cancel()
	b.allocCancel()
	return nil
}

// navigate ejecuta action (que provoca una navegación) y captura el documento resultante.
func (b *ChromeBrowser) navigate(ctx context.Context, ref string, action chromedp.Action) (*Page, error) {
	tctx, cancel := context.WithTimeout(b.ctx, b.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	resp, err := chromedp.RunResponse(tctx, action)
	if err != nil {
		return nil, fmt.Errorf("chrome %s: %w", ref, err)
	}

	var html, location string
	err = chromedp.Run(tctx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome %s: %w", ref, err)
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("chrome location %q: %w", location, err)
	}

	status := 0
	if resp != nil {
		status = int(resp.Status)
	}
	b.log.Debug().Str("url", location).Int("status", status).Msg("página cargada")
	return NewPage(u, status, strings.NewReader(html))
}
