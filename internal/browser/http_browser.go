package browser

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/webapp-acceptance/pkg/config"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// HTTPBrowser Browser sobre net/http. Conserva cookies entre páginas pero nunca respuestas.
// Un status distinto de 2xx no es un error: queda en Page.StatusCode.
type HTTPBrowser struct {
	client *http.Client
	log    *logger.Logger
}

// NewHTTPBrowser construye el cliente con el timeout de cfg.
func NewHTTPBrowser(cfg config.BrowserConfig, log *logger.Logger) *HTTPBrowser {
	jar, _ := cookiejar.New(nil)
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &HTTPBrowser{
		client: &http.Client{Jar: jar, Timeout: timeout},
		log:    log,
	}
}

func (b *HTTPBrowser) Open(ctx context.Context, ref string) (*Page, error) {
	return b.do(ctx, http.MethodGet, ref, nil)
}

func (b *HTTPBrowser) Get(ctx context.Context, ref string, params url.Values) (*Page, error) {
	full, err := withParams(ref, params)
	if err != nil {
		return nil, err
	}
	return b.do(ctx, http.MethodGet, full, nil)
}

func (b *HTTPBrowser) Submit(ctx context.Context, form *Form) (*Page, error) {
	if form.Method == http.MethodPost {
		return b.do(ctx, http.MethodPost, form.Action, form.Values())
	}
	return b.Get(ctx, form.Action, form.Values())
}

func (b *HTTPBrowser) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

func (b *HTTPBrowser) do(ctx context.Context, method, ref string, body url.Values) (*Page, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, ref, strings.NewReader(body.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, ref, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, ref, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, ref, err)
	}
	defer resp.Body.Close()

	b.log.Debug().
		Str("method", method).
		Str("url", resp.Request.URL.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("página cargada")

	// Tras redirecciones la página es la del destino final.
	return NewPage(resp.Request.URL, resp.StatusCode, decodeBody(resp))
}

// decodeBody pasa a UTF-8 las páginas servidas en Latin-1, habitual en contenedores de servlets.
func decodeBody(resp *http.Response) io.Reader {
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return resp.Body
	}
	switch strings.ToLower(params["charset"]) {
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(resp.Body, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		return transform.NewReader(resp.Body, charmap.Windows1252.NewDecoder())
	default:
		return resp.Body
	}
}
