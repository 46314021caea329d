package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jhoicas/webapp-acceptance/pkg/config"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// ErrNotFound elemento buscado (enlace, formulario, campo, fila) ausente de la página.
var ErrNotFound = errors.New("elemento no encontrado")

// Browser cliente que carga páginas. Ninguna implementación reutiliza respuestas anteriores:
// cada llamada refleja el estado actual del servidor.
type Browser interface {
	// Open carga la URL absoluta ref.
	Open(ctx context.Context, ref string) (*Page, error)
	// Get carga ref con params en la query.
	Get(ctx context.Context, ref string, params url.Values) (*Page, error)
	// Submit envía el formulario con sus valores actuales.
	Submit(ctx context.Context, form *Form) (*Page, error)
	Close() error
}

// New construye el Browser indicado por cfg.Driver.
func New(ctx context.Context, cfg config.BrowserConfig, log *logger.Logger) (Browser, error) {
	switch cfg.Driver {
	case config.BrowserHTTP, "":
		return NewHTTPBrowser(cfg, log), nil
	case config.BrowserChrome:
		return NewChromeBrowser(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("browser: driver no soportado %q", cfg.Driver)
	}
}

func withParams(ref string, params url.Values) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("url %q: %w", ref, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
