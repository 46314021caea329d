package harness

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/application/service"
	"github.com/jhoicas/webapp-acceptance/internal/browser"
	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/internal/fixtures"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/database"
	apphttp "github.com/jhoicas/webapp-acceptance/internal/interfaces/http"
	"github.com/jhoicas/webapp-acceptance/internal/webapp"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// WebSuite navegador ya posado en el índice de la aplicación.
type WebSuite struct {
	BaseURL string
	Client  *webapp.Client
	Log     *logger.Logger
	// Services canal de servicios del stub; nil contra una aplicación desplegada.
	Services *service.Services
}

// NewWebSuite apunta a WEBAPP_URL o, si no está configurada, levanta el stub en un puerto libre
// sobre una base propia. Exige que el índice responda 200.
func NewWebSuite(t *testing.T, opts ...Option) *WebSuite {
	t.Helper()
	o := buildOptions(t, opts)
	ctx := context.Background()
	log := testLogger(t, o.cfg.App.LogLevel).Named("harness")
	s := &WebSuite{Log: log}

	if o.cfg.Webapp.Stubbed() {
		s.BaseURL, s.Services = startStub(t, o, log)
	} else {
		s.BaseURL = o.cfg.Webapp.BaseURL
		if !strings.HasSuffix(s.BaseURL, "/") {
			s.BaseURL += "/"
		}
	}

	b, err := browser.New(ctx, o.cfg.Browser, log.Named("browser"))
	require.NoError(t, err, "navegador")
	t.Cleanup(func() { _ = b.Close() })

	client, err := webapp.New(ctx, b, s.BaseURL)
	require.NoError(t, err, "índice de la aplicación")
	s.Client = client
	return s
}

func startStub(t *testing.T, o *options, log *logger.Logger) (string, *service.Services) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, o.cfg.DB)
	require.NoError(t, err, "abrir base del stub")
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))

	if o.dataset != "" {
		op, err := fixtures.Default().Reset(o.dataset)
		require.NoError(t, err)
		dest, err := db.Destination()
		require.NoError(t, err)
		require.NoError(t, dbsetup.New(dest, op, dbsetup.WithLogger(log.Named("dbsetup"))).Launch(ctx))
	}

	var saleOpts []service.SaleOption
	if o.now != nil {
		saleOpts = append(saleOpts, service.WithClock(o.now))
	}
	svc := service.New(db.Repos(), db.TxRunner(), saleOpts...)

	contextPath := o.cfg.Webapp.ContextPath
	app, err := apphttp.NewApp(o.cfg.App.Name, apphttp.RouterDeps{
		Customers:   svc.Customers,
		Sales:       svc.Sales,
		ContextPath: contextPath,
		Log:         log.Named("stub"),
	})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(5 * time.Second) })

	base := "http://" + ln.Addr().String() + "/" + strings.Trim(contextPath, "/")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base, svc
}
