// Package harness arma el entorno de cada suite de aceptación: base con el dataset de la suite
// reiniciado antes de cada prueba (DBSuite) o navegador apuntando a la aplicación (WebSuite).
// Cada suite es dueña de su estado; no hay estado global compartido entre suites.
package harness

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/pkg/config"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

type options struct {
	cfg     *config.Config
	now     func() time.Time
	op      dbsetup.Operation
	dataset string
}

// Option ajusta la construcción de una suite.
type Option func(*options)

// WithConfig usa cfg en lugar de leer el entorno.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithClock fija el reloj del servicio de ventas.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithOperation reemplaza el fixture del dataset por op.
func WithOperation(op dbsetup.Operation) Option {
	return func(o *options) { o.op = op }
}

// WithDataset carga el dataset name en la base del stub antes de la primera página.
func WithDataset(name string) Option {
	return func(o *options) { o.dataset = name }
}

func buildOptions(t testing.TB, opts []Option) *options {
	t.Helper()
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.cfg == nil {
		cfg, err := config.Load()
		require.NoError(t, err, "configuración")
		o.cfg = cfg
	}
	return o
}

// testLogger escribe en el log de t con el nivel configurado.
func testLogger(t testing.TB, level string) *logger.Logger {
	return logger.NewWithWriter(zerolog.NewTestWriter(t), level)
}
