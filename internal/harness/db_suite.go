package harness

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/application/service"
	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/internal/fixtures"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/database"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// DBSuite suite que reinicia la base con su dataset antes de cada prueba.
type DBSuite struct {
	Dataset  string
	DB       *database.Database
	Services *service.Services
	Log      *logger.Logger

	setup   *dbsetup.DbSetup
	tracker dbsetup.Tracker
	broken  error
}

// NewDBSuite abre la base configurada, crea el esquema y prepara el fixture de dataset.
// La conexión se cierra al terminar t.
func NewDBSuite(t *testing.T, dataset string, opts ...Option) *DBSuite {
	t.Helper()
	o := buildOptions(t, opts)
	ctx := context.Background()
	log := testLogger(t, o.cfg.App.LogLevel).Named("harness")

	db, err := database.Open(ctx, o.cfg.DB)
	require.NoError(t, err, "abrir base")
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx), "crear esquema")

	op := o.op
	if op == nil {
		op, err = fixtures.Default().Reset(dataset)
		require.NoError(t, err)
	}
	dest, err := db.Destination()
	require.NoError(t, err)

	var saleOpts []service.SaleOption
	if o.now != nil {
		saleOpts = append(saleOpts, service.WithClock(o.now))
	}

	return &DBSuite{
		Dataset:  dataset,
		DB:       db,
		Services: service.New(db.Repos(), db.TxRunner(), saleOpts...),
		Log:      log,
		setup:    dbsetup.New(dest, op, dbsetup.WithLogger(log.Named("dbsetup"))),
	}
}

// Prepare deja la base en el estado del dataset salvo que la prueba anterior haya pedido
// saltar el reinicio. Tras el primer fallo la suite queda inutilizable y Prepare devuelve
// siempre ese error sin volver a intentarlo.
func (s *DBSuite) Prepare(ctx context.Context) error {
	if s.broken != nil {
		return fmt.Errorf("suite %s inutilizable: %w", s.Dataset, s.broken)
	}
	if err := s.tracker.LaunchIfNecessary(ctx, s.setup); err != nil {
		s.broken = err
		s.Log.Error().Err(err).Str("dataset", s.Dataset).Msg("reinicio fallido, se abortan las pruebas restantes")
		return err
	}
	return nil
}

// Reset llama a Prepare y detiene t si falla.
func (s *DBSuite) Reset(t testing.TB) {
	t.Helper()
	require.NoError(t, s.Prepare(context.Background()), "reinicio de la base")
}

// SkipNextReset declara que la prueba en curso solo leyó la base.
func (s *DBSuite) SkipNextReset() { s.tracker.SkipNextLaunch() }

// ForceReset anula un SkipNextReset pendiente.
func (s *DBSuite) ForceReset() { s.tracker.ForceNextLaunch() }

// Launches reinicios efectivos hasta ahora.
func (s *DBSuite) Launches() int { return s.tracker.Launches() }

// Broken error que dejó la suite inutilizable, o nil.
func (s *DBSuite) Broken() error { return s.broken }

// Run ejecuta fn como subprueba name con la base recién reiniciada.
func (s *DBSuite) Run(t *testing.T, name string, fn func(t *testing.T)) bool {
	t.Helper()
	return t.Run(name, func(t *testing.T) {
		s.Reset(t)
		fn(t)
	})
}
