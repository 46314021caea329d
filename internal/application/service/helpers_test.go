package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/application/service"
	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/internal/fixtures"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/database"
	"github.com/jhoicas/webapp-acceptance/pkg/config"
)

var fixedNow = time.Date(2024, 5, 17, 15, 30, 0, 0, time.UTC)

type env struct {
	db    *database.Database
	dest  dbsetup.Destination
	svc   *service.Services
	reset func(t require.TestingT)
}

// newEnv abre una base embebida y devuelve un reset que la deja con el dataset indicado.
func newEnv(t *testing.T, dataset string) *env {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	dest, err := db.Destination()
	require.NoError(t, err)
	op, err := fixtures.Default().Reset(dataset)
	require.NoError(t, err)
	setup := dbsetup.New(dest, op)

	e := &env{
		db:   db,
		dest: dest,
		svc: service.New(db.Repos(), db.TxRunner(),
			service.WithClock(func() time.Time { return fixedNow })),
		reset: func(t require.TestingT) {
			require.NoError(t, setup.Launch(ctx))
		},
	}
	e.reset(t)
	return e
}
