package dbsetup_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/sqlite"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

func openSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newDestination(t *testing.T, db *sqlx.DB) *dbsetup.DBDestination {
	t.Helper()
	dest, err := dbsetup.NewDBDestination(db, "memoria")
	require.NoError(t, err)
	return dest
}

func countRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

func TestLaunch_AplicaFixture(t *testing.T) {
	db := openSQLite(t)
	dest := newDestination(t, db)
	assert.Equal(t, dbsetup.SQLite, dest.Dialect())

	require.NoError(t, dbsetup.New(dest, samplePlan()).Launch(context.Background()))

	assert.Equal(t, 2, countRows(t, db, "customer"))
	assert.Equal(t, 1, countRows(t, db, "sale"))
}

func TestLaunch_Idempotente_MismosIDs(t *testing.T) {
	db := openSQLite(t)
	setup := dbsetup.New(newDestination(t, db), samplePlan())
	ctx := context.Background()

	require.NoError(t, setup.Launch(ctx))
	var first []int
	require.NoError(t, db.Select(&first, "SELECT id FROM customer ORDER BY id"))

	_, err := db.Exec("INSERT INTO customer (vat, designation, phone_number) VALUES (1, 'X', 1)")
	require.NoError(t, err)

	require.NoError(t, setup.Launch(ctx))
	var second []int
	require.NoError(t, db.Select(&second, "SELECT id FROM customer ORDER BY id"))

	assert.Equal(t, []int{1, 2}, first)
	assert.Equal(t, first, second, "relanzar el fixture reinicia los identificadores")
}

func TestLaunch_ErrorHaceRollback(t *testing.T) {
	db := openSQLite(t)
	dest := newDestination(t, db)
	ctx := context.Background()
	require.NoError(t, dbsetup.New(dest, samplePlan()).Launch(ctx))

	broken := dbsetup.SequenceOf(
		dbsetup.DeleteAllFrom("sale_delivery", "sale", "customer"),
		dbsetup.SQL("INSERT INTO tabla_inexistente VALUES (1)"),
	)
	var buf bytes.Buffer
	err := dbsetup.New(dest, broken, dbsetup.WithLogger(logger.NewWithWriter(&buf, "debug"))).Launch(ctx)

	require.Error(t, err)
	assert.Equal(t, 2, countRows(t, db, "customer"), "el borrado previo no debe quedar aplicado")
	assert.Contains(t, buf.String(), "launch_id")
}

func TestFingerprint(t *testing.T) {
	db := openSQLite(t)
	dest := newDestination(t, db)

	a := dbsetup.New(dest, samplePlan())
	b := dbsetup.New(dest, samplePlan())
	c := dbsetup.New(dest, dbsetup.DeleteAllFrom("customer"))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	other, err := dbsetup.NewDBDestination(db, "otra")
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), dbsetup.New(other, samplePlan()).Fingerprint())
}

type countingDestination struct {
	applied int
	err     error
}

func (d *countingDestination) Dialect() dbsetup.Dialect { return dbsetup.SQLite }
func (d *countingDestination) Name() string             { return "contador" }
func (d *countingDestination) Apply(context.Context, []dbsetup.Statement) error {
	if d.err != nil {
		return d.err
	}
	d.applied++
	return nil
}

func TestTracker_SinSkipSiempreLanza(t *testing.T) {
	dest := &countingDestination{}
	setup := dbsetup.New(dest, samplePlan())
	var tr dbsetup.Tracker
	ctx := context.Background()

	for range 3 {
		require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	}
	assert.Equal(t, 3, dest.applied)
	assert.Equal(t, 3, tr.Launches())
}

func TestTracker_SkipSoloParaElMismoSetup(t *testing.T) {
	dest := &countingDestination{}
	setup := dbsetup.New(dest, samplePlan())
	other := dbsetup.New(dest, dbsetup.DeleteAllFrom("customer"))
	var tr dbsetup.Tracker
	ctx := context.Background()

	require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	tr.SkipNextLaunch()
	require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	assert.Equal(t, 1, dest.applied, "la prueba anterior no modificó la base")

	require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	assert.Equal(t, 2, dest.applied, "la marca de salto se consume")

	tr.SkipNextLaunch()
	require.NoError(t, tr.LaunchIfNecessary(ctx, other))
	assert.Equal(t, 3, dest.applied, "un setup distinto se lanza aunque haya skip")
}

func TestTracker_ForceNextLaunch(t *testing.T) {
	dest := &countingDestination{}
	setup := dbsetup.New(dest, samplePlan())
	var tr dbsetup.Tracker
	ctx := context.Background()

	require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	tr.SkipNextLaunch()
	tr.ForceNextLaunch()
	require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	assert.Equal(t, 2, dest.applied)
}

func TestTracker_ErrorNoSeRecuerda(t *testing.T) {
	dest := &countingDestination{}
	setup := dbsetup.New(dest, samplePlan())
	var tr dbsetup.Tracker
	ctx := context.Background()

	require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	dest.err = errors.New("conexión perdida")
	require.Error(t, tr.LaunchIfNecessary(ctx, setup))

	dest.err = nil
	tr.SkipNextLaunch()
	require.NoError(t, tr.LaunchIfNecessary(ctx, setup))
	assert.Equal(t, 2, dest.applied, "tras un fallo el estado es desconocido y debe relanzarse")
}
