package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/database"
	"github.com/jhoicas/webapp-acceptance/pkg/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, config.DBConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(ctx), "migrar dos veces no falla")
	assert.Equal(t, "sqlite::memory:", db.Name())

	dest, err := db.Destination()
	require.NoError(t, err)
	assert.Equal(t, dbsetup.SQLite, dest.Dialect())

	list, err := db.Repos().Customers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := database.Open(context.Background(), config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}
