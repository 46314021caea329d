// Package database abre la base configurada (PostgreSQL real o SQLite embebida) detrás de sqlx.
package database

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/postgres"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/sqlite"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/sqlstore"
	"github.com/jhoicas/webapp-acceptance/pkg/config"
)

// Database conexión abierta más lo necesario para cerrarla.
type Database struct {
	DB     *sqlx.DB
	cfg    config.DBConfig
	closer func()
}

// Open conecta según cfg.Driver. La base embebida ya viene con el esquema aplicado.
func Open(ctx context.Context, cfg config.DBConfig) (*Database, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Database{DB: db, cfg: cfg, closer: func() { _ = db.Close() }}, nil
	case config.DriverPostgres:
		db, closer, err := postgres.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Database{DB: db, cfg: cfg, closer: closer}, nil
	default:
		return nil, fmt.Errorf("database: driver no soportado %q", cfg.Driver)
	}
}

// Migrate crea las tablas que falten.
func (d *Database) Migrate(ctx context.Context) error {
	if d.cfg.Driver == config.DriverPostgres {
		return postgres.Migrate(ctx, d.DB)
	}
	return sqlstore.ApplySchema(ctx, d.DB, sqlite.Schema)
}

// Name identifica la base en los logs y en el fingerprint de los fixtures.
func (d *Database) Name() string {
	if d.cfg.Driver == config.DriverSQLite {
		return "sqlite:" + d.cfg.SQLitePath
	}
	if d.cfg.DatabaseURL == "" {
		return fmt.Sprintf("postgres:%s:%d/%s", d.cfg.Host, d.cfg.Port, d.cfg.DBName)
	}
	u, err := url.Parse(d.cfg.DatabaseURL)
	if err != nil {
		return "postgres"
	}
	return "postgres:" + u.Host + u.Path
}

// Repos repositorios sobre la conexión.
func (d *Database) Repos() repository.Repos {
	return sqlstore.NewRepos(d.DB)
}

// TxRunner runner de transacciones sobre la conexión.
func (d *Database) TxRunner() *sqlstore.TxRunner {
	return sqlstore.NewTxRunner(d.DB)
}

// Destination destino de fixtures sobre la conexión.
func (d *Database) Destination() (*dbsetup.DBDestination, error) {
	return dbsetup.NewDBDestination(d.DB, d.Name())
}

// Close libera la conexión (y el pool en PostgreSQL).
func (d *Database) Close() {
	if d.closer != nil {
		d.closer()
	}
}
