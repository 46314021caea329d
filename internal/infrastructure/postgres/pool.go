package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/sqlstore"
	"github.com/jhoicas/webapp-acceptance/pkg/config"
)

// DriverName nombre del driver pgx en database/sql.
const DriverName = "pgx"

//go:embed schema.sql
var Schema string

// NewPool crea un pool de conexiones PostgreSQL usando la configuración del harness.
// Las pruebas son secuenciales, así que el pool es pequeño.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC/DECIMAL -> shopspring/decimal (todas las conexiones del pool).
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// Open crea el pool y lo expone como *sqlx.DB (driver pgx vía stdlib).
// El cierre de la DB devuelta no cierra el pool: usar el closer.
func Open(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, func(), error) {
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	db := sqlx.NewDb(stdlib.OpenDBFromPool(pool), DriverName)
	closer := func() {
		_ = db.Close()
		pool.Close()
	}
	return db, closer, nil
}

// Migrate aplica el esquema mínimo (idempotente).
func Migrate(ctx context.Context, db *sqlx.DB) error {
	return sqlstore.ApplySchema(ctx, db, Schema)
}
