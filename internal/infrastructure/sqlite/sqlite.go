// Package sqlite abre la base embebida usada cuando no hay una base de datos configurada.
package sqlite

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/sqlstore"
)

// DriverName nombre con el que modernc.org/sqlite se registra en database/sql.
const DriverName = "sqlite"

//go:embed schema.sql
var Schema string

func init() {
	sqlx.BindDriver(DriverName, sqlx.QUESTION)
}

// Open abre (o crea) la base en path y aplica el esquema.
// Con ":memory:" cada conexión tendría su propia base, así que el pool se limita a una.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := sqlstore.ApplySchema(ctx, db, Schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
