package dbsetup

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Destination base de datos sobre la que se aplica un fixture.
type Destination interface {
	Dialect() Dialect
	// Name identifica la base para distinguir fixtures iguales sobre destinos distintos.
	Name() string
	// Apply ejecuta todas las sentencias en una única transacción.
	Apply(ctx context.Context, stmts []Statement) error
}

// DBDestination Destination sobre una conexión sqlx.
type DBDestination struct {
	db      *sqlx.DB
	dialect Dialect
	name    string
}

// NewDBDestination deduce el dialecto a partir del driver de db.
func NewDBDestination(db *sqlx.DB, name string) (*DBDestination, error) {
	d, err := DialectOf(db.DriverName())
	if err != nil {
		return nil, err
	}
	return &DBDestination{db: db, dialect: d, name: name}, nil
}

func (d *DBDestination) Dialect() Dialect { return d.dialect }

func (d *DBDestination) Name() string { return d.name }

// Apply ejecuta las sentencias dentro de una transacción; ante el primer error hace rollback.
func (d *DBDestination) Apply(ctx context.Context, stmts []Statement) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.SQL, st.Args...); err != nil {
			return fmt.Errorf("sentencia %d (%s): %w", i+1, st.SQL, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
