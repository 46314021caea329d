package sqlstore

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// Querier es lo que necesitan los repositorios: *sqlx.DB o *sqlx.Tx.
// Las consultas se escriben con `?` y se adaptan al driver con Rebind.
type Querier interface {
	sqlx.ExtContext
}

// isUniqueViolation verifica si un error es una violación de constraint único
// (23505 en PostgreSQL, "UNIQUE constraint failed" en SQLite).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}
