package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ApplySchema ejecuta un script DDL sentencia por sentencia (separadas por `;`).
// Los scripts son idempotentes: aplicarlos dos veces no cambia nada.
func ApplySchema(ctx context.Context, db *sqlx.DB, ddl string) error {
	for _, stmt := range SplitStatements(ddl) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// SplitStatements separa un script SQL simple (sin `;` dentro de literales) y descarta
// líneas de comentario `--`.
func SplitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
