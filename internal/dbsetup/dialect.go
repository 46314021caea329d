package dbsetup

import "fmt"

// Dialect dialecto SQL para el que se generan las sentencias.
type Dialect int

const (
	Postgres Dialect = iota + 1
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// DialectOf deduce el dialecto a partir del nombre del driver de database/sql.
func DialectOf(driverName string) (Dialect, error) {
	switch driverName {
	case "pgx", "postgres":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return 0, fmt.Errorf("dbsetup: driver sin dialecto conocido: %q", driverName)
	}
}
