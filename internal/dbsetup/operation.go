package dbsetup

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Statement sentencia lista para ejecutar.
type Statement struct {
	SQL  string
	Args []any
}

func (s Statement) String() string {
	if len(s.Args) == 0 {
		return s.SQL
	}
	return fmt.Sprintf("%s %v", s.SQL, s.Args)
}

// Operation produce las sentencias de un paso del fixture para un dialecto.
type Operation interface {
	Statements(d Dialect) []Statement
}

type deleteAll struct {
	tables []string
}

// DeleteAllFrom borra todas las filas de las tablas, en el orden dado (hijas primero).
// En PostgreSQL además reinicia las secuencias de identificadores.
func DeleteAllFrom(tables ...string) Operation {
	return deleteAll{tables: append([]string(nil), tables...)}
}

func (o deleteAll) Statements(d Dialect) []Statement {
	if len(o.tables) == 0 {
		return nil
	}
	if d == Postgres {
		return []Statement{{SQL: "TRUNCATE TABLE " + strings.Join(o.tables, ", ") + " RESTART IDENTITY CASCADE"}}
	}
	out := make([]Statement, 0, len(o.tables))
	for _, t := range o.tables {
		out = append(out, Statement{SQL: "DELETE FROM " + t})
	}
	return out
}

// Insert inserta filas fijas en una tabla, una sentencia por fila.
type Insert struct {
	table   string
	columns []string
	rows    [][]any
}

// InsertBuilder construye un Insert.
type InsertBuilder struct {
	ins Insert
}

// InsertInto empieza un Insert sobre table.
func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{ins: Insert{table: table}}
}

// Columns fija las columnas; debe llamarse antes de Values.
func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.ins.columns = append(b.ins.columns, columns...)
	return b
}

// Values agrega una fila. Entra en pánico si la aridad no coincide con las columnas:
// los fixtures son estáticos y un error aquí es de programación.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	if len(values) != len(b.ins.columns) {
		panic(fmt.Sprintf("dbsetup: insert into %s: %d valores para %d columnas",
			b.ins.table, len(values), len(b.ins.columns)))
	}
	b.ins.rows = append(b.ins.rows, append([]any(nil), values...))
	return b
}

// Build devuelve la operación.
func (b *InsertBuilder) Build() *Insert {
	ins := b.ins
	return &ins
}

// Table nombre de la tabla destino.
func (i *Insert) Table() string { return i.table }

// RowCount cantidad de filas que inserta.
func (i *Insert) RowCount() int { return len(i.rows) }

func (i *Insert) Statements(d Dialect) []Statement {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(i.columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", i.table, strings.Join(i.columns, ", "), marks)
	if d == Postgres {
		query = sqlx.Rebind(sqlx.DOLLAR, query)
	}
	out := make([]Statement, 0, len(i.rows))
	for _, row := range i.rows {
		out = append(out, Statement{SQL: query, Args: row})
	}
	return out
}

type rawSQL struct {
	stmts []string
}

// SQL ejecuta sentencias literales, iguales para todos los dialectos.
func SQL(statements ...string) Operation {
	return rawSQL{stmts: append([]string(nil), statements...)}
}

func (o rawSQL) Statements(Dialect) []Statement {
	out := make([]Statement, 0, len(o.stmts))
	for _, s := range o.stmts {
		out = append(out, Statement{SQL: s})
	}
	return out
}

type sequence struct {
	ops []Operation
}

// SequenceOf encadena operaciones en orden.
func SequenceOf(ops ...Operation) Operation {
	var flat []Operation
	for _, op := range ops {
		if seq, ok := op.(sequence); ok {
			flat = append(flat, seq.ops...)
			continue
		}
		flat = append(flat, op)
	}
	return sequence{ops: flat}
}

func (o sequence) Statements(d Dialect) []Statement {
	var out []Statement
	for _, op := range o.ops {
		out = append(out, op.Statements(d)...)
	}
	return out
}

// Render devuelve las sentencias de op, una por línea.
func Render(op Operation, d Dialect) string {
	var b strings.Builder
	for _, st := range op.Statements(d) {
		b.WriteString(st.String())
		b.WriteByte('\n')
	}
	return b.String()
}
