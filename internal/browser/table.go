package browser

import (
	"fmt"
	"iter"

	"github.com/PuerkitoBio/goquery"
)

// Table contenido textual de una tabla HTML. La fila 0 es la de títulos.
type Table struct {
	ID   string
	rows [][]string
}

func newTable(id string, s *goquery.Selection) *Table {
	t := &Table{ID: id}
	// Solo filas propias: una tabla anidada no aporta filas a la exterior.
	s.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsSelection(s)
	}).Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.ChildrenFiltered("td, th").Each(func(_ int, c *goquery.Selection) {
			cells = append(cells, cleanText(c.Text()))
		})
		t.rows = append(t.rows, cells)
	})
	return t
}

// RowCount filas totales, incluida la de títulos.
func (t *Table) RowCount() int { return len(t.rows) }

// Header fila de títulos; nil si la tabla está vacía.
func (t *Table) Header() []string {
	if len(t.rows) == 0 {
		return nil
	}
	return t.rows[0]
}

// DataRows filas de datos (todas menos la 0).
func (t *Table) DataRows() [][]string {
	if len(t.rows) <= 1 {
		return nil
	}
	return t.rows[1:]
}

// Row fila i (0 es la de títulos).
func (t *Table) Row(i int) ([]string, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("%w: fila %d de la tabla %s (%d filas)", ErrNotFound, i, t.ID, len(t.rows))
	}
	return t.rows[i], nil
}

// Column valores de la columna col en las filas de datos.
func (t *Table) Column(col int) []string {
	var out []string
	for _, row := range t.DataRows() {
		if col < len(row) {
			out = append(out, row[col])
		}
	}
	return out
}

// DataRowCount filas de datos de la tabla id en p; 0 si la página no la tiene.
func DataRowCount(p *Page, id string) int {
	t, ok := p.TableByID(id)
	if !ok {
		return 0
	}
	return len(t.DataRows())
}

// Records recorre las filas de datos decodificadas con decode, en orden, sin materializarlas.
// Una fila que no decodifica se entrega con su error y el recorrido continúa.
func Records[T any](t *Table, decode func(cells []string) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i, row := range t.DataRows() {
			rec, err := decode(row)
			if err != nil {
				err = fmt.Errorf("tabla %s fila %d: %w", t.ID, i+1, err)
			}
			if !yield(rec, err) {
				return
			}
		}
	}
}

// Collect junta todos los registros; devuelve el primer error de decodificación.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
