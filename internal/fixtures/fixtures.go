// Package fixtures declara los estados iniciales de la base que usan las suites de aceptación.
package fixtures

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
)

// Nombres de los conjuntos de datos declarados en datasets.yaml.
const (
	CustomerSale         = "customer-sale"
	CustomerAddress      = "customer-address"
	CustomerSaleDelivery = "customer-sale-delivery"
)

// Valores conocidos de los datos iniciales.
const (
	Customer1VAT = 197672337

	NumInitCustomers  = 3
	NumInitSales      = 3
	NumInitAddresses  = 3
	NumInitDeliveries = 2
)

//go:embed datasets.yaml
var rawDatasets []byte

type tableData struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

// Dataset conjunto de tablas que se insertan juntas.
type Dataset struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tables      []string `yaml:"tables"`
}

// Catalog contenido de un archivo de datasets.
type Catalog struct {
	DeleteOrder []string    `yaml:"delete_order"`
	TableData   []tableData `yaml:"tables"`
	Datasets    []Dataset   `yaml:"datasets"`
}

// Parse lee y valida un catálogo YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.DeleteOrder) == 0 {
		return fmt.Errorf("fixtures: delete_order vacío")
	}
	for _, t := range c.TableData {
		if !slices.Contains(c.DeleteOrder, t.Name) {
			return fmt.Errorf("fixtures: tabla %s fuera de delete_order", t.Name)
		}
		for i, row := range t.Rows {
			if len(row) != len(t.Columns) {
				return fmt.Errorf("fixtures: %s fila %d: %d valores para %d columnas",
					t.Name, i+1, len(row), len(t.Columns))
			}
		}
	}
	for _, ds := range c.Datasets {
		for _, name := range ds.Tables {
			if c.table(name) == nil {
				return fmt.Errorf("fixtures: dataset %s referencia la tabla desconocida %s", ds.Name, name)
			}
		}
	}
	return nil
}

func (c *Catalog) table(name string) *tableData {
	for i := range c.TableData {
		if c.TableData[i].Name == name {
			return &c.TableData[i]
		}
	}
	return nil
}

// DeleteAll vacía todas las tablas del catálogo.
func (c *Catalog) DeleteAll() dbsetup.Operation {
	return dbsetup.DeleteAllFrom(c.DeleteOrder...)
}

// Insert devuelve las inserciones del dataset name, tabla por tabla en el orden declarado.
func (c *Catalog) Insert(name string) (dbsetup.Operation, error) {
	ds, ok := c.dataset(name)
	if !ok {
		return nil, fmt.Errorf("fixtures: dataset desconocido %q", name)
	}
	ops := make([]dbsetup.Operation, 0, len(ds.Tables))
	for _, tname := range ds.Tables {
		t := c.table(tname)
		b := dbsetup.InsertInto(t.Name).Columns(t.Columns...)
		for _, row := range t.Rows {
			b.Values(row...)
		}
		ops = append(ops, b.Build())
	}
	return dbsetup.SequenceOf(ops...), nil
}

// Reset borra todo e inserta el dataset name.
func (c *Catalog) Reset(name string) (dbsetup.Operation, error) {
	ins, err := c.Insert(name)
	if err != nil {
		return nil, err
	}
	return dbsetup.SequenceOf(c.DeleteAll(), ins), nil
}

// RowCounts filas que el dataset inserta por tabla.
func (c *Catalog) RowCounts(name string) (map[string]int, error) {
	ds, ok := c.dataset(name)
	if !ok {
		return nil, fmt.Errorf("fixtures: dataset desconocido %q", name)
	}
	out := make(map[string]int, len(ds.Tables))
	for _, tname := range ds.Tables {
		out[tname] = len(c.table(tname).Rows)
	}
	return out, nil
}

func (c *Catalog) dataset(name string) (Dataset, bool) {
	for _, ds := range c.Datasets {
		if ds.Name == name {
			return ds, true
		}
	}
	return Dataset{}, false
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Parse(rawDatasets)
})

// Default catálogo embebido. Un error aquí es un datasets.yaml mal escrito.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// DeleteAll vacía las tablas de la aplicación.
func DeleteAll() dbsetup.Operation {
	return Default().DeleteAll()
}

// InsertCustomerSaleData clientes y ventas.
func InsertCustomerSaleData() dbsetup.Operation {
	return mustInsert(CustomerSale)
}

// InsertCustomerAddressData clientes y direcciones.
func InsertCustomerAddressData() dbsetup.Operation {
	return mustInsert(CustomerAddress)
}

// InsertCustomerSaleDeliveryData clientes, direcciones, ventas y entregas.
func InsertCustomerSaleDeliveryData() dbsetup.Operation {
	return mustInsert(CustomerSaleDelivery)
}

func mustInsert(name string) dbsetup.Operation {
	op, err := Default().Insert(name)
	if err != nil {
		panic(err)
	}
	return op
}
