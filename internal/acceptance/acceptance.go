// Package acceptance reúne las suites de aceptación: contra la base a través del canal de
// servicios y contra las páginas a través del navegador. Este archivo solo contiene los
// datos y pasos compartidos por las suites de UI.
package acceptance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/webapp"
)

// Cliente que cada prueba de UI crea al empezar y elimina al terminar.
const (
	CustomerVAT         = "503183504"
	CustomerDesignation = "FCUL"
	CustomerPhone       = "217500000"
)

// ValidVATs NIF válidos que no aparecen en ningún dataset.
var ValidVATs = []string{"108136701", "108136710", "108136728", "108136736", "108136744"}

// Estados de venta tal como los muestran las páginas.
const (
	SaleStatusOpen   = "O"
	SaleStatusClosed = "C"
)

// WithCustomer da de alta vat y programa su baja al terminar t.
func WithCustomer(t *testing.T, c *webapp.Client, vat, designation, phone string) {
	t.Helper()
	ctx := context.Background()
	_, err := c.AddCustomer(ctx, vat, designation, phone)
	require.NoError(t, err, "alta del cliente %s", vat)
	t.Cleanup(func() {
		if _, err := c.RemoveCustomer(ctx, vat); err != nil {
			t.Errorf("baja del cliente %s: %v", vat, err)
		}
	})
}

// WithDefaultCustomer alta del cliente CustomerVAT.
func WithDefaultCustomer(t *testing.T, c *webapp.Client) {
	t.Helper()
	WithCustomer(t, c, CustomerVAT, CustomerDesignation, CustomerPhone)
}
