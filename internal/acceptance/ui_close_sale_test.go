package acceptance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/acceptance"
	"github.com/jhoicas/webapp-acceptance/internal/harness"
)

func TestCloseSale_QuedaCerrada(t *testing.T) {
	s := harness.NewWebSuite(t)
	acceptance.WithDefaultCustomer(t, s.Client)
	ctx := context.Background()

	sale, err := s.Client.AddAndGetSale(ctx, acceptance.CustomerVAT)
	require.NoError(t, err)
	require.Equal(t, acceptance.SaleStatusOpen, sale.Status)

	_, err = s.Client.CloseSale(ctx, sale.ID)
	require.NoError(t, err)

	all, err := s.Client.AllSales(ctx)
	require.NoError(t, err)
	for _, row := range all {
		if row.ID == sale.ID {
			assert.Equal(t, acceptance.SaleStatusClosed, row.Status, "venta %d", sale.ID)
			return
		}
	}
	t.Fatalf("venta cerrada %d no encontrada", sale.ID)
}
