package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/domain"
	"github.com/jhoicas/webapp-acceptance/internal/fixtures"
)

func TestAddSale_NuevaVentaAbiertaConTotalCero(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	ss := e.svc.Sales

	id, err := ss.AddSale(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	assert.Equal(t, fixtures.NumInitSales+1, id)

	sales, err := ss.GetSaleByCustomerVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	last := sales.Sales[len(sales.Sales)-1]
	assert.Equal(t, id, last.ID)
	assert.Equal(t, "O", last.Status)
	assert.Equal(t, "0.0", last.Total.StringFixed(1))
	assert.True(t, last.Date.Equal(time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)), "la fecha es la del día: %v", last.Date)
}

func TestAddSale_ClienteInexistente(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	_, err := e.svc.Sales.AddSale(context.Background(), 503183504)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestAddSale_IncrementaElTotalGlobal(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()

	vat, err := e.svc.Customers.GetFirstCustomerVat(ctx)
	require.NoError(t, err)
	_, err = e.svc.Sales.AddSale(ctx, vat)
	require.NoError(t, err)

	all, err := e.svc.Sales.GetAllSales(ctx)
	require.NoError(t, err)
	assert.Len(t, all.Sales, fixtures.NumInitSales+1)
}

func TestUpdateSale_CierraLaVenta(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	ss := e.svc.Sales

	id, err := ss.AddSale(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	require.NoError(t, ss.UpdateSale(ctx, id))
	require.NoError(t, ss.UpdateSale(ctx, id), "cerrar una venta cerrada no falla")

	sales, err := ss.GetSaleByCustomerVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	for _, s := range sales.Sales {
		if s.ID == id {
			assert.Equal(t, "C", s.Status)
			return
		}
	}
	t.Fatalf("venta %d no encontrada", id)
}

func TestUpdateSale_Inexistente(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()

	has, err := e.svc.Sales.HasSale(ctx, 20)
	require.NoError(t, err)
	require.False(t, has)
	assert.ErrorIs(t, e.svc.Sales.UpdateSale(ctx, 20), domain.ErrApplication)
}

func TestAddSaleDelivery(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSaleDelivery)
	ctx := context.Background()
	ss := e.svc.Sales

	id, err := ss.AddSaleDelivery(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, fixtures.NumInitDeliveries+1, id)

	got, err := ss.GetSalesDeliveryByVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	assert.True(t, got.Has(id), "la entrega queda con el NIF del dueño de la venta")

	_, err = ss.AddSaleDelivery(ctx, 99, 1)
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
	_, err = ss.AddSaleDelivery(ctx, 1, 99)
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestGetSaleByCustomerVat_NIFInvalido(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	_, err := e.svc.Sales.GetSaleByCustomerVat(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
