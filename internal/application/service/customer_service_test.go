package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/application/dto"
	"github.com/jhoicas/webapp-acceptance/internal/domain"
	"github.com/jhoicas/webapp-acceptance/internal/fixtures"
)

func TestAddCustomer_NIFDuplicado(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	cs := e.svc.Customers

	err := cs.AddCustomer(ctx, fixtures.Customer1VAT, "FCUL", 217500000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrApplication))
	assert.ErrorIs(t, err, domain.ErrDuplicateVAT)

	all, err := cs.GetAllCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, all.Customers, fixtures.NumInitCustomers)
}

func TestAddCustomer_Validaciones(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()

	assert.ErrorIs(t, e.svc.Customers.AddCustomer(ctx, 123, "X", 1), domain.ErrApplication)
	assert.ErrorIs(t, e.svc.Customers.AddCustomer(ctx, 503183504, "  ", 1), domain.ErrInvalidInput)
}

func TestAddCustomer_DuplicadoNoModificaElOriginal(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	cs := e.svc.Customers

	require.NoError(t, cs.AddCustomer(ctx, 503183504, "FCUL", 217500000))
	err := cs.AddCustomer(ctx, 503183504, "TESTE", 217500001)
	assert.ErrorIs(t, err, domain.ErrApplication)

	got, err := cs.GetCustomerByVat(ctx, 503183504)
	require.NoError(t, err)
	assert.Equal(t, "FCUL", got.Designation)
	assert.Equal(t, 217500000, got.PhoneNumber)
}

func TestUpdateCustomerPhone(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	cs := e.svc.Customers

	before, err := cs.GetCustomerByVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	require.NoError(t, cs.UpdateCustomerPhone(ctx, fixtures.Customer1VAT, before.PhoneNumber+1))

	after, err := cs.GetCustomerByVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	assert.Equal(t, before.PhoneNumber+1, after.PhoneNumber)

	assert.ErrorIs(t, cs.UpdateCustomerPhone(ctx, 503183504, 1), domain.ErrCustomerNotFound)
}

func TestAddCustomer_TelefonoDeDiezDigitos(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	cs := e.svc.Customers

	const phone = 9_999_999_999
	require.NoError(t, cs.AddCustomer(ctx, 503183504, "FCUL", phone))
	got, err := cs.GetCustomerByVat(ctx, 503183504)
	require.NoError(t, err)
	assert.Equal(t, phone, got.PhoneNumber)
}

func TestRemoveCustomer_BorraVentasYDirecciones(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSaleDelivery)
	ctx := context.Background()
	cs, ss := e.svc.Customers, e.svc.Sales

	sales, err := ss.GetSaleByCustomerVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	require.NotEmpty(t, sales.Sales)
	deliveries, err := ss.GetSalesDeliveryByVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)

	require.NoError(t, cs.RemoveCustomer(ctx, fixtures.Customer1VAT))

	has, err := cs.HasClient(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	assert.False(t, has)
	sales, err = ss.GetSaleByCustomerVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	assert.Empty(t, sales.Sales)
	addrs, err := cs.GetAllAddresses(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	assert.Empty(t, addrs.Addresses)

	kept, err := ss.GetSalesDeliveryByVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	assert.Equal(t, deliveries, kept, "las entregas conservan el NIF registrado")
}

func TestRemoveCustomer_Inexistente(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	err := e.svc.Customers.RemoveCustomer(context.Background(), 503183504)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestRemoveCustomer_PuedeVolverAAgregarse(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	cs := e.svc.Customers

	c, err := cs.GetCustomerByVat(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	require.NoError(t, cs.RemoveCustomer(ctx, c.VAT))
	require.NoError(t, cs.AddCustomer(ctx, c.VAT, c.Designation, c.PhoneNumber))

	has, err := cs.HasClient(ctx, c.VAT)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestGetCustomerByVat_Inexistente(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	_, err := e.svc.Customers.GetCustomerByVat(context.Background(), 503183504)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestGetFirstCustomerVat(t *testing.T) {
	e := newEnv(t, fixtures.CustomerSale)
	ctx := context.Background()
	cs := e.svc.Customers

	vat, err := cs.GetFirstCustomerVat(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixtures.Customer1VAT, vat)

	all, err := cs.GetAllCustomers(ctx)
	require.NoError(t, err)
	for _, v := range all.VATs() {
		require.NoError(t, cs.RemoveCustomer(ctx, v))
	}
	_, err = cs.GetFirstCustomerVat(ctx)
	assert.ErrorIs(t, err, domain.ErrApplication)
}

func TestAddAddressToCustomer(t *testing.T) {
	e := newEnv(t, fixtures.CustomerAddress)
	ctx := context.Background()
	cs := e.svc.Customers

	before, err := cs.GetAllAddresses(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)

	in := dto.AddressDTO{Address: "Rua Casal Ribeiro", Door: "111", PostalCode: "1234-123", Locality: "Lisboa"}
	id, err := cs.AddAddressToCustomer(ctx, fixtures.Customer1VAT, in)
	require.NoError(t, err)
	assert.Equal(t, fixtures.NumInitAddresses+1, id)

	after, err := cs.GetAllAddresses(ctx, fixtures.Customer1VAT)
	require.NoError(t, err)
	require.Len(t, after.Addresses, len(before.Addresses)+1)
	last := after.Addresses[len(after.Addresses)-1]
	assert.Equal(t, "Rua Casal Ribeiro", last.Address)
	assert.Equal(t, fixtures.Customer1VAT, last.CustomerVAT)

	_, err = cs.AddAddressToCustomer(ctx, 503183504, in)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	_, err = cs.AddAddressToCustomer(ctx, fixtures.Customer1VAT, dto.AddressDTO{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
