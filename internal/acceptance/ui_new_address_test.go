package acceptance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/acceptance"
	"github.com/jhoicas/webapp-acceptance/internal/browser"
	"github.com/jhoicas/webapp-acceptance/internal/harness"
	"github.com/jhoicas/webapp-acceptance/internal/webapp"
)

func TestNewAddress_AgregaUnaFila(t *testing.T) {
	s := harness.NewWebSuite(t)
	acceptance.WithDefaultCustomer(t, s.Client)
	ctx := context.Background()

	info, err := s.Client.CustomerInfoPage(ctx, acceptance.CustomerVAT)
	require.NoError(t, err)
	initialRows := browser.DataRowCount(info, webapp.TableAddressList)

	addr := webapp.AddressRow{Address: "address", Door: "12", PostalCode: "123-456", Locality: "locality"}
	report, err := s.Client.AddAddressToCustomer(ctx, acceptance.CustomerVAT, addr)
	require.NoError(t, err)
	text := report.Text()
	for _, want := range []string{acceptance.CustomerVAT, addr.Address, addr.Door, addr.PostalCode, addr.Locality} {
		assert.Contains(t, text, want)
	}

	updated, err := s.Client.CustomerInfoPage(ctx, acceptance.CustomerVAT)
	require.NoError(t, err)
	assert.Equal(t, initialRows+1, browser.DataRowCount(updated, webapp.TableAddressList))

	addrs, err := s.Client.Addresses(ctx, acceptance.CustomerVAT)
	require.NoError(t, err)
	assert.Contains(t, addrs, addr)
}
