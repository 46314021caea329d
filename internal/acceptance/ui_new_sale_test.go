package acceptance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/acceptance"
	"github.com/jhoicas/webapp-acceptance/internal/harness"
)

func TestNewSale_QuedaAbierta(t *testing.T) {
	s := harness.NewWebSuite(t)
	acceptance.WithDefaultCustomer(t, s.Client)
	ctx := context.Background()

	existing, err := s.Client.ExistingSaleIDs(ctx, acceptance.CustomerVAT)
	require.NoError(t, err)

	sale, err := s.Client.AddAndGetSale(ctx, acceptance.CustomerVAT)
	require.NoError(t, err)

	all, err := s.Client.Sales(ctx, acceptance.CustomerVAT)
	require.NoError(t, err)
	assert.Len(t, all, len(existing)+1)

	assert.Equal(t, atoi(t, acceptance.CustomerVAT), sale.CustomerVAT)
	assert.Equal(t, acceptance.SaleStatusOpen, sale.Status)
	assert.Equal(t, "0.0", sale.Total)
}
