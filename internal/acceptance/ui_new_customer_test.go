package acceptance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/webapp-acceptance/internal/acceptance"
	"github.com/jhoicas/webapp-acceptance/internal/harness"
	"github.com/jhoicas/webapp-acceptance/internal/webapp"
)

func TestNewCustomer_ListaLosClientesAgregados(t *testing.T) {
	s := harness.NewWebSuite(t)
	ctx := context.Background()

	initial, err := s.Client.Customers(ctx)
	require.NoError(t, err)

	names := []string{"John Snow", "John Brown", "Joe Black"}
	for i, name := range names {
		acceptance.WithCustomer(t, s.Client, acceptance.ValidVATs[i], name, acceptance.CustomerPhone)
	}

	updated, err := s.Client.Customers(ctx)
	require.NoError(t, err)
	assert.Len(t, updated, len(initial)+len(names))

	for i, name := range names {
		vat := atoi(t, acceptance.ValidVATs[i])
		var found []webapp.CustomerRow
		for _, row := range updated {
			if row.VAT == vat {
				found = append(found, row)
			}
		}
		require.Len(t, found, 1, "NIF %d debe aparecer una sola vez", vat)
		assert.Equal(t, name, found[0].Designation)
		assert.Equal(t, atoi(t, acceptance.CustomerPhone), found[0].Phone)
	}
}
