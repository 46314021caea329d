package webapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSale(t *testing.T) {
	row, err := decodeSale([]string{"7", "2018-01-02", "0.0", "O", "197672337"})
	require.NoError(t, err)
	assert.Equal(t, SaleRow{ID: 7, Date: "2018-01-02", Total: "0.0", Status: "O", CustomerVAT: 197672337}, row)

	_, err = decodeSale([]string{"x", "2018-01-02", "0.0", "O", "197672337"})
	assert.ErrorContains(t, err, "id")

	_, err = decodeSale([]string{"7", "2018-01-02"})
	assert.ErrorContains(t, err, "se esperaban 5")
}

func TestDecodeAddressOption_SeparaElID(t *testing.T) {
	opt, err := decodeAddressOption([]string{"3", "Avenida da Liberdade", "3", "1250-096", "Lisboa"})
	require.NoError(t, err)
	assert.Equal(t, 3, opt.ID)
	assert.Equal(t, "Lisboa", opt.Locality)
}

func TestDecodeCustomer_TelefonoNoNumerico(t *testing.T) {
	_, err := decodeCustomer([]string{"FCUL", "abc", "503183504"})
	assert.ErrorContains(t, err, "phone")
}
