package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/webapp-acceptance/internal/domain"
)

func TestValidVAT(t *testing.T) {
	for _, vat := range []int{197672337, 168027852, 234567899, 503183504, 108136701, 108136710, 108136728} {
		assert.True(t, domain.ValidVAT(vat), "%d debería ser válido", vat)
	}
	for _, vat := range []int{0, 12345678, 1234567890, 197672336, 403183504, 712345678} {
		assert.False(t, domain.ValidVAT(vat), "%d debería ser inválido", vat)
	}
}
