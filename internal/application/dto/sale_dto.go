package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleDTO venta tal como la devuelve la capa de servicios.
// Status usa la codificación de las páginas: "O" abierta, "C" cerrada.
type SaleDTO struct {
	ID          int             `json:"id"`
	Date        time.Time       `json:"date"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	CustomerVAT int             `json:"customer_vat"`
}

// SalesDTO lista de ventas.
type SalesDTO struct {
	Sales []SaleDTO `json:"sales"`
}

// SaleDeliveryDTO entrega de una venta.
type SaleDeliveryDTO struct {
	ID          int `json:"id"`
	SaleID      int `json:"sale_id"`
	AddressID   int `json:"address_id"`
	CustomerVAT int `json:"customer_vat"`
}

// SalesDeliveryDTO entregas de un cliente.
type SalesDeliveryDTO struct {
	SalesDelivery []SaleDeliveryDTO `json:"sales_delivery"`
}

// Has indica si la lista contiene la entrega con ese id.
func (s SalesDeliveryDTO) Has(id int) bool {
	for _, d := range s.SalesDelivery {
		if d.ID == id {
			return true
		}
	}
	return false
}
