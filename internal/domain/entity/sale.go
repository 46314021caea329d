package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta tal como se persiste y se muestra en las páginas ("O"/"C").
type SaleStatus string

const (
	SaleOpen   SaleStatus = "O"
	SaleClosed SaleStatus = "C"
)

// String devuelve el nombre legible del estado.
func (s SaleStatus) String() string {
	switch s {
	case SaleOpen:
		return "Open"
	case SaleClosed:
		return "Closed"
	default:
		return string(s)
	}
}

// Sale venta de un cliente. Nace abierta con total cero y solo puede cerrarse.
type Sale struct {
	ID          int             `db:"id"`
	Date        time.Time       `db:"date"`
	Total       decimal.Decimal `db:"total"`
	Status      SaleStatus      `db:"status"`
	CustomerVAT int             `db:"customer_vat"`
}

// NewSale construye una venta abierta con total 0.
func NewSale(customerVAT int, now time.Time) *Sale {
	return &Sale{
		Date:        now,
		Total:       decimal.Zero,
		Status:      SaleOpen,
		CustomerVAT: customerVAT,
	}
}

// Close marca la venta como cerrada; cerrar una venta ya cerrada no cambia nada.
func (s *Sale) Close() {
	s.Status = SaleClosed
}

// IsOpen indica si la venta sigue abierta.
func (s *Sale) IsOpen() bool {
	return s.Status == SaleOpen
}
