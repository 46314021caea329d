package entity

// SaleDelivery entrega de una venta en una dirección. CustomerVAT se fija al insertar.
type SaleDelivery struct {
	ID          int `db:"id"`
	SaleID      int `db:"sale_id"`
	AddressID   int `db:"address_id"`
	CustomerVAT int `db:"customer_vat"`
}
