package entity

// Address dirección de texto libre asociada a un cliente.
type Address struct {
	ID          int    `db:"id"`
	CustomerVAT int    `db:"customer_vat"`
	Address     string `db:"address"`
	Door        string `db:"door"`
	PostalCode  string `db:"postal_code"`
	Locality    string `db:"locality"`
}
