package entity

// Customer representa un cliente identificado por su NIF (VAT), único en el sistema.
type Customer struct {
	ID          int    `db:"id"`
	VAT         int    `db:"vat"`
	Designation string `db:"designation"`
	PhoneNumber int    `db:"phone_number"`
}
