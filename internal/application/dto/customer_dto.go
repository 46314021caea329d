package dto

// CustomerDTO cliente tal como lo devuelve la capa de servicios.
type CustomerDTO struct {
	ID          int    `json:"id"`
	VAT         int    `json:"vat"`
	Designation string `json:"designation"`
	PhoneNumber int    `json:"phone_number"`
}

// CustomersDTO lista completa de clientes.
type CustomersDTO struct {
	Customers []CustomerDTO `json:"customers"`
}

// VATs devuelve los NIF de la lista en el mismo orden.
func (c CustomersDTO) VATs() []int {
	out := make([]int, 0, len(c.Customers))
	for _, cust := range c.Customers {
		out = append(out, cust.VAT)
	}
	return out
}
