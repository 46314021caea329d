package dto

// AddressDTO dirección de un cliente. ID es cero al crearla.
type AddressDTO struct {
	ID          int    `json:"id"`
	CustomerVAT int    `json:"customer_vat"`
	Address     string `json:"address"`
	Door        string `json:"door"`
	PostalCode  string `json:"postal_code"`
	Locality    string `json:"locality"`
}

// AddressesDTO direcciones de un cliente.
type AddressesDTO struct {
	Addresses []AddressDTO `json:"addresses"`
}
