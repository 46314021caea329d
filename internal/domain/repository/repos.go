package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Customers  CustomerRepository
	Addresses  AddressRepository
	Sales      SaleRepository
	Deliveries SaleDeliveryRepository
}
