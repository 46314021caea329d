package webapp

import (
	"fmt"
	"strconv"
)

// Identificadores de las tablas que publican las páginas.
const (
	TableClients      = "clients"
	TableAddressList  = "address-list"
	TableSaleList     = "sale-list"
	TableDeliveryList = "sale-delivery-list"
)

// CustomerRow fila de "clients": nombre, teléfono, NIF.
type CustomerRow struct {
	Designation string
	Phone       int
	VAT         int
}

// SaleRow fila de "sale-list". Total y Status se conservan como texto: "0.0", "O", "C".
type SaleRow struct {
	ID          int
	Date        string
	Total       string
	Status      string
	CustomerVAT int
}

// AddressRow fila de "address-list" en la página del cliente.
type AddressRow struct {
	Address    string
	Door       string
	PostalCode string
	Locality   string
}

// AddressOption fila de "address-list" en la página de entregas, que además trae el id.
type AddressOption struct {
	ID int
	AddressRow
}

// DeliveryRow fila de "sale-delivery-list".
type DeliveryRow struct {
	ID        int
	SaleID    int
	AddressID int
}

func need(cells []string, n int) error {
	if len(cells) < n {
		return fmt.Errorf("%d celdas, se esperaban %d", len(cells), n)
	}
	return nil
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q no es un número", field, s)
	}
	return n, nil
}

func decodeCustomer(cells []string) (CustomerRow, error) {
	if err := need(cells, 3); err != nil {
		return CustomerRow{}, err
	}
	phone, err := atoi("phone", cells[1])
	if err != nil {
		return CustomerRow{}, err
	}
	vat, err := atoi("vat", cells[2])
	if err != nil {
		return CustomerRow{}, err
	}
	return CustomerRow{Designation: cells[0], Phone: phone, VAT: vat}, nil
}

func decodeSale(cells []string) (SaleRow, error) {
	if err := need(cells, 5); err != nil {
		return SaleRow{}, err
	}
	id, err := atoi("id", cells[0])
	if err != nil {
		return SaleRow{}, err
	}
	vat, err := atoi("customer vat", cells[4])
	if err != nil {
		return SaleRow{}, err
	}
	return SaleRow{ID: id, Date: cells[1], Total: cells[2], Status: cells[3], CustomerVAT: vat}, nil
}

func decodeAddress(cells []string) (AddressRow, error) {
	if err := need(cells, 4); err != nil {
		return AddressRow{}, err
	}
	return AddressRow{Address: cells[0], Door: cells[1], PostalCode: cells[2], Locality: cells[3]}, nil
}

func decodeAddressOption(cells []string) (AddressOption, error) {
	if err := need(cells, 5); err != nil {
		return AddressOption{}, err
	}
	id, err := atoi("id", cells[0])
	if err != nil {
		return AddressOption{}, err
	}
	addr, err := decodeAddress(cells[1:])
	if err != nil {
		return AddressOption{}, err
	}
	return AddressOption{ID: id, AddressRow: addr}, nil
}

func decodeDelivery(cells []string) (DeliveryRow, error) {
	if err := need(cells, 3); err != nil {
		return DeliveryRow{}, err
	}
	var out DeliveryRow
	var err error
	if out.ID, err = atoi("id", cells[0]); err != nil {
		return DeliveryRow{}, err
	}
	if out.SaleID, err = atoi("sale id", cells[1]); err != nil {
		return DeliveryRow{}, err
	}
	if out.AddressID, err = atoi("address id", cells[2]); err != nil {
		return DeliveryRow{}, err
	}
	return out, nil
}
