package service

import (
	"context"
	"strings"

	"github.com/jhoicas/webapp-acceptance/internal/application/dto"
	"github.com/jhoicas/webapp-acceptance/internal/domain"
	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
)

// CustomerService operaciones sobre clientes y sus direcciones.
type CustomerService struct {
	repos repository.Repos
	tx    TxRunner
}

// NewCustomerService construye el servicio. repos se usa para lecturas y escrituras simples.
func NewCustomerService(repos repository.Repos, tx TxRunner) *CustomerService {
	return &CustomerService{repos: repos, tx: tx}
}

// AddCustomer registra un cliente nuevo. Falla si el NIF es inválido o ya existe.
func (s *CustomerService) AddCustomer(ctx context.Context, vat int, designation string, phone int) error {
	if !domain.ValidVAT(vat) || strings.TrimSpace(designation) == "" {
		return domain.ErrInvalidInput
	}
	return s.repos.Customers.Create(ctx, &entity.Customer{
		VAT:         vat,
		Designation: designation,
		PhoneNumber: phone,
	})
}

// UpdateCustomerPhone cambia el teléfono de un cliente existente.
func (s *CustomerService) UpdateCustomerPhone(ctx context.Context, vat, phone int) error {
	if !domain.ValidVAT(vat) {
		return domain.ErrInvalidInput
	}
	return s.repos.Customers.UpdatePhone(ctx, vat, phone)
}

// RemoveCustomer borra el cliente junto con sus ventas y direcciones.
// Las entregas conservan el NIF registrado y siguen visibles por NIF.
func (s *CustomerService) RemoveCustomer(ctx context.Context, vat int) error {
	if !domain.ValidVAT(vat) {
		return domain.ErrInvalidInput
	}
	return s.tx.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Sales.DeleteByCustomer(ctx, vat); err != nil {
			return err
		}
		if err := repos.Addresses.DeleteByCustomer(ctx, vat); err != nil {
			return err
		}
		return repos.Customers.DeleteByVAT(ctx, vat)
	})
}

// GetAllCustomers lista todos los clientes en orden de alta.
func (s *CustomerService) GetAllCustomers(ctx context.Context) (dto.CustomersDTO, error) {
	list, err := s.repos.Customers.List(ctx)
	if err != nil {
		return dto.CustomersDTO{}, err
	}
	out := dto.CustomersDTO{Customers: make([]dto.CustomerDTO, 0, len(list))}
	for _, c := range list {
		out.Customers = append(out.Customers, toCustomerDTO(c))
	}
	return out, nil
}

// GetCustomerByVat devuelve el cliente o ErrCustomerNotFound.
func (s *CustomerService) GetCustomerByVat(ctx context.Context, vat int) (dto.CustomerDTO, error) {
	if !domain.ValidVAT(vat) {
		return dto.CustomerDTO{}, domain.ErrInvalidInput
	}
	c, err := s.repos.Customers.GetByVAT(ctx, vat)
	if err != nil {
		return dto.CustomerDTO{}, err
	}
	if c == nil {
		return dto.CustomerDTO{}, domain.ErrCustomerNotFound
	}
	return toCustomerDTO(c), nil
}

// HasClient indica si existe un cliente con ese NIF.
func (s *CustomerService) HasClient(ctx context.Context, vat int) (bool, error) {
	c, err := s.repos.Customers.GetByVAT(ctx, vat)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

// GetFirstCustomerVat NIF del cliente dado de alta primero (menor id).
func (s *CustomerService) GetFirstCustomerVat(ctx context.Context) (int, error) {
	list, err := s.repos.Customers.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		return 0, domain.ErrCustomerNotFound
	}
	return list[0].VAT, nil
}

// AddAddressToCustomer agrega una dirección a un cliente existente.
func (s *CustomerService) AddAddressToCustomer(ctx context.Context, vat int, in dto.AddressDTO) (int, error) {
	if strings.TrimSpace(in.Address) == "" {
		return 0, domain.ErrInvalidInput
	}
	if _, err := s.GetCustomerByVat(ctx, vat); err != nil {
		return 0, err
	}
	a := &entity.Address{
		CustomerVAT: vat,
		Address:     in.Address,
		Door:        in.Door,
		PostalCode:  in.PostalCode,
		Locality:    in.Locality,
	}
	if err := s.repos.Addresses.Create(ctx, a); err != nil {
		return 0, err
	}
	return a.ID, nil
}

// GetAllAddresses direcciones de un cliente; vacío si no tiene.
func (s *CustomerService) GetAllAddresses(ctx context.Context, vat int) (dto.AddressesDTO, error) {
	if !domain.ValidVAT(vat) {
		return dto.AddressesDTO{}, domain.ErrInvalidInput
	}
	list, err := s.repos.Addresses.ListByCustomer(ctx, vat)
	if err != nil {
		return dto.AddressesDTO{}, err
	}
	out := dto.AddressesDTO{Addresses: make([]dto.AddressDTO, 0, len(list))}
	for _, a := range list {
		out.Addresses = append(out.Addresses, dto.AddressDTO{
			ID:          a.ID,
			CustomerVAT: a.CustomerVAT,
			Address:     a.Address,
			Door:        a.Door,
			PostalCode:  a.PostalCode,
			Locality:    a.Locality,
		})
	}
	return out, nil
}

func toCustomerDTO(c *entity.Customer) dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:          c.ID,
		VAT:         c.VAT,
		Designation: c.Designation,
		PhoneNumber: c.PhoneNumber,
	}
}
