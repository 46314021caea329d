package service

import "github.com/jhoicas/webapp-acceptance/internal/domain/repository"

// Services canal de servicios completo sobre una misma base.
type Services struct {
	Customers *CustomerService
	Sales     *SaleService
}

// New construye los servicios.
func New(repos repository.Repos, tx TxRunner, opts ...SaleOption) *Services {
	return &Services{
		Customers: NewCustomerService(repos, tx),
		Sales:     NewSaleService(repos, opts...),
	}
}
