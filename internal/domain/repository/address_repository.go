package repository

import (
	"context"

	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
)

// AddressRepository define el puerto de persistencia para Address.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	GetByID(ctx context.Context, id int) (*entity.Address, error)
	ListByCustomer(ctx context.Context, vat int) ([]*entity.Address, error)
	DeleteByCustomer(ctx context.Context, vat int) error
}
