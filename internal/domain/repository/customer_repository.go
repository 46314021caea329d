package repository

import (
	"context"

	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByVAT(ctx context.Context, vat int) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	UpdatePhone(ctx context.Context, vat, phone int) error
	DeleteByVAT(ctx context.Context, vat int) error
}
