package repository

import (
	"context"

	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int) (*entity.Sale, error)
	List(ctx context.Context) ([]*entity.Sale, error)
	ListByCustomer(ctx context.Context, vat int) ([]*entity.Sale, error)
	UpdateStatus(ctx context.Context, id int, status entity.SaleStatus) error
	DeleteByCustomer(ctx context.Context, vat int) error
}
