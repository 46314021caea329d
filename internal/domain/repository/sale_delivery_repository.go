package repository

import (
	"context"

	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
)

// SaleDeliveryRepository define el puerto de persistencia para SaleDelivery.
type SaleDeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.SaleDelivery) error
	ListByCustomer(ctx context.Context, vat int) ([]*entity.SaleDelivery, error)
}
