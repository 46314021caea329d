package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
)

var _ repository.SaleDeliveryRepository = (*SaleDeliveryRepo)(nil)

// SaleDeliveryRepo implementación de SaleDeliveryRepository.
type SaleDeliveryRepo struct {
	q Querier
}

// NewSaleDeliveryRepository construye el adaptador.
func NewSaleDeliveryRepository(q Querier) *SaleDeliveryRepo {
	return &SaleDeliveryRepo{q: q}
}

// Create persiste una entrega y asigna su ID. No hay restricción de unicidad.
func (r *SaleDeliveryRepo) Create(ctx context.Context, d *entity.SaleDelivery) error {
	query := `
		INSERT INTO sale_delivery (sale_id, address_id, customer_vat)
		VALUES (?, ?, ?) RETURNING id`
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query), d.SaleID, d.AddressID, d.CustomerVAT).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert sale delivery: %w", err)
	}
	return nil
}

// ListByCustomer lista las entregas registradas para un cliente.
func (r *SaleDeliveryRepo) ListByCustomer(ctx context.Context, vat int) ([]*entity.SaleDelivery, error) {
	query := `
		SELECT id, sale_id, address_id, customer_vat
		FROM sale_delivery WHERE customer_vat = ? ORDER BY id`
	var list []*entity.SaleDelivery
	if err := sqlx.SelectContext(ctx, r.q, &list, r.q.Rebind(query), vat); err != nil {
		return nil, fmt.Errorf("list sale deliveries: %w", err)
	}
	return list, nil
}
