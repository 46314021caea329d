package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/webapp-acceptance/internal/domain"
	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, date, total, status, customer_vat`

// SaleRepo implementación de SaleRepository.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta y asigna su ID.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sale (date, total, status, customer_vat)
		VALUES (?, ?, ?, ?) RETURNING id`
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		s.Date, s.Total, string(s.Status), s.CustomerVAT,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta; nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int) (*entity.Sale, error) {
	var s entity.Sale
	query := `SELECT ` + saleColumns + ` FROM sale WHERE id = ?`
	if err := sqlx.GetContext(ctx, r.q, &s, r.q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// List lista todas las ventas.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	var list []*entity.Sale
	if err := sqlx.SelectContext(ctx, r.q, &list, `SELECT `+saleColumns+` FROM sale ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

// ListByCustomer lista las ventas de un cliente.
func (r *SaleRepo) ListByCustomer(ctx context.Context, vat int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	query := `SELECT ` + saleColumns + ` FROM sale WHERE customer_vat = ? ORDER BY id`
	if err := sqlx.SelectContext(ctx, r.q, &list, r.q.Rebind(query), vat); err != nil {
		return nil, fmt.Errorf("list sales by customer: %w", err)
	}
	return list, nil
}

// UpdateStatus cambia el estado de una venta.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id int, status entity.SaleStatus) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE sale SET status = ? WHERE id = ?`), string(status), id)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return requireAffected(res, domain.ErrSaleNotFound)
}

// DeleteByCustomer elimina todas las ventas de un cliente.
func (r *SaleRepo) DeleteByCustomer(ctx context.Context, vat int) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM sale WHERE customer_vat = ?`), vat); err != nil {
		return fmt.Errorf("delete sales: %w", err)
	}
	return nil
}
