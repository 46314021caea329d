package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/webapp-acceptance/internal/domain/entity"
	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
)

var _ repository.AddressRepository = (*AddressRepo)(nil)

// AddressRepo implementación de AddressRepository.
type AddressRepo struct {
	q Querier
}

// NewAddressRepository construye el adaptador.
func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

// Create persiste una dirección y asigna su ID.
func (r *AddressRepo) Create(ctx context.Context, a *entity.Address) error {
	query := `
		INSERT INTO address (customer_vat, address, door, postal_code, locality)
		VALUES (?, ?, ?, ?, ?) RETURNING id`
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		a.CustomerVAT, a.Address, a.Door, a.PostalCode, a.Locality,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// GetByID obtiene una dirección; nil si no existe.
func (r *AddressRepo) GetByID(ctx context.Context, id int) (*entity.Address, error) {
	query := `
		SELECT id, customer_vat, address, door, postal_code, locality
		FROM address WHERE id = ?`
	var a entity.Address
	if err := sqlx.GetContext(ctx, r.q, &a, r.q.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &a, nil
}

// ListByCustomer lista las direcciones de un cliente.
func (r *AddressRepo) ListByCustomer(ctx context.Context, vat int) ([]*entity.Address, error) {
	query := `
		SELECT id, customer_vat, address, door, postal_code, locality
		FROM address WHERE customer_vat = ? ORDER BY id`
	var list []*entity.Address
	if err := sqlx.SelectContext(ctx, r.q, &list, r.q.Rebind(query), vat); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return list, nil
}

// DeleteByCustomer elimina todas las direcciones de un cliente.
func (r *AddressRepo) DeleteByCustomer(ctx context.Context, vat int) error {
	if _, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM address WHERE customer_vat = ?`), vat); err != nil {
		return fmt.Errorf("delete addresses: %w", err)
	}
	return nil
}
