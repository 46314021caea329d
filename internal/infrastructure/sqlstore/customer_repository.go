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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con DB o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar DB o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y asigna su ID.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customer (vat, designation, phone_number)
		VALUES (?, ?, ?) RETURNING id`
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		customer.VAT, customer.Designation, customer.PhoneNumber,
	).Scan(&customer.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateVAT
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByVAT obtiene un cliente por NIF; nil si no existe.
func (r *CustomerRepo) GetByVAT(ctx context.Context, vat int) (*entity.Customer, error) {
	query := `SELECT id, vat, designation, phone_number FROM customer WHERE vat = ?`
	var c entity.Customer
	if err := sqlx.GetContext(ctx, r.q, &c, r.q.Rebind(query), vat); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List lista todos los clientes en orden de inserción.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT id, vat, designation, phone_number FROM customer ORDER BY id`
	var list []*entity.Customer
	if err := sqlx.SelectContext(ctx, r.q, &list, query); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return list, nil
}

// UpdatePhone actualiza el teléfono de un cliente.
func (r *CustomerRepo) UpdatePhone(ctx context.Context, vat, phone int) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`UPDATE customer SET phone_number = ? WHERE vat = ?`), phone, vat)
	if err != nil {
		return fmt.Errorf("update customer phone: %w", err)
	}
	return requireAffected(res, domain.ErrCustomerNotFound)
}

// DeleteByVAT elimina un cliente por NIF.
func (r *CustomerRepo) DeleteByVAT(ctx context.Context, vat int) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind(`DELETE FROM customer WHERE vat = ?`), vat)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return requireAffected(res, domain.ErrCustomerNotFound)
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
