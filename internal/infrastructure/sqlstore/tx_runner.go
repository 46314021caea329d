package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
)

// NewRepos construye los repositorios sobre un Querier (DB o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Customers:  NewCustomerRepository(q),
		Addresses:  NewAddressRepository(q),
		Sales:      NewSaleRepository(q),
		Deliveries: NewSaleDeliveryRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción.
type TxRunner struct {
	db *sqlx.DB
}

// NewTxRunner construye el runner con la conexión.
func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
