package service

import (
	"context"

	"github.com/jhoicas/webapp-acceptance/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Las operaciones que tocan varias tablas (borrar un cliente) se hacen siempre a través de él.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}
