package domain

import "errors"

// ErrApplication es el único tipo de error de dominio que expone la capa de servicios.
// Las causas concretas lo envuelven; las pruebas solo verifican errors.Is(err, ErrApplication).
var ErrApplication = errors.New("error de aplicación")

// Causas concretas (todas satisfacen errors.Is(err, ErrApplication)).
var (
	ErrInvalidInput     = newApplicationError("entrada inválida")
	ErrDuplicateVAT     = newApplicationError("ya existe un cliente con ese NIF")
	ErrCustomerNotFound = newApplicationError("cliente no encontrado")
	ErrSaleNotFound     = newApplicationError("venta no encontrada")
	ErrAddressNotFound  = newApplicationError("dirección no encontrada")
)

type applicationError struct {
	msg string
}

func newApplicationError(msg string) error {
	return &applicationError{msg: msg}
}

func (e *applicationError) Error() string { return e.msg }

func (e *applicationError) Is(target error) bool {
	return target == ErrApplication
}
