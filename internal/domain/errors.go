package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrStateConflict     = errors.New("la línea de carrito ya está finalizada")
	ErrMissingParty      = errors.New("línea de carrito sin tercero")
	ErrOrderPersistence  = errors.New("no se pudo guardar el pedido de venta")
	ErrProductNotSalable = errors.New("el producto no es vendible")
)

// StateConflictError se produce al modificar o borrar una línea de carrito en estado done.
// Nombra el tercero y el producto de la línea para el mensaje al usuario.
type StateConflictError struct {
	CartLineID string
	Party      string
	Product    string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("el carrito \"%s - %s\" está finalizado, no se puede modificar ni borrar", e.Party, e.Product)
}

func (e *StateConflictError) Unwrap() error { return ErrStateConflict }

// MissingPartyError indica que una línea seleccionada para consolidar no tiene tercero.
type MissingPartyError struct {
	CartLineID string
}

func (e *MissingPartyError) Error() string {
	return fmt.Sprintf("agregue un tercero al carrito con ID \"%s\"", e.CartLineID)
}

func (e *MissingPartyError) Unwrap() error { return ErrMissingParty }

// OrderPersistenceError envuelve el fallo del servicio de pedidos al guardar un pedido o una línea.
type OrderPersistenceError struct {
	PartyID string
	Err     error
}

func (e *OrderPersistenceError) Error() string {
	return fmt.Sprintf("guardar pedido del tercero %s: %v", e.PartyID, e.Err)
}

// Unwrap permite errors.Is tanto con ErrOrderPersistence como con la causa original.
func (e *OrderPersistenceError) Unwrap() []error { return []error{ErrOrderPersistence, e.Err} }
