package repository

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// CartLineFilter filtros del listado de líneas de carrito.
type CartLineFilter struct {
	CompanyID string
	ShopID    string
	PartyID   string
	State     string
	Limit     int
	Offset    int
}

// CartLineRepository define el puerto de persistencia para CartLine.
// Las lecturas devuelven (nil, nil) cuando no existe el registro.
type CartLineRepository interface {
	Create(ctx context.Context, line *entity.CartLine) error
	Update(ctx context.Context, line *entity.CartLine) error
	GetByID(ctx context.Context, id string) (*entity.CartLine, error)
	// GetByIDs devuelve las líneas existentes en el orden de ids.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.CartLine, error)
	// LockByIDs igual que GetByIDs pero bloquea las filas hasta el fin de la transacción.
	LockByIDs(ctx context.Context, ids []string) ([]*entity.CartLine, error)
	// List ordena por cart_date DESC, id DESC.
	List(ctx context.Context, f CartLineFilter) ([]*entity.CartLine, error)
	Delete(ctx context.Context, ids []string) error
	// MarkDone pasa a done todas las líneas en una sola escritura.
	MarkDone(ctx context.Context, ids []string) error
}
