package repository

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos y sus impuestos de cliente.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}

// TaxRepository define el puerto de lectura de impuestos.
type TaxRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Tax, error)
}
