package repository

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// ShopRepository define el puerto de lectura de tiendas.
type ShopRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
}
