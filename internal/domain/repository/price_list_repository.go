package repository

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// PriceListRepository define el puerto de lectura de tarifas con sus líneas ordenadas por secuencia.
type PriceListRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PriceList, error)
}
