package repository

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// CurrencyRepository define el puerto de lectura de monedas.
type CurrencyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Currency, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Currency, error)
}
