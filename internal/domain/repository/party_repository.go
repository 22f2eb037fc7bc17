package repository

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// PartyRepository define el puerto de lectura de terceros.
type PartyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Party, error)
}
