package repository

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para pedidos de venta y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	// UpdateTotals guarda los importes de cabecera recalculados.
	UpdateTotals(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetByIDs devuelve los pedidos existentes (id IN ids) con sus líneas.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Sale, error)
	GetLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error)
}
