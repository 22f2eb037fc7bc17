package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceContext contexto de cálculo de precios: cliente y tarifa activa.
type PriceContext struct {
	CustomerID  string
	PriceListID string
}

// PriceService define el puerto de cálculo de precios de venta.
// Devuelve precio por ID de producto; los productos inexistentes no aparecen en el mapa.
type PriceService interface {
	SalePrices(ctx context.Context, pc PriceContext, productIDs []string, quantity decimal.Decimal) (map[string]decimal.Decimal, error)
}

// PriceCache caché opcional de precios calculados.
type PriceCache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, key string, price decimal.Decimal) error
}
