package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
	"github.com/jhoicas/salecart-api/pkg/logger"
)

var _ ports.PriceService = (*Service)(nil)

// Service calcula precios de venta a partir del precio de lista y la tarifa activa.
type Service struct {
	products   repository.ProductRepository
	priceLists repository.PriceListRepository
	cache      ports.PriceCache // opcional
	log        *logger.Logger
}

// NewService construye el servicio. cache puede ser nil.
func NewService(products repository.ProductRepository, priceLists repository.PriceListRepository, cache ports.PriceCache, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{products: products, priceLists: priceLists, cache: cache, log: log}
}

// SalePrices devuelve el precio de venta de cada producto para la cantidad dada.
// Sin tarifa se usa el precio de lista. Con tarifa gana la primera línea (por secuencia)
// que coincide con producto y cantidad mínima: precio fijo o precio de lista * factor.
func (s *Service) SalePrices(ctx context.Context, pc ports.PriceContext, productIDs []string, quantity decimal.Decimal) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(productIDs))
	missing := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if price, ok := s.cached(ctx, cacheKey(pc.PriceListID, id, quantity)); ok {
			out[id] = price
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out, nil
	}

	products, err := s.products.GetByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	var priceList *entity.PriceList
	if pc.PriceListID != "" {
		priceList, err = s.priceLists.GetByID(ctx, pc.PriceListID)
		if err != nil {
			return nil, fmt.Errorf("cargar tarifa: %w", err)
		}
	}

	for _, id := range missing {
		p, ok := products[id]
		if !ok {
			continue
		}
		price := Apply(priceList, p, quantity)
		out[id] = price
		if s.cache != nil {
			if err := s.cache.Set(ctx, cacheKey(pc.PriceListID, id, quantity), price); err != nil {
				s.log.Warn().Err(err).Str("product_id", id).Msg("guardar precio en caché")
			}
		}
	}
	return out, nil
}

func (s *Service) cached(ctx context.Context, key string) (decimal.Decimal, bool) {
	if s.cache == nil {
		return decimal.Zero, false
	}
	price, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("leer precio de caché")
		return decimal.Zero, false
	}
	return price, ok
}

// Apply evalúa la tarifa para un producto. Con tarifa nil devuelve el precio de lista.
func Apply(pl *entity.PriceList, p *entity.Product, quantity decimal.Decimal) decimal.Decimal {
	if pl == nil {
		return p.ListPrice
	}
	for _, line := range pl.Lines {
		if !line.Matches(p.ID, quantity) {
			continue
		}
		if line.FixedPrice != nil {
			return *line.FixedPrice
		}
		return p.ListPrice.Mul(line.Factor)
	}
	return p.ListPrice
}

func cacheKey(priceListID, productID string, quantity decimal.Decimal) string {
	if priceListID == "" {
		priceListID = "-"
	}
	return fmt.Sprintf("price:%s:%s:%s", priceListID, productID, quantity.String())
}
