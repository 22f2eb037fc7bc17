package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
	"github.com/jhoicas/salecart-api/internal/domain/tax"
)

var _ ports.SaleBuilder = (*SkeletonService)(nil)

// SkeletonService construye borradores de pedido y de línea con los valores por defecto
// del tercero, la tienda y el producto.
type SkeletonService struct {
	shopRepo     repository.ShopRepository
	companyRepo  repository.CompanyRepository
	userRepo     repository.UserRepository
	currencyRepo repository.CurrencyRepository
	taxRepo      repository.TaxRepository
	prices       ports.PriceService
	now          func() time.Time
}

// NewSkeletonService construye el servicio.
func NewSkeletonService(
	shopRepo repository.ShopRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	currencyRepo repository.CurrencyRepository,
	taxRepo repository.TaxRepository,
	prices ports.PriceService,
) *SkeletonService {
	return &SkeletonService{
		shopRepo:     shopRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		currencyRepo: currencyRepo,
		taxRepo:      taxRepo,
		prices:       prices,
		now:          time.Now,
	}
}

// WithClock fija el reloj usado para la fecha del pedido (tests).
func (s *SkeletonService) WithClock(now func() time.Time) *SkeletonService {
	s.now = now
	return s
}

// SaleSkeleton pedido borrador para el tercero. Tienda y tarifa salen de la tienda del usuario;
// la tarifa del tercero tiene prioridad. Moneda: la de la tienda o la de la empresa.
func (s *SkeletonService) SaleSkeleton(ctx context.Context, rc ports.RequestContext, party *entity.Party) (*entity.Sale, error) {
	now := s.now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		CompanyID: rc.CompanyID,
		PartyID:   party.ID,
		SaleDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		State:     entity.SaleStateDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	shopID := rc.ShopID
	if shopID == "" && rc.UserID != "" {
		user, err := s.userRepo.GetByID(ctx, rc.UserID)
		if err != nil {
			return nil, fmt.Errorf("cargar usuario: %w", err)
		}
		if user != nil {
			shopID = user.ShopID
		}
	}
	if shopID != "" {
		shop, err := s.shopRepo.GetByID(ctx, shopID)
		if err != nil {
			return nil, fmt.Errorf("cargar tienda: %w", err)
		}
		if shop != nil {
			sale.ShopID = shop.ID
			sale.PriceListID = shop.PriceListID
			sale.CurrencyID = shop.CurrencyID
		}
	}
	if party.SalePriceListID != "" {
		sale.PriceListID = party.SalePriceListID
	}
	if sale.CurrencyID == "" && rc.CompanyID != "" {
		company, err := s.companyRepo.GetByID(ctx, rc.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("cargar empresa: %w", err)
		}
		if company != nil {
			sale.CurrencyID = company.CurrencyID
		}
	}
	return sale, nil
}

// LineSkeleton línea borrador con descripción, unidad, impuestos de cliente y precio de la tarifa del pedido.
// La secuencia es la siguiente a las líneas ya presentes en sale.Lines.
func (s *SkeletonService) LineSkeleton(ctx context.Context, sale *entity.Sale, product *entity.Product, quantity decimal.Decimal) (*entity.SaleLine, error) {
	line := &entity.SaleLine{
		ID:          uuid.New().String(),
		SaleID:      sale.ID,
		Sequence:    len(sale.Lines) + 1,
		ProductID:   product.ID,
		Description: product.Name,
		Unit:        product.SaleUOM,
		Quantity:    quantity,
		TaxIDs:      append([]string(nil), product.CustomerTaxIDs...),
	}
	pc := ports.PriceContext{CustomerID: sale.PartyID, PriceListID: sale.PriceListID}
	prices, err := s.prices.SalePrices(ctx, pc, []string{product.ID}, quantity)
	if err != nil {
		return nil, fmt.Errorf("calcular precio: %w", err)
	}
	price, ok := prices[product.ID]
	if !ok {
		price = product.ListPrice
	}
	if err := s.SetUnitPrice(ctx, sale, line, price); err != nil {
		return nil, err
	}
	return line, nil
}

// SetUnitPrice fija el precio y recalcula importe e impuestos de la línea con la moneda del pedido.
func (s *SkeletonService) SetUnitPrice(ctx context.Context, sale *entity.Sale, line *entity.SaleLine, unitPrice decimal.Decimal) error {
	var currency *entity.Currency
	if sale.CurrencyID != "" {
		c, err := s.currencyRepo.GetByID(ctx, sale.CurrencyID)
		if err != nil {
			return fmt.Errorf("cargar moneda: %w", err)
		}
		currency = c
	}
	taxes, err := s.taxRepo.GetByIDs(ctx, line.TaxIDs)
	if err != nil {
		return fmt.Errorf("cargar impuestos: %w", err)
	}
	ordered := make([]*entity.Tax, 0, len(line.TaxIDs))
	for _, id := range line.TaxIDs {
		if t, ok := taxes[id]; ok {
			ordered = append(ordered, t)
		}
	}

	line.UnitPrice = unitPrice
	line.Amount = currency.Round(line.Quantity.Mul(unitPrice))
	line.TaxAmount = currency.Round(tax.Sum(tax.Compute(ordered, unitPrice, line.Quantity)))
	return nil
}
