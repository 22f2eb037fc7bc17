// Package cart implementa los casos de uso de las líneas de carrito: alta con valores por
// defecto, modificación en borrador, recálculo de precio, importes y borrado.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/application/dto"
	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/domain"
	domcart "github.com/jhoicas/salecart-api/internal/domain/cart"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Config parámetros del carrito.
type Config struct {
	UnitPriceDigits int32
}

// UseCase casos de uso de CartLine.
type UseCase struct {
	cartRepo     repository.CartLineRepository
	partyRepo    repository.PartyRepository
	productRepo  repository.ProductRepository
	taxRepo      repository.TaxRepository
	currencyRepo repository.CurrencyRepository
	shopRepo     repository.ShopRepository
	companyRepo  repository.CompanyRepository
	userRepo     repository.UserRepository
	prices       ports.PriceService
	cfg          Config
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	cartRepo repository.CartLineRepository,
	partyRepo repository.PartyRepository,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxRepository,
	currencyRepo repository.CurrencyRepository,
	shopRepo repository.ShopRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	prices ports.PriceService,
	cfg Config,
) *UseCase {
	return &UseCase{
		cartRepo:     cartRepo,
		partyRepo:    partyRepo,
		productRepo:  productRepo,
		taxRepo:      taxRepo,
		currencyRepo: currencyRepo,
		shopRepo:     shopRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		prices:       prices,
		cfg:          cfg,
		now:          time.Now,
	}
}

// WithClock fija el reloj usado para la fecha por defecto (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// OnChange resultado de recalcular una línea no guardada.
type OnChange struct {
	Line        *entity.CartLine
	Description string
	Unit        string
}

// Create da de alta una línea en borrador.
// Por defecto: fecha de hoy, cantidad 1, tienda del usuario y moneda de la tienda o de la empresa.
// Sin precio unitario se toma el precio de tarifa del producto.
func (uc *UseCase) Create(ctx context.Context, rc ports.RequestContext, in dto.CreateCartLineRequest) (*dto.CartLineResponse, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%s requerido: %w", domcart.FieldProduct, domain.ErrInvalidInput)
	}
	product, err := uc.product(ctx, rc, in.ProductID)
	if err != nil {
		return nil, err
	}
	if in.PartyID != "" {
		if _, err := uc.party(ctx, rc, in.PartyID); err != nil {
			return nil, err
		}
	}

	cartDate := uc.today()
	if in.CartDate != "" {
		cartDate, err = time.Parse(dateLayout, in.CartDate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", domcart.FieldCartDate, domain.ErrInvalidInput)
		}
	}
	quantity := decimal.NewFromInt(1)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	shopID := in.ShopID
	if shopID == "" {
		if shopID, err = uc.userShopID(ctx, rc); err != nil {
			return nil, err
		}
	}
	currencyID := in.CurrencyID
	if currencyID == "" {
		if currencyID, err = uc.defaultCurrency(ctx, rc, shopID); err != nil {
			return nil, err
		}
	} else if currencyID, err = uc.currency(ctx, currencyID); err != nil {
		return nil, err
	}

	now := uc.now()
	line := &entity.CartLine{
		ID:         uuid.New().String(),
		CompanyID:  rc.CompanyID,
		ShopID:     shopID,
		CartDate:   cartDate,
		PartyID:    in.PartyID,
		ProductID:  in.ProductID,
		Quantity:   quantity,
		CurrencyID: currencyID,
		State:      entity.CartStateDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.UnitPrice != nil {
		line.UnitPrice = domcart.ScaleUnitPrice(*in.UnitPrice, uc.cfg.UnitPriceDigits)
	} else {
		changed, err := uc.RecomputeOnProductChange(ctx, rc, line)
		if err != nil {
			return nil, err
		}
		line = changed.Line
	}

	if err := domcart.Validate(line, product); err != nil {
		return nil, err
	}
	if err := uc.cartRepo.Create(ctx, line); err != nil {
		return nil, fmt.Errorf("guardar línea de carrito: %w", err)
	}
	return uc.response(ctx, line)
}

// Update modifica los campos presentes de una línea en borrador.
// Cambiar producto, tercero, moneda o cantidad sin indicar precio recalcula el precio de tarifa.
func (uc *UseCase) Update(ctx context.Context, rc ports.RequestContext, id string, in dto.UpdateCartLineRequest) (*dto.CartLineResponse, error) {
	line, err := uc.load(ctx, rc, id)
	if err != nil {
		return nil, err
	}
	if line.IsDone() {
		return nil, uc.stateConflict(ctx, line)
	}
	for field, present := range map[string]bool{
		domcart.FieldCartDate:  in.CartDate != nil,
		domcart.FieldParty:     in.PartyID != nil,
		domcart.FieldProduct:   in.ProductID != nil,
		domcart.FieldQuantity:  in.Quantity != nil,
		domcart.FieldUnitPrice: in.UnitPrice != nil,
		domcart.FieldCurrency:  in.CurrencyID != nil,
	} {
		if present && !domcart.CanEdit(field, line.State) {
			return nil, uc.stateConflict(ctx, line)
		}
	}

	oldParty, oldCurrency := line.PartyID, line.CurrencyID
	if in.CartDate != nil {
		if line.CartDate, err = time.Parse(dateLayout, *in.CartDate); err != nil {
			return nil, fmt.Errorf("%s: %w", domcart.FieldCartDate, domain.ErrInvalidInput)
		}
	}
	if in.PartyID != nil {
		if *in.PartyID != "" {
			if _, err := uc.party(ctx, rc, *in.PartyID); err != nil {
				return nil, err
			}
		}
		line.PartyID = *in.PartyID
	}
	if in.CurrencyID != nil {
		if line.CurrencyID, err = uc.currency(ctx, *in.CurrencyID); err != nil {
			return nil, err
		}
	}
	productChanged := in.ProductID != nil && *in.ProductID != line.ProductID
	partyChanged := line.PartyID != oldParty
	currencyChanged := line.CurrencyID != oldCurrency
	if in.ProductID != nil {
		line.ProductID = *in.ProductID
	}
	if in.Quantity != nil {
		line.Quantity = *in.Quantity
	}
	product, err := uc.product(ctx, rc, line.ProductID)
	if err != nil {
		return nil, err
	}

	switch {
	case in.UnitPrice != nil:
		line.UnitPrice = domcart.ScaleUnitPrice(*in.UnitPrice, uc.cfg.UnitPriceDigits)
	case productChanged || partyChanged || currencyChanged:
		changed, err := uc.RecomputeOnProductChange(ctx, rc, line)
		if err != nil {
			return nil, err
		}
		line = changed.Line
	case in.Quantity != nil:
		changed, err := uc.RecomputeOnQuantityChange(ctx, rc, line)
		if err != nil {
			return nil, err
		}
		line = changed.Line
	}

	if err := domcart.Validate(line, product); err != nil {
		return nil, err
	}
	line.UpdatedAt = uc.now()
	if err := uc.cartRepo.Update(ctx, line); err != nil {
		return nil, fmt.Errorf("actualizar línea de carrito: %w", err)
	}
	return uc.response(ctx, line)
}

// RecomputeOnProductChange devuelve una copia de la línea con el precio de venta del producto.
// La tarifa es la del tercero o, si no tiene, la de la tienda del usuario. No escribe nada.
func (uc *UseCase) RecomputeOnProductChange(ctx context.Context, rc ports.RequestContext, line *entity.CartLine) (*OnChange, error) {
	return uc.recompute(ctx, rc, line, true)
}

// RecomputeOnQuantityChange igual que RecomputeOnProductChange pero solo considera la tarifa del tercero.
func (uc *UseCase) RecomputeOnQuantityChange(ctx context.Context, rc ports.RequestContext, line *entity.CartLine) (*OnChange, error) {
	return uc.recompute(ctx, rc, line, false)
}

func (uc *UseCase) recompute(ctx context.Context, rc ports.RequestContext, line *entity.CartLine, shopFallback bool) (*OnChange, error) {
	cp := *line
	out := &OnChange{Line: &cp}
	if line.ProductID == "" {
		return out, nil
	}
	product, err := uc.productRepo.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, fmt.Errorf("cargar producto: %w", err)
	}
	if product == nil {
		return out, nil
	}
	out.Description = product.Name
	out.Unit = product.SaleUOM

	pc, err := uc.priceContext(ctx, rc, line.PartyID, shopFallback)
	if err != nil {
		return nil, err
	}
	prices, err := uc.prices.SalePrices(ctx, pc, []string{product.ID}, line.Quantity)
	if err != nil {
		return nil, fmt.Errorf("calcular precio: %w", err)
	}
	if price, ok := prices[product.ID]; ok {
		cp.UnitPrice = domcart.ScaleUnitPrice(price, uc.cfg.UnitPriceDigits)
	}
	return out, nil
}

// OnChange recalcula el precio de una línea aún no guardada según el campo modificado.
// Sin cantidad se asume 1; un precio explícito se conserva si el producto no tiene precio.
func (uc *UseCase) OnChange(ctx context.Context, rc ports.RequestContext, in dto.CartOnChangeRequest) (*dto.CartOnChangeResponse, error) {
	line := &entity.CartLine{
		CompanyID:  rc.CompanyID,
		PartyID:    in.PartyID,
		ProductID:  in.ProductID,
		Quantity:   decimal.NewFromInt(1),
		CurrencyID: in.CurrencyID,
		State:      entity.CartStateDraft,
	}
	if in.Quantity != nil {
		line.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		line.UnitPrice = domcart.ScaleUnitPrice(*in.UnitPrice, uc.cfg.UnitPriceDigits)
	}

	var (
		oc  *OnChange
		err error
	)
	if in.Field == "quantity" {
		oc, err = uc.RecomputeOnQuantityChange(ctx, rc, line)
	} else {
		oc, err = uc.RecomputeOnProductChange(ctx, rc, line)
	}
	if err != nil {
		return nil, err
	}
	return &dto.CartOnChangeResponse{
		UnitPrice:   oc.Line.UnitPrice.StringFixed(uc.cfg.UnitPriceDigits),
		Description: oc.Description,
		Unit:        oc.Unit,
	}, nil
}

// UntaxedAmount importe sin impuestos de una línea, redondeado a su moneda.
func (uc *UseCase) UntaxedAmount(ctx context.Context, line *entity.CartLine) (decimal.Decimal, error) {
	var currency *entity.Currency
	if line.CurrencyID != "" {
		c, err := uc.currencyRepo.GetByID(ctx, line.CurrencyID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("cargar moneda: %w", err)
		}
		currency = c
	}
	return domcart.UntaxedAmount(line, currency), nil
}

// AmountsWithTax calcula en lote los importes de las líneas indicadas.
func (uc *UseCase) AmountsWithTax(ctx context.Context, rc ports.RequestContext, ids []string) (map[string]entity.CartLineAmounts, error) {
	lines, err := uc.cartRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar líneas: %w", err)
	}
	for _, l := range lines {
		if l.CompanyID != rc.CompanyID {
			return nil, domain.ErrForbidden
		}
	}
	return uc.amounts(ctx, lines)
}

// Get devuelve una línea con sus importes.
func (uc *UseCase) Get(ctx context.Context, rc ports.RequestContext, id string) (*dto.CartLineResponse, error) {
	line, err := uc.load(ctx, rc, id)
	if err != nil {
		return nil, err
	}
	return uc.response(ctx, line)
}

// List devuelve las líneas de la empresa ordenadas por fecha descendente.
func (uc *UseCase) List(ctx context.Context, rc ports.RequestContext, q dto.CartLineListQuery) (*dto.CartLineListResponse, error) {
	q.DefaultPage()
	lines, err := uc.cartRepo.List(ctx, repository.CartLineFilter{
		CompanyID: rc.CompanyID,
		PartyID:   q.PartyID,
		State:     q.State,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listar líneas: %w", err)
	}
	amounts, err := uc.amounts(ctx, lines)
	if err != nil {
		return nil, err
	}
	out := &dto.CartLineListResponse{
		Items: make([]dto.CartLineResponse, 0, len(lines)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Count: len(lines)},
	}
	for _, l := range lines {
		out.Items = append(out.Items, toCartLineResponse(l, amounts[l.ID], uc.cfg.UnitPriceDigits))
	}
	return out, nil
}

// Delete borra las líneas en un solo lote. Si alguna está finalizada no borra ninguna.
func (uc *UseCase) Delete(ctx context.Context, rc ports.RequestContext, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("ids requeridos: %w", domain.ErrInvalidInput)
	}
	lines, err := uc.cartRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("cargar líneas: %w", err)
	}
	found := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.CompanyID != rc.CompanyID {
			return domain.ErrForbidden
		}
		if l.IsDone() {
			return uc.stateConflict(ctx, l)
		}
		found = append(found, l.ID)
	}
	if len(found) == 0 {
		return domain.ErrNotFound
	}
	if err := uc.cartRepo.Delete(ctx, found); err != nil {
		return fmt.Errorf("borrar líneas: %w", err)
	}
	return nil
}

// amounts carga monedas, productos e impuestos en lote y calcula los importes de cada línea.
func (uc *UseCase) amounts(ctx context.Context, lines []*entity.CartLine) (map[string]entity.CartLineAmounts, error) {
	currencyIDs := make([]string, 0, len(lines))
	productIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.CurrencyID != "" {
			currencyIDs = append(currencyIDs, l.CurrencyID)
		}
		productIDs = append(productIDs, l.ProductID)
	}
	currencies, err := uc.currencyRepo.GetByIDs(ctx, currencyIDs)
	if err != nil {
		return nil, fmt.Errorf("cargar monedas: %w", err)
	}
	products, err := uc.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	var taxIDs []string
	for _, p := range products {
		taxIDs = append(taxIDs, p.CustomerTaxIDs...)
	}
	taxes, err := uc.taxRepo.GetByIDs(ctx, taxIDs)
	if err != nil {
		return nil, fmt.Errorf("cargar impuestos: %w", err)
	}

	out := make(map[string]entity.CartLineAmounts, len(lines))
	for _, l := range lines {
		product := products[l.ProductID]
		var lineTaxes []*entity.Tax
		if product != nil {
			for _, id := range product.CustomerTaxIDs {
				if t, ok := taxes[id]; ok {
					lineTaxes = append(lineTaxes, t)
				}
			}
		}
		out[l.ID] = domcart.Amounts(l, currencies[l.CurrencyID], product, lineTaxes)
	}
	return out, nil
}

func (uc *UseCase) response(ctx context.Context, line *entity.CartLine) (*dto.CartLineResponse, error) {
	amounts, err := uc.amounts(ctx, []*entity.CartLine{line})
	if err != nil {
		return nil, err
	}
	out := toCartLineResponse(line, amounts[line.ID], uc.cfg.UnitPriceDigits)
	return &out, nil
}

func (uc *UseCase) load(ctx context.Context, rc ports.RequestContext, id string) (*entity.CartLine, error) {
	line, err := uc.cartRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar línea: %w", err)
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	if line.CompanyID != rc.CompanyID {
		return nil, domain.ErrForbidden
	}
	return line, nil
}

func (uc *UseCase) product(ctx context.Context, rc ports.RequestContext, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar producto: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%s no existe: %w", domcart.FieldProduct, domain.ErrInvalidInput)
	}
	if p.CompanyID != "" && p.CompanyID != rc.CompanyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// currency comprueba que la moneda existe y devuelve su ID.
func (uc *UseCase) currency(ctx context.Context, id string) (string, error) {
	currency, err := uc.currencyRepo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("cargar moneda: %w", err)
	}
	if currency == nil {
		return "", fmt.Errorf("%s no existe: %w", domcart.FieldCurrency, domain.ErrInvalidInput)
	}
	return currency.ID, nil
}

func (uc *UseCase) party(ctx context.Context, rc ports.RequestContext, id string) (*entity.Party, error) {
	p, err := uc.partyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar tercero: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%s no existe: %w", domcart.FieldParty, domain.ErrInvalidInput)
	}
	if p.CompanyID != "" && p.CompanyID != rc.CompanyID {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// userShopID tienda del usuario: la del token o, si no viene, la de su ficha.
func (uc *UseCase) userShopID(ctx context.Context, rc ports.RequestContext) (string, error) {
	if rc.ShopID != "" || rc.UserID == "" {
		return rc.ShopID, nil
	}
	user, err := uc.userRepo.GetByID(ctx, rc.UserID)
	if err != nil {
		return "", fmt.Errorf("cargar usuario: %w", err)
	}
	if user == nil {
		return "", nil
	}
	return user.ShopID, nil
}

// defaultCurrency moneda de la tienda o, si no tiene, la de la empresa. Vacía si no hay ninguna.
func (uc *UseCase) defaultCurrency(ctx context.Context, rc ports.RequestContext, shopID string) (string, error) {
	if shopID != "" {
		shop, err := uc.shopRepo.GetByID(ctx, shopID)
		if err != nil {
			return "", fmt.Errorf("cargar tienda: %w", err)
		}
		if shop != nil && shop.CurrencyID != "" {
			return shop.CurrencyID, nil
		}
	}
	if rc.CompanyID == "" {
		return "", nil
	}
	company, err := uc.companyRepo.GetByID(ctx, rc.CompanyID)
	if err != nil {
		return "", fmt.Errorf("cargar empresa: %w", err)
	}
	if company == nil {
		return "", nil
	}
	return company.CurrencyID, nil
}

// priceContext arma el contexto de precios: tarifa forzada en la petición, la del tercero
// o (con shopFallback) la de la tienda del usuario.
func (uc *UseCase) priceContext(ctx context.Context, rc ports.RequestContext, partyID string, shopFallback bool) (ports.PriceContext, error) {
	pc := ports.PriceContext{CustomerID: partyID, PriceListID: rc.PriceListID}
	if pc.PriceListID != "" {
		return pc, nil
	}
	if partyID != "" {
		party, err := uc.partyRepo.GetByID(ctx, partyID)
		if err != nil {
			return pc, fmt.Errorf("cargar tercero: %w", err)
		}
		if party != nil && party.SalePriceListID != "" {
			pc.PriceListID = party.SalePriceListID
			return pc, nil
		}
	}
	if !shopFallback {
		return pc, nil
	}
	shopID, err := uc.userShopID(ctx, rc)
	if err != nil || shopID == "" {
		return pc, err
	}
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return pc, fmt.Errorf("cargar tienda: %w", err)
	}
	if shop != nil {
		pc.PriceListID = shop.PriceListID
	}
	return pc, nil
}

// stateConflict construye el error nombrando tercero y producto de la línea.
func (uc *UseCase) stateConflict(ctx context.Context, line *entity.CartLine) error {
	out := &domain.StateConflictError{CartLineID: line.ID, Party: line.PartyID, Product: line.ProductID}
	if line.PartyID != "" {
		if p, err := uc.partyRepo.GetByID(ctx, line.PartyID); err == nil && p != nil {
			out.Party = p.Name
		}
	}
	if p, err := uc.productRepo.GetByID(ctx, line.ProductID); err == nil && p != nil {
		out.Product = p.Name
	}
	return out
}

func (uc *UseCase) today() time.Time {
	now := uc.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func toCartLineResponse(l *entity.CartLine, a entity.CartLineAmounts, priceDigits int32) dto.CartLineResponse {
	digits := a.CurrencyDigits
	return dto.CartLineResponse{
		ID:               l.ID,
		ShopID:           l.ShopID,
		CartDate:         l.CartDate.Format(dateLayout),
		PartyID:          l.PartyID,
		ProductID:        l.ProductID,
		Quantity:         l.Quantity.String(),
		UnitPrice:        l.UnitPrice.StringFixed(priceDigits),
		CurrencyID:       l.CurrencyID,
		State:            l.State,
		CurrencyDigits:   digits,
		UntaxedAmount:    a.UntaxedAmount.StringFixed(digits),
		AmountWithTax:    a.AmountWithTax.StringFixed(digits),
		UnitPriceWithTax: a.UnitPriceWithTax.StringFixed(digits),
	}
}

// ToAmounts convierte importes de dominio a su representación de respuesta.
func ToAmounts(a entity.CartLineAmounts) dto.CartAmounts {
	return dto.CartAmounts{
		CurrencyDigits:   a.CurrencyDigits,
		UntaxedAmount:    a.UntaxedAmount.StringFixed(a.CurrencyDigits),
		AmountWithTax:    a.AmountWithTax.StringFixed(a.CurrencyDigits),
		UnitPriceWithTax: a.UnitPriceWithTax.StringFixed(a.CurrencyDigits),
	}
}
