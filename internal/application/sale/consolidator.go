// Package sale agrupa las líneas de carrito seleccionadas en pedidos de venta (uno por tercero)
// y expone los pedidos creados.
package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/salecart-api/internal/application/dto"
	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/domain"
	domcart "github.com/jhoicas/salecart-api/internal/domain/cart"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
	"github.com/jhoicas/salecart-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// TxRunner ejecuta fn dentro de una transacción con los repos de carrito y pedidos.
// Si fn devuelve error no se confirma ningún cambio.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		cartRepo repository.CartLineRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// Overrides valores que sustituyen a los del borrador de cada pedido. nil = conservar.
type Overrides struct {
	Reference   *string
	Description *string
	Comment     *string
	SaleDate    *time.Time
	ShopID      *string
}

// Apply copia en el pedido los valores presentes.
func (o Overrides) Apply(s *entity.Sale) {
	if o.Reference != nil {
		s.Reference = *o.Reference
	}
	if o.Description != nil {
		s.Description = *o.Description
	}
	if o.Comment != nil {
		s.Comment = *o.Comment
	}
	if o.SaleDate != nil {
		s.SaleDate = *o.SaleDate
	}
	if o.ShopID != nil {
		s.ShopID = *o.ShopID
	}
}

// OverridesFromRequest convierte los valores de la petición.
func OverridesFromRequest(in dto.SaleValuesRequest) (Overrides, error) {
	out := Overrides{
		Reference:   in.Reference,
		Description: in.Description,
		Comment:     in.Comment,
		ShopID:      in.ShopID,
	}
	if in.SaleDate != nil {
		t, err := time.Parse(dateLayout, *in.SaleDate)
		if err != nil {
			return Overrides{}, fmt.Errorf("sale_date: %w", domain.ErrInvalidInput)
		}
		out.SaleDate = &t
	}
	return out, nil
}

// Consolidator crea pedidos de venta a partir de líneas de carrito.
type Consolidator struct {
	tx           TxRunner
	builder      ports.SaleBuilder
	saleRepo     repository.SaleRepository
	partyRepo    repository.PartyRepository
	productRepo  repository.ProductRepository
	companyRepo  repository.CompanyRepository
	currencyRepo repository.CurrencyRepository
	pdf          ports.SalePDFGenerator
	log          *logger.Logger
}

// NewConsolidator construye el caso de uso. pdf puede ser nil si no se sirve el PDF.
func NewConsolidator(
	tx TxRunner,
	builder ports.SaleBuilder,
	saleRepo repository.SaleRepository,
	partyRepo repository.PartyRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	currencyRepo repository.CurrencyRepository,
	pdf ports.SalePDFGenerator,
	log *logger.Logger,
) *Consolidator {
	if log == nil {
		log = logger.Nop()
	}
	return &Consolidator{
		tx:           tx,
		builder:      builder,
		saleRepo:     saleRepo,
		partyRepo:    partyRepo,
		productRepo:  productRepo,
		companyRepo:  companyRepo,
		currencyRepo: currencyRepo,
		pdf:          pdf,
		log:          log,
	}
}

// Consolidate crea un pedido por tercero con las líneas seleccionadas que no estén en done
// y las marca como done. Todo ocurre en una transacción: si falta un tercero
// (*domain.MissingPartyError) o falla el guardado de un pedido (*domain.OrderPersistenceError)
// no queda ningún pedido creado ni cambia el estado de ninguna línea.
func (uc *Consolidator) Consolidate(ctx context.Context, rc ports.RequestContext, ids []string, overrides Overrides) ([]*entity.Sale, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("cart_ids requeridos: %w", domain.ErrInvalidInput)
	}

	var sales []*entity.Sale
	var doneIDs []string
	err := uc.tx.RunSale(ctx, func(cartRepo repository.CartLineRepository, saleRepo repository.SaleRepository) error {
		sales, doneIDs = nil, nil

		lines, err := cartRepo.LockByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("bloquear líneas: %w", err)
		}
		for _, l := range lines {
			if l.CompanyID != rc.CompanyID {
				return domain.ErrForbidden
			}
		}
		grouping, err := domcart.GroupByParty(lines)
		if err != nil {
			return err
		}
		if len(grouping.Groups) == 0 {
			return nil
		}

		partyIDs := make([]string, 0, len(grouping.Groups))
		var productIDs []string
		for _, g := range grouping.Groups {
			partyIDs = append(partyIDs, g.PartyID)
			for _, it := range g.Items {
				productIDs = append(productIDs, it.ProductID)
			}
		}
		parties, err := uc.partyRepo.GetByIDs(ctx, partyIDs)
		if err != nil {
			return fmt.Errorf("cargar terceros: %w", err)
		}
		products, err := uc.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("cargar productos: %w", err)
		}

		for _, g := range grouping.Groups {
			party, ok := parties[g.PartyID]
			if !ok {
				return fmt.Errorf("tercero %s: %w", g.PartyID, domain.ErrNotFound)
			}
			sale, err := uc.createSale(ctx, rc, saleRepo, party, g, products, overrides)
			if err != nil {
				return err
			}
			sales = append(sales, sale)
		}

		if err := cartRepo.MarkDone(ctx, grouping.LineIDs); err != nil {
			return fmt.Errorf("finalizar líneas: %w", err)
		}
		doneIDs = grouping.LineIDs
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", rc.CompanyID).Int("cart_lines", len(ids)).Msg("consolidación de carrito rechazada")
		return nil, err
	}

	uc.log.Info().
		Str("company_id", rc.CompanyID).
		Str("user_id", rc.UserID).
		Int("sales", len(sales)).
		Int("cart_lines_done", len(doneIDs)).
		Int("cart_lines_skipped", len(ids)-len(doneIDs)).
		Msg("carrito consolidado en pedidos")
	return sales, nil
}

// createSale persiste el pedido de un grupo con una línea por cada línea de carrito.
// El precio unitario de la línea de carrito se copia sin recalcular.
func (uc *Consolidator) createSale(
	ctx context.Context,
	rc ports.RequestContext,
	saleRepo repository.SaleRepository,
	party *entity.Party,
	g domcart.Group,
	products map[string]*entity.Product,
	overrides Overrides,
) (*entity.Sale, error) {
	persistErr := func(err error) error {
		return &domain.OrderPersistenceError{PartyID: party.ID, Err: err}
	}

	sale, err := uc.builder.SaleSkeleton(ctx, rc, party)
	if err != nil {
		return nil, persistErr(err)
	}
	overrides.Apply(sale)
	if err := saleRepo.Create(ctx, sale); err != nil {
		return nil, persistErr(err)
	}

	for _, it := range g.Items {
		product, ok := products[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("producto %s de la línea %s: %w", it.ProductID, it.CartLineID, domain.ErrNotFound)
		}
		line, err := uc.builder.LineSkeleton(ctx, sale, product, it.Quantity)
		if err != nil {
			return nil, persistErr(err)
		}
		if err := uc.builder.SetUnitPrice(ctx, sale, line, it.UnitPrice); err != nil {
			return nil, persistErr(err)
		}
		line.SaleID = sale.ID
		if err := saleRepo.CreateLine(ctx, line); err != nil {
			return nil, persistErr(err)
		}
		sale.Lines = append(sale.Lines, line)
	}

	sale.RecomputeTotals()
	if err := saleRepo.UpdateTotals(ctx, sale); err != nil {
		return nil, persistErr(err)
	}
	return sale, nil
}

// OpenSales devuelve los pedidos indicados (id IN ids) de la empresa del usuario.
func (uc *Consolidator) OpenSales(ctx context.Context, rc ports.RequestContext, ids []string) ([]*entity.Sale, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sales, err := uc.saleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("cargar pedidos: %w", err)
	}
	out := make([]*entity.Sale, 0, len(sales))
	for _, s := range sales {
		if s.CompanyID == rc.CompanyID {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetSale devuelve un pedido con sus líneas.
func (uc *Consolidator) GetSale(ctx context.Context, rc ports.RequestContext, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar pedido: %w", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != rc.CompanyID {
		return nil, domain.ErrForbidden
	}
	return sale, nil
}

// SalePDF genera el PDF resumen de un pedido.
func (uc *Consolidator) SalePDF(ctx context.Context, rc ports.RequestContext, id string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}
	sale, err := uc.GetSale(ctx, rc, id)
	if err != nil {
		return nil, err
	}
	data := ports.SalePDFData{Sale: sale}
	if data.Party, err = uc.partyRepo.GetByID(ctx, sale.PartyID); err != nil {
		return nil, fmt.Errorf("cargar tercero: %w", err)
	}
	if data.Company, err = uc.companyRepo.GetByID(ctx, sale.CompanyID); err != nil {
		return nil, fmt.Errorf("cargar empresa: %w", err)
	}
	if sale.CurrencyID != "" {
		if data.Currency, err = uc.currencyRepo.GetByID(ctx, sale.CurrencyID); err != nil {
			return nil, fmt.Errorf("cargar moneda: %w", err)
		}
	}
	productIDs := make([]string, 0, len(sale.Lines))
	for _, l := range sale.Lines {
		productIDs = append(productIDs, l.ProductID)
	}
	if data.Products, err = uc.productRepo.GetByIDs(ctx, productIDs); err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	return uc.pdf.GenerateSalePDF(ctx, data)
}

// ToResponses convierte pedidos a su representación de respuesta con la precisión de cada moneda.
func (uc *Consolidator) ToResponses(ctx context.Context, sales []*entity.Sale) ([]dto.SaleResponse, error) {
	currencyIDs := make([]string, 0, len(sales))
	for _, s := range sales {
		if s.CurrencyID != "" {
			currencyIDs = append(currencyIDs, s.CurrencyID)
		}
	}
	currencies, err := uc.currencyRepo.GetByIDs(ctx, currencyIDs)
	if err != nil {
		return nil, fmt.Errorf("cargar monedas: %w", err)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, ToSaleResponse(s, entity.CurrencyDigits(currencies[s.CurrencyID])))
	}
	return out, nil
}

// ToSaleResponse convierte un pedido con importes formateados a digits decimales.
func ToSaleResponse(s *entity.Sale, digits int32) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		ShopID:        s.ShopID,
		PartyID:       s.PartyID,
		CurrencyID:    s.CurrencyID,
		PriceListID:   s.PriceListID,
		Reference:     s.Reference,
		Description:   s.Description,
		Comment:       s.Comment,
		SaleDate:      s.SaleDate.Format(dateLayout),
		State:         s.State,
		UntaxedAmount: s.UntaxedAmount.StringFixed(digits),
		TaxAmount:     s.TaxAmount.StringFixed(digits),
		TotalAmount:   s.TotalAmount.StringFixed(digits),
		Lines:         make([]dto.SaleLineResponse, 0, len(s.Lines)),
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:          l.ID,
			Sequence:    l.Sequence,
			ProductID:   l.ProductID,
			Description: l.Description,
			Unit:        l.Unit,
			Quantity:    l.Quantity.String(),
			UnitPrice:   l.UnitPrice.String(),
			TaxIDs:      l.TaxIDs,
			Amount:      l.Amount.StringFixed(digits),
		})
	}
	return out
}
