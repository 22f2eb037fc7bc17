package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// SaleBuilder define el puerto del servicio de pedidos: construye borradores de pedido y de línea
// con los valores por defecto del tercero y del producto. No persiste nada.
type SaleBuilder interface {
	SaleSkeleton(ctx context.Context, rc RequestContext, party *entity.Party) (*entity.Sale, error)
	LineSkeleton(ctx context.Context, sale *entity.Sale, product *entity.Product, quantity decimal.Decimal) (*entity.SaleLine, error)
	// SetUnitPrice fija el precio de la línea y recalcula importe e impuestos.
	SetUnitPrice(ctx context.Context, sale *entity.Sale, line *entity.SaleLine, unitPrice decimal.Decimal) error
}

// SalePDFData datos de un pedido para su representación en PDF.
type SalePDFData struct {
	Sale     *entity.Sale
	Party    *entity.Party
	Company  *entity.Company
	Currency *entity.Currency
	Products map[string]*entity.Product
}

// SalePDFGenerator define el puerto de generación del PDF del pedido.
type SalePDFGenerator interface {
	GenerateSalePDF(ctx context.Context, data SalePDFData) ([]byte, error)
}
