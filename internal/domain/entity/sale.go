package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido de venta.
const (
	SaleStateDraft     = "draft"
	SaleStateQuotation = "quotation"
	SaleStateConfirmed = "confirmed"
)

// Sale representa la cabecera de un pedido de venta.
type Sale struct {
	ID            string
	CompanyID     string
	ShopID        string
	PartyID       string
	CurrencyID    string
	PriceListID   string
	Reference     string
	Description   string
	Comment       string
	SaleDate      time.Time
	State         string
	UntaxedAmount decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Lines         []*SaleLine
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleLine representa una línea de detalle del pedido de venta.
type SaleLine struct {
	ID          string
	SaleID      string
	Sequence    int
	ProductID   string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxIDs      []string
	Amount      decimal.Decimal
	TaxAmount   decimal.Decimal
}

// RecomputeTotals suma importes e impuestos de las líneas en la cabecera.
func (s *Sale) RecomputeTotals() {
	untaxed, taxes := decimal.Zero, decimal.Zero
	for _, l := range s.Lines {
		untaxed = untaxed.Add(l.Amount)
		taxes = taxes.Add(l.TaxAmount)
	}
	s.UntaxedAmount = untaxed
	s.TaxAmount = taxes
	s.TotalAmount = untaxed.Add(taxes)
}
