package entity

import "github.com/shopspring/decimal"

// Tipos de impuesto.
const (
	TaxTypePercentage = "percentage"
	TaxTypeFixed      = "fixed"
)

// Tax impuesto de venta aplicable a productos.
// Rate es fracción (0.19 = 19%) para percentage; Amount es valor por unidad para fixed.
type Tax struct {
	ID       string
	Name     string
	Type     string
	Rate     decimal.Decimal
	Amount   decimal.Decimal
	Sequence int
}
