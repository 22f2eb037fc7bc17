package entity

import "github.com/shopspring/decimal"

// PriceList tarifa de venta. Las líneas se evalúan por Sequence y gana la primera que aplica.
type PriceList struct {
	ID        string
	CompanyID string
	Name      string
	Lines     []PriceListLine
}

// PriceListLine regla de tarifa. ProductID vacío aplica a todos los productos.
// Si FixedPrice no es nil se usa tal cual; si no, ListPrice * Factor.
type PriceListLine struct {
	ID          string
	PriceListID string
	ProductID   string
	MinQuantity decimal.Decimal
	Factor      decimal.Decimal
	FixedPrice  *decimal.Decimal
	Sequence    int
}

// Matches indica si la regla aplica al producto y cantidad dados.
func (l PriceListLine) Matches(productID string, quantity decimal.Decimal) bool {
	if l.ProductID != "" && l.ProductID != productID {
		return false
	}
	return quantity.GreaterThanOrEqual(l.MinQuantity)
}
