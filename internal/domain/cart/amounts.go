// Package cart contiene las reglas puras de las líneas de carrito: importes derivados,
// reglas de campos y agrupación por tercero para la consolidación en pedidos.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/tax"
)

// zero devuelve 0 con la escala de la moneda (0.00 para 2 decimales).
func zero(digits int32) decimal.Decimal {
	return decimal.New(0, -digits)
}

// UntaxedAmount devuelve currency.Round(quantity * unitPrice).
// Si falta cantidad, precio o moneda devuelve cero con la escala de la moneda.
func UntaxedAmount(line *entity.CartLine, currency *entity.Currency) decimal.Decimal {
	digits := entity.CurrencyDigits(currency)
	if line == nil || currency == nil || line.Quantity.IsZero() || line.UnitPrice.IsZero() {
		return zero(digits)
	}
	return currency.Round(line.Quantity.Mul(line.UnitPrice))
}

// Amounts calcula todos los importes derivados de una línea.
// taxes son los impuestos de cliente del producto; el total de impuestos se suma sin
// redondear y solo se redondea el resultado final.
func Amounts(line *entity.CartLine, currency *entity.Currency, product *entity.Product, taxes []*entity.Tax) entity.CartLineAmounts {
	digits := entity.CurrencyDigits(currency)
	out := entity.CartLineAmounts{
		CurrencyDigits:   digits,
		UntaxedAmount:    UntaxedAmount(line, currency),
		AmountWithTax:    zero(digits),
		UnitPriceWithTax: zero(digits),
	}
	if line == nil || product == nil || out.UntaxedAmount.IsZero() {
		return out
	}
	taxSum := tax.Sum(tax.Compute(taxes, line.UnitPrice, line.Quantity))
	amount := currency.Round(out.UntaxedAmount.Add(taxSum))
	out.AmountWithTax = amount
	out.UnitPriceWithTax = currency.Round(amount.Div(line.Quantity))
	return out
}

// ScaleUnitPrice ajusta el precio unitario a la precisión configurada de precios.
func ScaleUnitPrice(price decimal.Decimal, digits int32) decimal.Decimal {
	return price.Round(digits)
}
