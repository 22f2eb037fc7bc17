package entity

import "github.com/shopspring/decimal"

// DefaultCurrencyDigits precisión usada cuando la línea no tiene moneda.
const DefaultCurrencyDigits int32 = 2

// Currency moneda con su precisión de redondeo.
type Currency struct {
	ID       string
	Code     string // ISO 4217 (COP, USD, EUR)
	Name     string
	Symbol   string
	Digits   int32
	Rounding decimal.Decimal // paso mínimo (ej. 0.01, 50); cero = 10^-Digits
}

// Round redondea el importe a la precisión de la moneda; los empates van al par (redondeo bancario).
// Con Rounding definido redondea al múltiplo más cercano de ese paso y fija Digits decimales.
func (c *Currency) Round(amount decimal.Decimal) decimal.Decimal {
	if c == nil {
		return amount.RoundBank(DefaultCurrencyDigits)
	}
	if c.Rounding.IsPositive() {
		steps := amount.Div(c.Rounding).RoundBank(0)
		return steps.Mul(c.Rounding).RoundBank(c.Digits)
	}
	return amount.RoundBank(c.Digits)
}

// CurrencyDigits devuelve la precisión de la moneda o DefaultCurrencyDigits si no hay moneda.
func CurrencyDigits(c *Currency) int32 {
	if c == nil {
		return DefaultCurrencyDigits
	}
	return c.Digits
}
