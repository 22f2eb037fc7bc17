package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/salecart-api/internal/domain/cart"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var usd = &entity.Currency{ID: "usd", Code: "USD", Digits: 2}

func line(qty, price string) *entity.CartLine {
	l := &entity.CartLine{ID: "c1", ProductID: "p1", CurrencyID: "usd", State: entity.CartStateDraft}
	if qty != "" {
		l.Quantity = d(qty)
	}
	if price != "" {
		l.UnitPrice = d(price)
	}
	return l
}

func TestUntaxedAmount_CeroConEscala(t *testing.T) {
	cases := map[string]*entity.CartLine{
		"cantidad cero": line("0", "10.00"),
		"sin precio":    line("2", ""),
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			got := cart.UntaxedAmount(l, usd)
			assert.True(t, got.IsZero())
			assert.Equal(t, int32(-2), got.Exponent(), "el cero conserva la escala de la moneda")
			assert.Equal(t, "0.00", got.StringFixed(2))
		})
	}
}

func TestUntaxedAmount_SinMonedaEsCero(t *testing.T) {
	got := cart.UntaxedAmount(line("2", "10"), nil)
	assert.True(t, got.IsZero())
	assert.Equal(t, int32(-2), got.Exponent())
}

func TestUntaxedAmount_RedondeaAMoneda(t *testing.T) {
	got := cart.UntaxedAmount(line("3", "3.3333"), usd)
	assert.Equal(t, "10.00", got.StringFixed(2))
	assert.True(t, d("10.00").Equal(got))

	jpy := &entity.Currency{ID: "jpy", Digits: 0}
	assert.True(t, d("10").Equal(cart.UntaxedAmount(line("3", "3.3333"), jpy)))
}

func TestAmounts_SinImpuestos(t *testing.T) {
	p := &entity.Product{ID: "p1", Salable: true}

	got := cart.Amounts(line("2", "10.00"), usd, p, nil)

	assert.True(t, d("20.00").Equal(got.UntaxedAmount))
	assert.True(t, d("20.00").Equal(got.AmountWithTax))
	assert.True(t, d("10.00").Equal(got.UnitPriceWithTax))
	assert.Equal(t, int32(2), got.CurrencyDigits)
}

func TestAmounts_ConImpuestoDiezPorCiento(t *testing.T) {
	p := &entity.Product{ID: "p1", Salable: true, CustomerTaxIDs: []string{"t10"}}
	taxes := []*entity.Tax{{ID: "t10", Type: entity.TaxTypePercentage, Rate: d("0.10")}}

	got := cart.Amounts(line("2", "10.00"), usd, p, taxes)

	assert.True(t, d("20.00").Equal(got.UntaxedAmount))
	assert.True(t, d("22.00").Equal(got.AmountWithTax))
	assert.True(t, d("11.00").Equal(got.UnitPriceWithTax))
}

func TestAmounts_RedondeoSoloAlFinal(t *testing.T) {
	// Dos impuestos de 0.004 por unidad: redondeados por separado darían 0.00 cada uno.
	p := &entity.Product{ID: "p1"}
	taxes := []*entity.Tax{
		{ID: "a", Type: entity.TaxTypeFixed, Amount: d("0.004")},
		{ID: "b", Type: entity.TaxTypeFixed, Amount: d("0.004")},
	}

	got := cart.Amounts(line("1", "1.00"), usd, p, taxes)

	assert.True(t, d("1.01").Equal(got.AmountWithTax), "obtenido %s", got.AmountWithTax)
}

func TestAmounts_DatosIncompletosDevuelvenCero(t *testing.T) {
	p := &entity.Product{ID: "p1"}
	cases := []struct {
		name     string
		line     *entity.CartLine
		currency *entity.Currency
		product  *entity.Product
	}{
		{"sin cantidad", line("0", "10"), usd, p},
		{"sin precio", line("2", ""), usd, p},
		{"sin moneda", line("2", "10"), nil, p},
		{"sin producto", line("2", "10"), usd, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cart.Amounts(tc.line, tc.currency, tc.product, nil)
			assert.True(t, got.AmountWithTax.IsZero())
			assert.True(t, got.UnitPriceWithTax.IsZero())
			assert.Equal(t, int32(-2), got.AmountWithTax.Exponent())
		})
	}
}

func TestCurrencyRounding_Paso(t *testing.T) {
	cop := &entity.Currency{ID: "cop", Digits: 2, Rounding: d("50")}
	assert.True(t, d("1000").Equal(cop.Round(d("1025.00"))), "empate al múltiplo par")
	assert.True(t, d("1100").Equal(cop.Round(d("1075.00"))), "empate al múltiplo par")
	assert.True(t, d("1050").Equal(cop.Round(d("1025.01"))))
	assert.True(t, d("1000").Equal(cop.Round(d("1024.99"))))
}

func TestCurrencyRounding_EmpatesAlPar(t *testing.T) {
	usd := &entity.Currency{ID: "usd", Digits: 2}
	assert.Equal(t, "0.12", usd.Round(d("0.125")).String())
	assert.Equal(t, "0.14", usd.Round(d("0.135")).String())
	assert.Equal(t, "-0.12", usd.Round(d("-0.125")).String())
	assert.Equal(t, "0.13", usd.Round(d("0.1251")).String())

	var none *entity.Currency
	assert.Equal(t, "2.50", none.Round(d("2.505")).StringFixed(2))
}
