// Package tax calcula los impuestos de venta de una línea.
// Los importes devueltos no se redondean: el redondeo se aplica una sola vez,
// sobre el total de la línea, con la precisión de la moneda.
package tax

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// Result impuesto calculado para una línea.
type Result struct {
	TaxID  string
	Base   decimal.Decimal
	Amount decimal.Decimal
}

// Compute aplica los impuestos a (unitPrice, quantity) en orden de Sequence.
//   - percentage: unitPrice * Rate * quantity
//   - fixed:      Amount * quantity
//
// Tipos desconocidos se ignoran.
func Compute(taxes []*entity.Tax, unitPrice, quantity decimal.Decimal) []Result {
	ordered := make([]*entity.Tax, 0, len(taxes))
	for _, t := range taxes {
		if t != nil {
			ordered = append(ordered, t)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Sequence < ordered[j].Sequence })

	base := unitPrice.Mul(quantity)
	out := make([]Result, 0, len(ordered))
	for _, t := range ordered {
		var amount decimal.Decimal
		switch t.Type {
		case entity.TaxTypePercentage:
			amount = unitPrice.Mul(t.Rate).Mul(quantity)
		case entity.TaxTypeFixed:
			amount = t.Amount.Mul(quantity)
		default:
			continue
		}
		out = append(out, Result{TaxID: t.ID, Base: base, Amount: amount})
	}
	return out
}

// Sum suma los importes de los resultados sin redondear.
func Sum(results []Result) decimal.Decimal {
	total := decimal.Zero
	for _, r := range results {
		total = total.Add(r.Amount)
	}
	return total
}

// Calculator adapta Compute a la interfaz de servicio de impuestos.
type Calculator struct{}

// Compute delega en la función del paquete.
func (Calculator) Compute(taxes []*entity.Tax, unitPrice, quantity decimal.Decimal) []Result {
	return Compute(taxes, unitPrice, quantity)
}
