package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/tax"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_Porcentaje(t *testing.T) {
	iva := &entity.Tax{ID: "iva10", Type: entity.TaxTypePercentage, Rate: d("0.10")}

	res := tax.Compute([]*entity.Tax{iva}, d("10.00"), d("2"))

	require.Len(t, res, 1)
	assert.Equal(t, "iva10", res[0].TaxID)
	assert.True(t, d("2.00").Equal(res[0].Amount), "10%% de 2 x 10.00 = 2.00, obtenido %s", res[0].Amount)
	assert.True(t, d("20.00").Equal(res[0].Base))
}

func TestCompute_FijoYOrdenPorSecuencia(t *testing.T) {
	bolsa := &entity.Tax{ID: "bolsa", Type: entity.TaxTypeFixed, Amount: d("0.50"), Sequence: 20}
	iva := &entity.Tax{ID: "iva19", Type: entity.TaxTypePercentage, Rate: d("0.19"), Sequence: 10}

	res := tax.Compute([]*entity.Tax{bolsa, iva}, d("3.333"), d("3"))

	require.Len(t, res, 2)
	assert.Equal(t, "iva19", res[0].TaxID)
	assert.Equal(t, "bolsa", res[1].TaxID)
	// Sin redondeo intermedio
	assert.True(t, d("1.89981").Equal(res[0].Amount), "obtenido %s", res[0].Amount)
	assert.True(t, d("1.50").Equal(res[1].Amount))
	assert.True(t, d("3.39981").Equal(tax.Sum(res)))
}

func TestCompute_SinImpuestos(t *testing.T) {
	res := tax.Compute(nil, d("10"), d("2"))
	assert.Empty(t, res)
	assert.True(t, tax.Sum(res).IsZero())
}

func TestCompute_TipoDesconocidoSeIgnora(t *testing.T) {
	res := tax.Compute([]*entity.Tax{{ID: "x", Type: "none", Rate: d("0.5")}, nil}, d("10"), d("1"))
	assert.Empty(t, res)
}
