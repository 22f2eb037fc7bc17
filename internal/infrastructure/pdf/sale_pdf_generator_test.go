package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/infrastructure/pdf"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGenerateSalePDF_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(language.Spanish)
	sale := &entity.Sale{
		ID: "s1", Reference: "SO00001", PartyID: "ana",
		SaleDate:      time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		UntaxedAmount: d("16"), TaxAmount: d("1.6"), TotalAmount: d("17.6"),
		Lines: []*entity.SaleLine{
			{Sequence: 1, Description: "Café", Unit: "kg", Quantity: d("2"), UnitPrice: d("8"), Amount: d("16"), TaxAmount: d("1.6")},
		},
	}

	out, err := g.GenerateSalePDF(context.Background(), ports.SalePDFData{
		Sale:     sale,
		Party:    &entity.Party{ID: "ana", Name: "Ana Pérez", TaxID: "123"},
		Company:  &entity.Company{Name: "Tostadores SAS", NIT: "900"},
		Currency: &entity.Currency{Code: "USD", Symbol: "$", Digits: 2},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSalePDF_SinPedido(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator(language.Spanish).GenerateSalePDF(context.Background(), ports.SalePDFData{})
	assert.Error(t, err)
}

func TestAmount_FormatoPorIdioma(t *testing.T) {
	es := pdf.NewMarotoPDFGenerator(language.Spanish)
	en := pdf.NewMarotoPDFGenerator(language.English)

	assert.Equal(t, "1.234.567,50", es.Amount(d("1234567.5"), 2))
	assert.Equal(t, "1,234,567.50", en.Amount(d("1234567.5"), 2))
	assert.Equal(t, "3,33", es.Amount(d("3.333"), 2))
}
