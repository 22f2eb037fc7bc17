package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/application/pricing"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

// mapCache caché en memoria para verificar lecturas y escrituras.
type mapCache struct {
	data map[string]decimal.Decimal
	sets int
	err  error
}

func (c *mapCache) Get(_ context.Context, key string) (decimal.Decimal, bool, error) {
	if c.err != nil {
		return decimal.Zero, false, c.err
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, price decimal.Decimal) error {
	c.sets++
	c.data[key] = price
	return nil
}

func newStore() *memory.Store {
	s := memory.NewStore()
	s.SeedProduct(&entity.Product{ID: "p1", ListPrice: d("100"), Salable: true})
	s.SeedProduct(&entity.Product{ID: "p2", ListPrice: d("40"), Salable: true})
	s.SeedPriceList(&entity.PriceList{ID: "mayorista", Lines: []entity.PriceListLine{
		{ProductID: "", MinQuantity: d("0"), Factor: d("0.9"), Sequence: 30},
		{ProductID: "p1", MinQuantity: d("10"), Factor: d("0.5"), Sequence: 10},
		{ProductID: "p2", MinQuantity: d("0"), FixedPrice: ptr(d("35.5")), Sequence: 20},
	}})
	return s
}

func TestSalePrices_SinTarifaUsaPrecioDeLista(t *testing.T) {
	s := newStore()
	svc := pricing.NewService(memory.NewProductRepository(s), memory.NewPriceListRepository(s), nil, nil)

	got, err := svc.SalePrices(context.Background(), ports.PriceContext{}, []string{"p1", "nope"}, d("1"))
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.True(t, d("100").Equal(got["p1"]))
}

func TestSalePrices_TarifaPrimeraLineaQueAplica(t *testing.T) {
	s := newStore()
	svc := pricing.NewService(memory.NewProductRepository(s), memory.NewPriceListRepository(s), nil, nil)
	pc := ports.PriceContext{PriceListID: "mayorista"}

	got, err := svc.SalePrices(context.Background(), pc, []string{"p1", "p2"}, d("1"))
	require.NoError(t, err)
	assert.True(t, d("90").Equal(got["p1"]), "comodín 0.9, obtenido %s", got["p1"])
	assert.True(t, d("35.5").Equal(got["p2"]), "precio fijo")

	got, err = svc.SalePrices(context.Background(), pc, []string{"p1"}, d("10"))
	require.NoError(t, err)
	assert.True(t, d("50").Equal(got["p1"]), "cantidad mínima alcanzada")
}

func TestSalePrices_UsaCache(t *testing.T) {
	s := newStore()
	cache := &mapCache{data: map[string]decimal.Decimal{}}
	svc := pricing.NewService(memory.NewProductRepository(s), memory.NewPriceListRepository(s), cache, nil)

	_, err := svc.SalePrices(context.Background(), ports.PriceContext{}, []string{"p1"}, d("2"))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	cache.data["price:-:p1:2"] = d("1")
	got, err := svc.SalePrices(context.Background(), ports.PriceContext{}, []string{"p1"}, d("2"))
	require.NoError(t, err)
	assert.True(t, d("1").Equal(got["p1"]), "debe venir de la caché")
	assert.Equal(t, 1, cache.sets)
}

func TestSalePrices_ErrorDeCacheNoBloquea(t *testing.T) {
	s := newStore()
	cache := &mapCache{data: map[string]decimal.Decimal{}, err: errors.New("redis caído")}
	svc := pricing.NewService(memory.NewProductRepository(s), memory.NewPriceListRepository(s), cache, nil)

	got, err := svc.SalePrices(context.Background(), ports.PriceContext{}, []string{"p1"}, d("1"))
	require.NoError(t, err)
	assert.True(t, d("100").Equal(got["p1"]))
}
