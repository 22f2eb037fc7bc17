package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salecart-api/internal/application/cart"
	"github.com/jhoicas/salecart-api/internal/application/dto"
	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/internal/application/pricing"
	"github.com/jhoicas/salecart-api/internal/domain"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
	"github.com/jhoicas/salecart-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal { v := d(s); return &v }

func sp(s string) *string { return &s }

var (
	fixedNow = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	rc       = ports.RequestContext{UserID: "u1", CompanyID: "c1"}
)

// ─── fixture ────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	lines *memory.CartLineRepo
	uc    *cart.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	s.SeedCompany(&entity.Company{ID: "c1", Name: "Tienda Demo", CurrencyID: "usd"})
	s.SeedCompany(&entity.Company{ID: "c2", Name: "Sin Moneda"})
	s.SeedCurrency(&entity.Currency{ID: "usd", Code: "USD", Digits: 2})
	s.SeedCurrency(&entity.Currency{ID: "eur", Code: "EUR", Digits: 2})
	s.SeedShop(&entity.Shop{ID: "s1", CompanyID: "c1", Name: "Centro", PriceListID: "tienda"})
	s.SeedShop(&entity.Shop{ID: "s2", CompanyID: "c1", Name: "Online", CurrencyID: "eur"})
	s.SeedShop(&entity.Shop{ID: "s3", CompanyID: "c2", Name: "Norte"})
	s.SeedUser(&entity.User{ID: "u1", CompanyID: "c1", ShopID: "s1", Email: "ventas@demo.co"})
	s.SeedParty(&entity.Party{ID: "ana", CompanyID: "c1", Name: "Ana Pérez", SalePriceListID: "vip"})
	s.SeedParty(&entity.Party{ID: "beto", CompanyID: "c1", Name: "Beto Ruiz"})
	s.SeedTax(&entity.Tax{ID: "t10", Name: "IVA 10%", Type: entity.TaxTypePercentage, Rate: d("0.10")})
	s.SeedProduct(&entity.Product{ID: "p1", Name: "Café", SaleUOM: "kg", ListPrice: d("10"), Salable: true, CustomerTaxIDs: []string{"t10"}})
	s.SeedProduct(&entity.Product{ID: "p2", Name: "Repuesto interno", ListPrice: d("5")})
	s.SeedProduct(&entity.Product{ID: "p3", Name: "Té", SaleUOM: "u", ListPrice: d("4"), Salable: true})
	s.SeedPriceList(&entity.PriceList{ID: "tienda", Lines: []entity.PriceListLine{
		{MinQuantity: d("0"), Factor: d("0.9"), Sequence: 10},
	}})
	fixed := d("8")
	s.SeedPriceList(&entity.PriceList{ID: "vip", Lines: []entity.PriceListLine{
		{ProductID: "p1", MinQuantity: d("0"), FixedPrice: &fixed, Sequence: 10},
	}})

	lines := memory.NewCartLineRepository(s)
	products := memory.NewProductRepository(s)
	prices := pricing.NewService(products, memory.NewPriceListRepository(s), nil, nil)
	uc := cart.NewUseCase(
		lines,
		memory.NewPartyRepository(s),
		products,
		memory.NewTaxRepository(s),
		memory.NewCurrencyRepository(s),
		memory.NewShopRepository(s),
		memory.NewCompanyRepository(s),
		memory.NewUserRepository(s),
		prices,
		cart.Config{UnitPriceDigits: 4},
	).WithClock(func() time.Time { return fixedNow })
	return &fixture{store: s, lines: lines, uc: uc}
}

func (f *fixture) seedLine(t *testing.T, l *entity.CartLine) {
	t.Helper()
	if l.CompanyID == "" {
		l.CompanyID = "c1"
	}
	require.NoError(t, f.lines.Create(context.Background(), l))
}

// ─── Create ─────────────────────────────────────────────────────────────────

func TestCreate_ValoresPorDefecto(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "2026-03-14", out.CartDate)
	assert.Equal(t, "s1", out.ShopID, "tienda del usuario")
	assert.Equal(t, "usd", out.CurrencyID, "moneda de la empresa")
	assert.Equal(t, "1", out.Quantity)
	assert.Equal(t, entity.CartStateDraft, out.State)
	assert.Equal(t, "9.0000", out.UnitPrice, "tarifa de la tienda")
	assert.Equal(t, "9.00", out.UntaxedAmount)
	assert.Equal(t, "9.90", out.AmountWithTax)
	assert.Equal(t, "9.90", out.UnitPriceWithTax)
}

func TestCreate_TarifaDelTerceroTienePrioridad(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1", PartyID: "ana", Quantity: dp("2")})
	require.NoError(t, err)

	assert.Equal(t, "8.0000", out.UnitPrice)
	assert.Equal(t, "16.00", out.UntaxedAmount)
	assert.Equal(t, "17.60", out.AmountWithTax)
}

func TestCreate_PrecioExplicitoSeEscala(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p3", UnitPrice: dp("12.345678")})
	require.NoError(t, err)

	assert.Equal(t, "12.3457", out.UnitPrice)
}

func TestCreate_MonedaDeLaTienda(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p3", ShopID: "s2"})
	require.NoError(t, err)

	assert.Equal(t, "eur", out.CurrencyID)
}

func TestCreate_SinMonedaDisponibleFallaAlValidar(t *testing.T) {
	f := newFixture(t)
	other := ports.RequestContext{CompanyID: "c2"}

	_, err := f.uc.Create(context.Background(), other, dto.CreateCartLineRequest{ProductID: "p3", ShopID: "s3"})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "currency")
}

func TestCreate_MonedaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p3", CurrencyID: "xyz"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := f.lines.List(context.Background(), repository.CartLineFilter{CompanyID: "c1"})
	require.NoError(t, err)
	assert.Empty(t, all, "no se guarda la línea")

	out, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p3", CurrencyID: "eur"})
	require.NoError(t, err)
	assert.Equal(t, "eur", out.CurrencyID)
}

func TestCreate_ProductoNoVendible(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p2"})
	assert.ErrorIs(t, err, domain.ErrProductNotSalable)

	_, err = f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_FechaInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1", CartDate: "14/03/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Update ─────────────────────────────────────────────────────────────────

func TestUpdate_LineaFinalizadaDevuelveConflicto(t *testing.T) {
	f := newFixture(t)
	f.seedLine(t, &entity.CartLine{ID: "done1", PartyID: "ana", ProductID: "p1", Quantity: d("1"), UnitPrice: d("8"), CurrencyID: "usd", State: entity.CartStateDone, CartDate: fixedNow})

	_, err := f.uc.Update(context.Background(), rc, "done1", dto.UpdateCartLineRequest{Quantity: dp("3")})

	var conflict *domain.StateConflictError
	require.True(t, errors.As(err, &conflict))
	assert.ErrorIs(t, err, domain.ErrStateConflict)
	assert.Equal(t, "Ana Pérez", conflict.Party)
	assert.Equal(t, "Café", conflict.Product)
	assert.Contains(t, err.Error(), "Ana Pérez - Café")

	stored, _ := f.lines.GetByID(context.Background(), "done1")
	assert.True(t, d("1").Equal(stored.Quantity), "la línea no cambia")
}

func TestUpdate_CantidadUsaSoloTarifaDelTercero(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1"})
	require.NoError(t, err)
	require.Equal(t, "9.0000", created.UnitPrice)

	out, err := f.uc.Update(context.Background(), rc, created.ID, dto.UpdateCartLineRequest{Quantity: dp("3")})
	require.NoError(t, err)

	assert.Equal(t, "10.0000", out.UnitPrice, "sin tercero no aplica la tarifa de la tienda")
	assert.Equal(t, "30.00", out.UntaxedAmount)
}

func TestUpdate_CambioDeProductoRecalculaPrecio(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1", PartyID: "beto"})
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), rc, created.ID, dto.UpdateCartLineRequest{ProductID: sp("p3")})
	require.NoError(t, err)

	assert.Equal(t, "p3", out.ProductID)
	assert.Equal(t, "3.6000", out.UnitPrice)
}

func TestUpdate_CambioDeTerceroRecalculaPrecio(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1"})
	require.NoError(t, err)
	require.Equal(t, "9.0000", created.UnitPrice, "tarifa de la tienda")

	out, err := f.uc.Update(context.Background(), rc, created.ID, dto.UpdateCartLineRequest{PartyID: sp("ana")})
	require.NoError(t, err)

	assert.Equal(t, "ana", out.PartyID)
	assert.Equal(t, "8.0000", out.UnitPrice, "tarifa VIP del tercero")
	assert.Equal(t, "8.00", out.UntaxedAmount)
}

func TestUpdate_CambioDeMonedaRecalculaPrecio(t *testing.T) {
	f := newFixture(t)
	f.seedLine(t, &entity.CartLine{ID: "m1", PartyID: "beto", ProductID: "p1", Quantity: d("1"), UnitPrice: d("5"), CurrencyID: "usd", State: entity.CartStateDraft, CartDate: fixedNow})

	out, err := f.uc.Update(context.Background(), rc, "m1", dto.UpdateCartLineRequest{CurrencyID: sp("eur")})
	require.NoError(t, err)

	assert.Equal(t, "eur", out.CurrencyID)
	assert.Equal(t, "9.0000", out.UnitPrice)

	_, err = f.uc.Update(context.Background(), rc, "m1", dto.UpdateCartLineRequest{CurrencyID: sp("xyz")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_PrecioExplicitoNoSeRecalcula(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1"})
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), rc, created.ID, dto.UpdateCartLineRequest{Quantity: dp("2"), UnitPrice: dp("7.5")})
	require.NoError(t, err)

	assert.Equal(t, "7.5000", out.UnitPrice)
	assert.Equal(t, "15.00", out.UntaxedAmount)
}

func TestUpdate_OtraEmpresaEsForbidden(t *testing.T) {
	f := newFixture(t)
	f.seedLine(t, &entity.CartLine{ID: "x", CompanyID: "c2", ProductID: "p3", Quantity: d("1"), State: entity.CartStateDraft})

	_, err := f.uc.Update(context.Background(), rc, "x", dto.UpdateCartLineRequest{Quantity: dp("2")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Get(context.Background(), rc, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Recompute ──────────────────────────────────────────────────────────────

func TestRecomputeOnProductChange_NoEscribe(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), rc, dto.CreateCartLineRequest{ProductID: "p1", UnitPrice: dp("1")})
	require.NoError(t, err)
	stored, err := f.lines.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	snapshot := *stored
	snapshot.ProductID = "p3"
	changed, err := f.uc.RecomputeOnProductChange(context.Background(), rc, &snapshot)
	require.NoError(t, err)

	assert.True(t, d("3.6").Equal(changed.Line.UnitPrice))
	assert.Equal(t, "Té", changed.Description)
	assert.Equal(t, "u", changed.Unit)
	assert.True(t, d("1").Equal(snapshot.UnitPrice), "la entrada no se modifica")

	again, err := f.lines.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", again.ProductID)
	assert.True(t, d("1").Equal(again.UnitPrice))
}

func TestRecomputeOnProductChange_SinProductoDevuelveCopia(t *testing.T) {
	f := newFixture(t)
	l := &entity.CartLine{UnitPrice: d("3")}

	changed, err := f.uc.RecomputeOnProductChange(context.Background(), rc, l)
	require.NoError(t, err)

	assert.NotSame(t, l, changed.Line)
	assert.True(t, d("3").Equal(changed.Line.UnitPrice))
}

// ─── Importes ───────────────────────────────────────────────────────────────

func TestAmountsWithTax_Lote(t *testing.T) {
	f := newFixture(t)
	f.seedLine(t, &entity.CartLine{ID: "a", ProductID: "p1", Quantity: d("2"), UnitPrice: d("10"), CurrencyID: "usd", State: entity.CartStateDraft})
	f.seedLine(t, &entity.CartLine{ID: "b", ProductID: "p1", Quantity: d("0"), UnitPrice: d("10"), CurrencyID: "usd", State: entity.CartStateDraft})
	f.seedLine(t, &entity.CartLine{ID: "c", ProductID: "p3", Quantity: d("3"), UnitPrice: d("4"), State: entity.CartStateDraft})

	got, err := f.uc.AmountsWithTax(context.Background(), rc, []string{"a", "b", "c"})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "22.00", got["a"].AmountWithTax.StringFixed(2))
	assert.Equal(t, "11.00", got["a"].UnitPriceWithTax.StringFixed(2))
	assert.True(t, got["b"].AmountWithTax.IsZero(), "sin cantidad")
	assert.True(t, got["c"].UntaxedAmount.IsZero(), "sin moneda")
	assert.Equal(t, int32(2), got["c"].CurrencyDigits)

	dtoAmounts := cart.ToAmounts(got["b"])
	assert.Equal(t, "0.00", dtoAmounts.AmountWithTax)
}

func TestUntaxedAmount(t *testing.T) {
	f := newFixture(t)

	got, err := f.uc.UntaxedAmount(context.Background(), &entity.CartLine{Quantity: d("3"), UnitPrice: d("3.3333"), CurrencyID: "usd"})
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.StringFixed(2))
}

// ─── Listado y borrado ──────────────────────────────────────────────────────

func TestList_OrdenFechaDescendente(t *testing.T) {
	f := newFixture(t)
	day := func(n int) time.Time { return time.Date(2026, 3, n, 0, 0, 0, 0, time.UTC) }
	f.seedLine(t, &entity.CartLine{ID: "l1", ProductID: "p3", Quantity: d("1"), CartDate: day(1), State: entity.CartStateDraft})
	f.seedLine(t, &entity.CartLine{ID: "l2", ProductID: "p3", Quantity: d("1"), CartDate: day(5), State: entity.CartStateDraft})
	f.seedLine(t, &entity.CartLine{ID: "l3", ProductID: "p3", Quantity: d("1"), CartDate: day(5), State: entity.CartStateDone})
	f.seedLine(t, &entity.CartLine{ID: "o1", CompanyID: "c2", ProductID: "p3", Quantity: d("1"), CartDate: day(9), State: entity.CartStateDraft})

	out, err := f.uc.List(context.Background(), rc, dto.CartLineListQuery{})
	require.NoError(t, err)

	ids := make([]string, 0, len(out.Items))
	for _, it := range out.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"l3", "l2", "l1"}, ids)
	assert.Equal(t, 20, out.Page.Limit)
	assert.Equal(t, 3, out.Page.Count)

	out, err = f.uc.List(context.Background(), rc, dto.CartLineListQuery{State: entity.CartStateDraft})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
}

func TestDelete_ConLineaFinalizadaNoBorraNada(t *testing.T) {
	f := newFixture(t)
	f.seedLine(t, &entity.CartLine{ID: "a", PartyID: "beto", ProductID: "p3", Quantity: d("1"), State: entity.CartStateDraft})
	f.seedLine(t, &entity.CartLine{ID: "b", PartyID: "beto", ProductID: "p3", Quantity: d("1"), State: entity.CartStateDone})

	err := f.uc.Delete(context.Background(), rc, []string{"a", "b"})

	var conflict *domain.StateConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Beto Ruiz", conflict.Party)
	assert.Equal(t, "Té", conflict.Product)
	a, _ := f.lines.GetByID(context.Background(), "a")
	assert.NotNil(t, a, "el lote completo se rechaza")
}

func TestDelete_Borradores(t *testing.T) {
	f := newFixture(t)
	f.seedLine(t, &entity.CartLine{ID: "a", ProductID: "p3", Quantity: d("1"), State: entity.CartStateDraft})
	f.seedLine(t, &entity.CartLine{ID: "b", ProductID: "p3", Quantity: d("1"), State: entity.CartStateDraft})

	require.NoError(t, f.uc.Delete(context.Background(), rc, []string{"a", "b"}))

	left, err := f.lines.GetByIDs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, f.uc.Delete(context.Background(), rc, []string{"a"}), domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), rc, nil), domain.ErrInvalidInput)
}

// ─── OnChange ───────────────────────────────────────────────────────────────

func TestOnChange_ProductoYCantidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.uc.OnChange(ctx, rc, dto.CartOnChangeRequest{ProductID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "9.0000", out.UnitPrice, "tarifa de la tienda")
	assert.Equal(t, "Café", out.Description)
	assert.Equal(t, "kg", out.Unit)

	out, err = f.uc.OnChange(ctx, rc, dto.CartOnChangeRequest{Field: "quantity", ProductID: "p1", Quantity: dp("3")})
	require.NoError(t, err)
	assert.Equal(t, "10.0000", out.UnitPrice, "sin tercero no se usa la tarifa de la tienda")

	out, err = f.uc.OnChange(ctx, rc, dto.CartOnChangeRequest{ProductID: "nada", UnitPrice: dp("2.5")})
	require.NoError(t, err)
	assert.Equal(t, "2.5000", out.UnitPrice)
	assert.Empty(t, out.Description)
}
