// Package seed genera los datos maestros de demostración: empresa, tienda, usuario, terceros,
// impuestos, productos y tarifas. Los IDs son fijos para que la carga sea idempotente.
package seed

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/infrastructure/memory"
)

// IDs fijos de los datos de demostración.
const (
	CurrencyCOP   = "0a4f0c1e-0000-4000-8000-000000000001"
	CurrencyUSD   = "0a4f0c1e-0000-4000-8000-000000000002"
	CompanyID     = "1b5e1d2f-0000-4000-8000-000000000001"
	PriceListShop = "2c6f2e30-0000-4000-8000-000000000001"
	PriceListVIP  = "2c6f2e30-0000-4000-8000-000000000002"
	ShopCenter    = "3d703f41-0000-4000-8000-000000000001"
	ShopOnline    = "3d703f41-0000-4000-8000-000000000002"
	UserID        = "4e814052-0000-4000-8000-000000000001"
	PartyAna      = "5f925163-0000-4000-8000-000000000001"
	PartyBeto     = "5f925163-0000-4000-8000-000000000002"
	TaxIVA19      = "6a036274-0000-4000-8000-000000000001"
	TaxBolsa      = "6a036274-0000-4000-8000-000000000002"
	ProductCafe   = "7b147385-0000-4000-8000-000000000001"
	ProductTe     = "7b147385-0000-4000-8000-000000000002"
	ProductBolsa  = "7b147385-0000-4000-8000-000000000003"
	DemoEmail     = "ventas@demo.co"
)

// Data conjunto de datos maestros en orden de inserción.
type Data struct {
	Currencies []*entity.Currency
	Companies  []*entity.Company
	PriceLists []*entity.PriceList
	Shops      []*entity.Shop
	Users      []*entity.User
	Parties    []*entity.Party
	Taxes      []*entity.Tax
	Products   []*entity.Product
}

// Demo construye los datos de demostración; password es la clave del usuario DemoEmail.
func Demo(password string, now time.Time) (*Data, error) {
	if password == "" {
		return nil, fmt.Errorf("seed: password requerido")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}
	dec := decimal.RequireFromString
	vipCafe := dec("21000")

	return &Data{
		Currencies: []*entity.Currency{
			{ID: CurrencyCOP, Code: "COP", Name: "Peso colombiano", Symbol: "$", Digits: 2, Rounding: dec("50")},
			{ID: CurrencyUSD, Code: "USD", Name: "Dólar estadounidense", Symbol: "US$", Digits: 2},
		},
		Companies: []*entity.Company{
			{ID: CompanyID, Name: "Tostadores Demo SAS", NIT: "900123456-7", CurrencyID: CurrencyCOP, CreatedAt: now, UpdatedAt: now},
		},
		PriceLists: []*entity.PriceList{
			{ID: PriceListShop, CompanyID: CompanyID, Name: "Tienda", Lines: []entity.PriceListLine{
				{ID: "2c6f2e30-0000-4000-8001-000000000001", PriceListID: PriceListShop, MinQuantity: dec("10"), Factor: dec("0.9"), Sequence: 10},
				{ID: "2c6f2e30-0000-4000-8001-000000000002", PriceListID: PriceListShop, MinQuantity: dec("0"), Factor: dec("1"), Sequence: 20},
			}},
			{ID: PriceListVIP, CompanyID: CompanyID, Name: "Clientes VIP", Lines: []entity.PriceListLine{
				{ID: "2c6f2e30-0000-4000-8001-000000000003", PriceListID: PriceListVIP, ProductID: ProductCafe, MinQuantity: dec("0"), Factor: dec("1"), FixedPrice: &vipCafe, Sequence: 10},
				{ID: "2c6f2e30-0000-4000-8001-000000000004", PriceListID: PriceListVIP, MinQuantity: dec("0"), Factor: dec("0.85"), Sequence: 20},
			}},
		},
		Shops: []*entity.Shop{
			{ID: ShopCenter, CompanyID: CompanyID, Name: "Tienda Centro", PriceListID: PriceListShop, CreatedAt: now, UpdatedAt: now},
			{ID: ShopOnline, CompanyID: CompanyID, Name: "Tienda Online", PriceListID: PriceListShop, CurrencyID: CurrencyUSD, CreatedAt: now, UpdatedAt: now},
		},
		Users: []*entity.User{
			{ID: UserID, CompanyID: CompanyID, ShopID: ShopCenter, Email: DemoEmail, PasswordHash: string(hash), Name: "Ventas Demo", Status: "active", CreatedAt: now, UpdatedAt: now},
		},
		Parties: []*entity.Party{
			{ID: PartyAna, CompanyID: CompanyID, Name: "Ana Pérez", TaxID: "52123456", Email: "ana@cliente.co", SalePriceListID: PriceListVIP, CreatedAt: now, UpdatedAt: now},
			{ID: PartyBeto, CompanyID: CompanyID, Name: "Beto Ruiz", TaxID: "80123456", Email: "beto@cliente.co", CreatedAt: now, UpdatedAt: now},
		},
		Taxes: []*entity.Tax{
			{ID: TaxIVA19, Name: "IVA 19%", Type: entity.TaxTypePercentage, Rate: dec("0.19"), Sequence: 10},
			{ID: TaxBolsa, Name: "Impuesto bolsa", Type: entity.TaxTypeFixed, Amount: dec("66"), Sequence: 20},
		},
		Products: []*entity.Product{
			{ID: ProductCafe, CompanyID: CompanyID, SKU: "CAF-500", Name: "Café de origen 500 g", ListPrice: dec("24000"), SaleUOM: "u", Salable: true, CustomerTaxIDs: []string{TaxIVA19}, CreatedAt: now, UpdatedAt: now},
			{ID: ProductTe, CompanyID: CompanyID, SKU: "TE-100", Name: "Té verde 100 g", ListPrice: dec("12500"), SaleUOM: "u", Salable: true, CustomerTaxIDs: []string{TaxIVA19}, CreatedAt: now, UpdatedAt: now},
			{ID: ProductBolsa, CompanyID: CompanyID, SKU: "BOL-01", Name: "Bolsa plástica", ListPrice: dec("0"), SaleUOM: "u", Salable: true, CustomerTaxIDs: []string{TaxBolsa}, CreatedAt: now, UpdatedAt: now},
		},
	}, nil
}

// LoadMemory carga los datos en un Store en memoria.
func (d *Data) LoadMemory(s *memory.Store) {
	for _, c := range d.Currencies {
		s.SeedCurrency(c)
	}
	for _, c := range d.Companies {
		s.SeedCompany(c)
	}
	for _, pl := range d.PriceLists {
		s.SeedPriceList(pl)
	}
	for _, sh := range d.Shops {
		s.SeedShop(sh)
	}
	for _, u := range d.Users {
		s.SeedUser(u)
	}
	for _, p := range d.Parties {
		s.SeedParty(p)
	}
	for _, t := range d.Taxes {
		s.SeedTax(t)
	}
	for _, p := range d.Products {
		s.SeedProduct(p)
	}
}
