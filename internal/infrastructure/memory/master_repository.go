package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var (
	_ repository.PartyRepository     = (*PartyRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.TaxRepository       = (*TaxRepo)(nil)
	_ repository.CurrencyRepository  = (*CurrencyRepo)(nil)
	_ repository.PriceListRepository = (*PriceListRepo)(nil)
	_ repository.ShopRepository      = (*ShopRepo)(nil)
	_ repository.CompanyRepository   = (*CompanyRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
)

// PartyRepo lectura de terceros.
type PartyRepo struct{ s *Store }

// NewPartyRepository construye el adaptador.
func NewPartyRepository(s *Store) *PartyRepo { return &PartyRepo{s: s} }

// GetByID devuelve un tercero.
func (r *PartyRepo) GetByID(_ context.Context, id string) (*entity.Party, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.parties[id], nil
}

// GetByIDs devuelve los terceros existentes indexados por ID.
func (r *PartyRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Party, error) {
	return pick(&r.s.mu, r.s.parties, ids), nil
}

// TaxRepo lectura de impuestos.
type TaxRepo struct{ s *Store }

// NewTaxRepository construye el adaptador.
func NewTaxRepository(s *Store) *TaxRepo { return &TaxRepo{s: s} }

func (r *TaxRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Tax, error) {
	return pick(&r.s.mu, r.s.taxes, ids), nil
}

// PriceListRepo lectura de tarifas.
type PriceListRepo struct{ s *Store }

// NewPriceListRepository construye el adaptador.
func NewPriceListRepository(s *Store) *PriceListRepo { return &PriceListRepo{s: s} }

func (r *PriceListRepo) GetByID(_ context.Context, id string) (*entity.PriceList, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.priceLists[id], nil
}

// ShopRepo lectura de tiendas.
type ShopRepo struct{ s *Store }

// NewShopRepository construye el adaptador.
func NewShopRepository(s *Store) *ShopRepo { return &ShopRepo{s: s} }

func (r *ShopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.shops[id], nil
}

// ProductRepo lectura de productos.
type ProductRepo struct{ s *Store }

// NewProductRepository construye el adaptador.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.products[id], nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	return pick(&r.s.mu, r.s.products, ids), nil
}

// CurrencyRepo lectura de monedas.
type CurrencyRepo struct{ s *Store }

// NewCurrencyRepository construye el adaptador.
func NewCurrencyRepository(s *Store) *CurrencyRepo { return &CurrencyRepo{s: s} }

func (r *CurrencyRepo) GetByID(_ context.Context, id string) (*entity.Currency, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.currencies[id], nil
}

func (r *CurrencyRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Currency, error) {
	return pick(&r.s.mu, r.s.currencies, ids), nil
}

// CompanyRepo lectura de empresas.
type CompanyRepo struct{ s *Store }

// NewCompanyRepository construye el adaptador.
func NewCompanyRepository(s *Store) *CompanyRepo { return &CompanyRepo{s: s} }

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.companies[id], nil
}

// UserRepo lectura de usuarios.
type UserRepo struct{ s *Store }

// NewUserRepository construye el adaptador.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.users[id], nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func pick[T any](mu interface {
	RLock()
	RUnlock()
}, src map[string]*T, ids []string) map[string]*T {
	mu.RLock()
	defer mu.RUnlock()
	out := make(map[string]*T, len(ids))
	for _, id := range ids {
		if v, ok := src[id]; ok {
			out[id] = v
		}
	}
	return out
}
