// Package memory implementa los repositorios en memoria.
// Se usa con STORAGE_DRIVER=memory (demos locales) y en los tests de los casos de uso.
// Las transacciones trabajan sobre una copia de carritos y pedidos que solo se publica
// al confirmar; mientras dura una transacción el resto de escrituras espera.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

// Store estado en memoria de todos los agregados.
type Store struct {
	mu     sync.RWMutex // datos maestros
	dataMu sync.RWMutex // carritos, pedidos y seq

	cartLines  map[string]*entity.CartLine
	parties    map[string]*entity.Party
	products   map[string]*entity.Product
	taxes      map[string]*entity.Tax
	currencies map[string]*entity.Currency
	priceLists map[string]*entity.PriceList
	shops      map[string]*entity.Shop
	companies  map[string]*entity.Company
	users      map[string]*entity.User
	sales      map[string]*entity.Sale
	saleLines  map[string][]*entity.SaleLine
	seq        int
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		cartLines:  map[string]*entity.CartLine{},
		parties:    map[string]*entity.Party{},
		products:   map[string]*entity.Product{},
		taxes:      map[string]*entity.Tax{},
		currencies: map[string]*entity.Currency{},
		priceLists: map[string]*entity.PriceList{},
		shops:      map[string]*entity.Shop{},
		companies:  map[string]*entity.Company{},
		users:      map[string]*entity.User{},
		sales:      map[string]*entity.Sale{},
		saleLines:  map[string][]*entity.SaleLine{},
	}
}

// Seed* cargan datos maestros (tests y modo demo).

func (s *Store) SeedParty(p *entity.Party) { s.mu.Lock(); s.parties[p.ID] = p; s.mu.Unlock() }

func (s *Store) SeedProduct(p *entity.Product) { s.mu.Lock(); s.products[p.ID] = p; s.mu.Unlock() }

func (s *Store) SeedTax(t *entity.Tax) { s.mu.Lock(); s.taxes[t.ID] = t; s.mu.Unlock() }

func (s *Store) SeedCurrency(c *entity.Currency) { s.mu.Lock(); s.currencies[c.ID] = c; s.mu.Unlock() }

func (s *Store) SeedPriceList(pl *entity.PriceList) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := append([]entity.PriceListLine(nil), pl.Lines...)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Sequence < lines[j].Sequence })
	cp := *pl
	cp.Lines = lines
	s.priceLists[pl.ID] = &cp
}

func (s *Store) SeedShop(sh *entity.Shop) { s.mu.Lock(); s.shops[sh.ID] = sh; s.mu.Unlock() }

func (s *Store) SeedCompany(c *entity.Company) { s.mu.Lock(); s.companies[c.ID] = c; s.mu.Unlock() }

func (s *Store) SeedUser(u *entity.User) { s.mu.Lock(); s.users[u.ID] = u; s.mu.Unlock() }

// begin copia el estado mutable (carritos y pedidos) para una transacción.
// Los datos maestros se comparten: la consolidación no los modifica.
// El llamador debe tener dataMu bloqueado.
func (s *Store) begin() *Store {
	tx := &Store{
		cartLines:  make(map[string]*entity.CartLine, len(s.cartLines)),
		parties:    s.parties,
		products:   s.products,
		taxes:      s.taxes,
		currencies: s.currencies,
		priceLists: s.priceLists,
		shops:      s.shops,
		companies:  s.companies,
		users:      s.users,
		sales:      make(map[string]*entity.Sale, len(s.sales)),
		saleLines:  make(map[string][]*entity.SaleLine, len(s.saleLines)),
		seq:        s.seq,
	}
	for id, l := range s.cartLines {
		cp := *l
		tx.cartLines[id] = &cp
	}
	for id, sale := range s.sales {
		cp := *sale
		tx.sales[id] = &cp
	}
	for id, lines := range s.saleLines {
		tx.saleLines[id] = append([]*entity.SaleLine(nil), lines...)
	}
	return tx
}

// commit publica el estado de la transacción. El llamador debe tener dataMu bloqueado.
func (s *Store) commit(tx *Store) {
	s.cartLines = tx.cartLines
	s.sales = tx.sales
	s.saleLines = tx.saleLines
	s.seq = tx.seq
}

func (s *Store) nextSeq() int {
	s.seq++
	return s.seq
}

// SaleIDs devuelve los IDs de todos los pedidos guardados, ordenados.
func (s *Store) SaleIDs() []string {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	ids := make([]string, 0, len(s.sales))
	for id := range s.sales {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
