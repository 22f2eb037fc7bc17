package memory

import (
	"context"

	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks sobre una copia del Store y la publica solo si no hay error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunSale ejecuta fn con repos de carrito y pedidos atados a la transacción.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	cartRepo repository.CartLineRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.RunWith(ctx, func(tx *Store) error {
		return fn(NewCartLineRepository(tx), NewSaleRepository(tx))
	})
}

// RunWith expone el Store transaccional; los tests lo usan para envolver repositorios.
func (r *TxRunner) RunWith(ctx context.Context, fn func(tx *Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	tx := r.s.begin()
	if err := fn(tx); err != nil {
		return err
	}
	r.s.commit(tx)
	return nil
}
