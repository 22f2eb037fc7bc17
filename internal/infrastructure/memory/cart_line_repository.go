package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var _ repository.CartLineRepository = (*CartLineRepo)(nil)

// CartLineRepo implementación en memoria de CartLineRepository.
type CartLineRepo struct {
	s *Store
}

// NewCartLineRepository construye el adaptador sobre el Store.
func NewCartLineRepository(s *Store) *CartLineRepo {
	return &CartLineRepo{s: s}
}

func (r *CartLineRepo) Create(_ context.Context, line *entity.CartLine) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	if _, ok := r.s.cartLines[line.ID]; ok {
		return fmt.Errorf("insert cart line: id %s duplicado", line.ID)
	}
	cp := *line
	r.s.cartLines[line.ID] = &cp
	return nil
}

func (r *CartLineRepo) Update(_ context.Context, line *entity.CartLine) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	if _, ok := r.s.cartLines[line.ID]; !ok {
		return fmt.Errorf("update cart line: id %s no existe", line.ID)
	}
	cp := *line
	r.s.cartLines[line.ID] = &cp
	return nil
}

func (r *CartLineRepo) GetByID(_ context.Context, id string) (*entity.CartLine, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	l, ok := r.s.cartLines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *CartLineRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.CartLine, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	out := make([]*entity.CartLine, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		l, ok := r.s.cartLines[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

// LockByIDs en memoria equivale a GetByIDs: el TxRunner ya serializa las transacciones.
func (r *CartLineRepo) LockByIDs(ctx context.Context, ids []string) ([]*entity.CartLine, error) {
	return r.GetByIDs(ctx, ids)
}

func (r *CartLineRepo) List(_ context.Context, f repository.CartLineFilter) ([]*entity.CartLine, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	var out []*entity.CartLine
	for _, l := range r.s.cartLines {
		if f.CompanyID != "" && l.CompanyID != f.CompanyID {
			continue
		}
		if f.ShopID != "" && l.ShopID != f.ShopID {
			continue
		}
		if f.PartyID != "" && l.PartyID != f.PartyID {
			continue
		}
		if f.State != "" && l.State != f.State {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CartDate.Equal(out[j].CartDate) {
			return out[i].CartDate.After(out[j].CartDate)
		}
		return out[i].ID > out[j].ID
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *CartLineRepo) Delete(_ context.Context, ids []string) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, id := range ids {
		delete(r.s.cartLines, id)
	}
	return nil
}

func (r *CartLineRepo) MarkDone(_ context.Context, ids []string) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, id := range ids {
		if l, ok := r.s.cartLines[id]; ok {
			l.State = entity.CartStateDone
		}
	}
	return nil
}
