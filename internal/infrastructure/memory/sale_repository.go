package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación en memoria de SaleRepository.
type SaleRepo struct {
	s *Store
}

// NewSaleRepository construye el adaptador sobre el Store.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if _, ok := r.s.sales[sale.ID]; ok {
		return fmt.Errorf("insert sale: id %s duplicado", sale.ID)
	}
	if sale.Reference == "" {
		sale.Reference = fmt.Sprintf("SO%05d", r.s.nextSeq())
	}
	cp := *sale
	cp.Lines = nil
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *SaleRepo) CreateLine(_ context.Context, line *entity.SaleLine) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	if _, ok := r.s.sales[line.SaleID]; !ok {
		return fmt.Errorf("insert sale line: pedido %s no existe", line.SaleID)
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	cp := *line
	r.s.saleLines[line.SaleID] = append(r.s.saleLines[line.SaleID], &cp)
	return nil
}

func (r *SaleRepo) UpdateTotals(_ context.Context, sale *entity.Sale) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	stored, ok := r.s.sales[sale.ID]
	if !ok {
		return fmt.Errorf("update sale: id %s no existe", sale.ID)
	}
	stored.UntaxedAmount = sale.UntaxedAmount
	stored.TaxAmount = sale.TaxAmount
	stored.TotalAmount = sale.TotalAmount
	stored.UpdatedAt = sale.UpdatedAt
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	return r.load(id), nil
}

func (r *SaleRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Sale, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	var out []*entity.Sale
	for _, id := range ids {
		if sale := r.load(id); sale != nil {
			out = append(out, sale)
		}
	}
	return out, nil
}

func (r *SaleRepo) GetLines(_ context.Context, saleID string) ([]*entity.SaleLine, error) {
	r.s.dataMu.RLock()
	defer r.s.dataMu.RUnlock()
	return r.lines(saleID), nil
}

// load devuelve una copia del pedido con sus líneas. Requiere dataMu.
func (r *SaleRepo) load(id string) *entity.Sale {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil
	}
	cp := *sale
	cp.Lines = r.lines(id)
	return &cp
}

func (r *SaleRepo) lines(saleID string) []*entity.SaleLine {
	src := r.s.saleLines[saleID]
	out := make([]*entity.SaleLine, 0, len(src))
	for _, l := range src {
		cp := *l
		out = append(out, &cp)
	}
	return out
}
