package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo implementación de PriceListRepository.
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

// GetByID obtiene la tarifa con sus líneas ordenadas por secuencia.
func (r *PriceListRepo) GetByID(ctx context.Context, id string) (*entity.PriceList, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var pl entity.PriceList
	err := r.q.QueryRow(ctx, `SELECT id::text, company_id::text, name FROM price_lists WHERE id = $1`, id).
		Scan(&pl.ID, &pl.CompanyID, &pl.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price list: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id::text, price_list_id::text, COALESCE(product_id::text, ''), min_quantity, factor, fixed_price, sequence
		FROM price_list_lines WHERE price_list_id = $1 ORDER BY sequence, id`, id)
	if err != nil {
		return nil, fmt.Errorf("get price list lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PriceListLine
		if err := rows.Scan(&l.ID, &l.PriceListID, &l.ProductID, &l.MinQuantity, &l.Factor, &l.FixedPrice, &l.Sequence); err != nil {
			return nil, fmt.Errorf("scan price list line: %w", err)
		}
		pl.Lines = append(pl.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &pl, nil
}
