package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

const currencyColumns = `id::text, code, name, symbol, digits, rounding`

// CurrencyRepo implementación de CurrencyRepository.
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

// GetByID obtiene una moneda por ID.
func (r *CurrencyRepo) GetByID(ctx context.Context, id string) (*entity.Currency, error) {
	if !validUUID(id) {
		return nil, nil
	}
	var c entity.Currency
	err := r.q.QueryRow(ctx, `SELECT `+currencyColumns+` FROM currencies WHERE id = $1`, id).Scan(
		&c.ID, &c.Code, &c.Name, &c.Symbol, &c.Digits, &c.Rounding,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return &c, nil
}

// GetByIDs devuelve las monedas existentes indexadas por ID.
func (r *CurrencyRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Currency, error) {
	out := make(map[string]*entity.Currency)
	args := uuidArgs(ids)
	if len(args) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+currencyColumns+` FROM currencies WHERE id = ANY($1::uuid[])`, args)
	if err != nil {
		return nil, fmt.Errorf("get currencies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Symbol, &c.Digits, &c.Rounding); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		out[c.ID] = &c
	}
	return out, rows.Err()
}
