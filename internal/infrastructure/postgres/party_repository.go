package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

const partyColumns = `id::text, company_id::text, name, tax_id, email, COALESCE(sale_price_list_id::text, ''), created_at, updated_at`

// PartyRepo implementación de PartyRepository (usable con pool o tx).
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

// GetByID obtiene un tercero por ID.
func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	if !validUUID(id) {
		return nil, nil
	}
	p, err := scanParty(r.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return p, nil
}

// GetByIDs devuelve los terceros existentes indexados por ID.
func (r *PartyRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Party, error) {
	out := make(map[string]*entity.Party)
	args := uuidArgs(ids)
	if len(args) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+partyColumns+` FROM parties WHERE id = ANY($1::uuid[])`, args)
	if err != nil {
		return nil, fmt.Errorf("get parties: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func scanParty(row pgx.Row) (*entity.Party, error) {
	var p entity.Party
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.TaxID, &p.Email, &p.SalePriceListID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
