package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salecart-api/internal/domain"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var _ repository.CartLineRepository = (*CartLineRepo)(nil)

const cartLineColumns = `id::text, company_id::text, COALESCE(shop_id::text, ''), cart_date, COALESCE(party_id::text, ''),
	product_id::text, quantity, unit_price, COALESCE(currency_id::text, ''), state, created_at, updated_at`

// CartLineRepo implementación del puerto CartLineRepository sobre PostgreSQL (usable con pool o tx).
type CartLineRepo struct {
	q Querier
}

// NewCartLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartLineRepository(q Querier) *CartLineRepo {
	return &CartLineRepo{q: q}
}

// Create persiste una nueva línea.
func (r *CartLineRepo) Create(ctx context.Context, l *entity.CartLine) error {
	query := `
		INSERT INTO cart_lines (id, company_id, shop_id, cart_date, party_id, product_id, quantity, unit_price, currency_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, nullable(l.ShopID), l.CartDate, nullable(l.PartyID), l.ProductID,
		l.Quantity, l.UnitPrice, nullable(l.CurrencyID), l.State, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert cart line: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert cart line: %w", err)
	}
	return nil
}

// Update guarda los campos editables de la línea.
func (r *CartLineRepo) Update(ctx context.Context, l *entity.CartLine) error {
	query := `
		UPDATE cart_lines SET shop_id = $2, cart_date = $3, party_id = $4, product_id = $5, quantity = $6,
			unit_price = $7, currency_id = $8, state = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		l.ID, nullable(l.ShopID), l.CartDate, nullable(l.PartyID), l.ProductID, l.Quantity,
		l.UnitPrice, nullable(l.CurrencyID), l.State, l.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("update cart line: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update cart line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *CartLineRepo) GetByID(ctx context.Context, id string) (*entity.CartLine, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE id = $1`
	l, err := scanCartLine(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart line: %w", err)
	}
	return l, nil
}

// GetByIDs devuelve las líneas existentes en el orden de ids.
func (r *CartLineRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE id = ANY($1::uuid[])`
	return r.byIDs(ctx, query, ids)
}

// LockByIDs bloquea las filas (FOR UPDATE) hasta el fin de la transacción.
// El orden por id evita interbloqueos entre consolidaciones concurrentes.
func (r *CartLineRepo) LockByIDs(ctx context.Context, ids []string) ([]*entity.CartLine, error) {
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines WHERE id = ANY($1::uuid[]) ORDER BY id FOR UPDATE`
	return r.byIDs(ctx, query, ids)
}

func (r *CartLineRepo) byIDs(ctx context.Context, query string, ids []string) ([]*entity.CartLine, error) {
	args := uuidArgs(ids)
	if len(args) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("get cart lines: %w", err)
	}
	defer rows.Close()
	byID := make(map[string]*entity.CartLine, len(args))
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		byID[l.ID] = l
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]*entity.CartLine, 0, len(byID))
	for _, id := range args {
		if l, ok := byID[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

// List lista líneas filtradas, ordenadas por cart_date DESC, id DESC.
func (r *CartLineRepo) List(ctx context.Context, f repository.CartLineFilter) ([]*entity.CartLine, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CompanyID != "" {
		add("company_id = $%d", f.CompanyID)
	}
	if f.ShopID != "" {
		add("shop_id = $%d", f.ShopID)
	}
	if f.PartyID != "" {
		add("party_id = $%d", f.PartyID)
	}
	if f.State != "" {
		add("state = $%d", f.State)
	}
	query := `SELECT ` + cartLineColumns + ` FROM cart_lines`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY cart_date DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartLine
	for rows.Next() {
		l, err := scanCartLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Delete borra las líneas en una sola sentencia.
func (r *CartLineRepo) Delete(ctx context.Context, ids []string) error {
	args := uuidArgs(ids)
	if len(args) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_lines WHERE id = ANY($1::uuid[])`, args); err != nil {
		return fmt.Errorf("delete cart lines: %w", err)
	}
	return nil
}

// MarkDone pasa a done todas las líneas en una sola escritura.
func (r *CartLineRepo) MarkDone(ctx context.Context, ids []string) error {
	args := uuidArgs(ids)
	if len(args) == 0 {
		return nil
	}
	_, err := r.q.Exec(ctx,
		`UPDATE cart_lines SET state = $2, updated_at = now() WHERE id = ANY($1::uuid[])`,
		args, entity.CartStateDone,
	)
	if err != nil {
		return fmt.Errorf("mark cart lines done: %w", err)
	}
	return nil
}

func scanCartLine(row pgx.Row) (*entity.CartLine, error) {
	var l entity.CartLine
	err := row.Scan(
		&l.ID, &l.CompanyID, &l.ShopID, &l.CartDate, &l.PartyID,
		&l.ProductID, &l.Quantity, &l.UnitPrice, &l.CurrencyID, &l.State, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
