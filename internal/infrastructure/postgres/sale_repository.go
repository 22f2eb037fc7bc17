package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id::text, company_id::text, COALESCE(shop_id::text, ''), party_id::text, COALESCE(currency_id::text, ''),
	COALESCE(price_list_id::text, ''), reference, description, comment, sale_date, state,
	untaxed_amount, tax_amount, total_amount, created_at, updated_at`

const saleLineColumns = `id::text, sale_id::text, sequence, product_id::text, description, unit, quantity, unit_price,
	tax_ids, amount, tax_amount`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera. Sin referencia se asigna la siguiente de sale_reference_seq (SO00001).
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, company_id, shop_id, party_id, currency_id, price_list_id, reference, description, comment,
			sale_date, state, untaxed_amount, tax_amount, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE(NULLIF($7, ''), 'SO' || lpad(nextval('sale_reference_seq')::text, 5, '0')),
			$8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING reference`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.CompanyID, nullable(s.ShopID), s.PartyID, nullable(s.CurrencyID), nullable(s.PriceListID),
		s.Reference, s.Description, s.Comment, s.SaleDate, s.State,
		s.UntaxedAmount, s.TaxAmount, s.TotalAmount, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.Reference)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de pedido.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, sequence, product_id, description, unit, quantity, unit_price, tax_ids, amount, tax_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	taxIDs := l.TaxIDs
	if taxIDs == nil {
		taxIDs = []string{}
	}
	_, err := r.q.Exec(ctx, query,
		l.ID, l.SaleID, l.Sequence, l.ProductID, l.Description, l.Unit,
		l.Quantity, l.UnitPrice, taxIDs, l.Amount, l.TaxAmount,
	)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// UpdateTotals guarda los importes de cabecera.
func (r *SaleRepo) UpdateTotals(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sales SET untaxed_amount = $2, tax_amount = $3, total_amount = $4, updated_at = now() WHERE id = $1`,
		s.ID, s.UntaxedAmount, s.TaxAmount, s.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("update sale totals: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !validUUID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s.Lines, err = r.GetLines(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByIDs devuelve los pedidos existentes en el orden de ids, con sus líneas.
func (r *SaleRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Sale, error) {
	args := uuidArgs(ids)
	if len(args) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = ANY($1::uuid[])`, args)
	if err != nil {
		return nil, fmt.Errorf("get sales: %w", err)
	}
	byID := make(map[string]*entity.Sale, len(args))
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		byID[s.ID] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := r.q.Query(ctx,
		`SELECT `+saleLineColumns+` FROM sale_lines WHERE sale_id = ANY($1::uuid[]) ORDER BY sale_id, sequence`, args)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		l, err := scanSaleLine(lineRows)
		if err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		if s, ok := byID[l.SaleID]; ok {
			s.Lines = append(s.Lines, l)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	out := make([]*entity.Sale, 0, len(byID))
	for _, id := range args {
		if s, ok := byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// GetLines devuelve las líneas del pedido por secuencia.
func (r *SaleRepo) GetLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleLineColumns+` FROM sale_lines WHERE sale_id = $1 ORDER BY sequence`, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		l, err := scanSaleLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.ShopID, &s.PartyID, &s.CurrencyID,
		&s.PriceListID, &s.Reference, &s.Description, &s.Comment, &s.SaleDate, &s.State,
		&s.UntaxedAmount, &s.TaxAmount, &s.TotalAmount, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSaleLine(row pgx.Row) (*entity.SaleLine, error) {
	var l entity.SaleLine
	err := row.Scan(
		&l.ID, &l.SaleID, &l.Sequence, &l.ProductID, &l.Description, &l.Unit, &l.Quantity, &l.UnitPrice,
		&l.TaxIDs, &l.Amount, &l.TaxAmount,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
