package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salecart-api/internal/domain/entity"
	"github.com/jhoicas/salecart-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository = (*ProductRepo)(nil)
	_ repository.TaxRepository     = (*TaxRepo)(nil)
)

// Los impuestos de cliente se agregan en el orden de product_customer_taxes.sequence.
const productColumns = `p.id::text, p.company_id::text, p.sku, p.name, p.description, p.list_price, p.sale_uom, p.salable,
	COALESCE((SELECT array_agg(pct.tax_id::text ORDER BY pct.sequence, pct.tax_id)
		FROM product_customer_taxes pct WHERE pct.product_id = p.id), '{}'),
	p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID con sus impuestos de cliente.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validUUID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByIDs devuelve los productos existentes indexados por ID.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product)
	args := uuidArgs(ids)
	if len(args) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = ANY($1::uuid[])`, args)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.ListPrice, &p.SaleUOM, &p.Salable,
		&p.CustomerTaxIDs, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TaxRepo implementación de TaxRepository.
type TaxRepo struct {
	q Querier
}

// NewTaxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRepository(q Querier) *TaxRepo {
	return &TaxRepo{q: q}
}

// GetByIDs devuelve los impuestos existentes indexados por ID.
func (r *TaxRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Tax, error) {
	out := make(map[string]*entity.Tax)
	args := uuidArgs(ids)
	if len(args) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id::text, name, type, rate, amount, sequence FROM taxes WHERE id = ANY($1::uuid[])`, args)
	if err != nil {
		return nil, fmt.Errorf("get taxes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t entity.Tax
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Rate, &t.Amount, &t.Sequence); err != nil {
			return nil, fmt.Errorf("scan tax: %w", err)
		}
		out[t.ID] = &t
	}
	return out, rows.Err()
}
