package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/salecart-api/internal/seed"
)

// WriteSeed inserta los datos maestros en una sola transacción. Las filas existentes se conservan
// (ON CONFLICT DO NOTHING), así que puede ejecutarse varias veces.
func WriteSeed(ctx context.Context, pool *pgxpool.Pool, d *seed.Data) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b := seedBatch(d)
	br := tx.SendBatch(ctx, b)
	for i := 0; i < b.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("seed sentencia %d: %w", i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("seed batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// seedBatch arma las sentencias respetando el orden de las claves foráneas.
func seedBatch(d *seed.Data) *pgx.Batch {
	b := &pgx.Batch{}
	for _, c := range d.Currencies {
		b.Queue(`INSERT INTO currencies (id, code, name, symbol, digits, rounding)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			c.ID, c.Code, c.Name, c.Symbol, c.Digits, c.Rounding)
	}
	for _, c := range d.Companies {
		b.Queue(`INSERT INTO companies (id, name, nit, currency_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			c.ID, c.Name, c.NIT, nullable(c.CurrencyID), c.CreatedAt, c.UpdatedAt)
	}
	for _, pl := range d.PriceLists {
		b.Queue(`INSERT INTO price_lists (id, company_id, name) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			pl.ID, pl.CompanyID, pl.Name)
	}
	for _, t := range d.Taxes {
		b.Queue(`INSERT INTO taxes (id, name, type, rate, amount, sequence)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT DO NOTHING`,
			t.ID, t.Name, t.Type, t.Rate, t.Amount, t.Sequence)
	}
	for _, p := range d.Products {
		b.Queue(`INSERT INTO products (id, company_id, sku, name, description, list_price, sale_uom, salable, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) ON CONFLICT DO NOTHING`,
			p.ID, p.CompanyID, p.SKU, p.Name, p.Description, p.ListPrice, p.SaleUOM, p.Salable, p.CreatedAt, p.UpdatedAt)
		for i, taxID := range p.CustomerTaxIDs {
			b.Queue(`INSERT INTO product_customer_taxes (product_id, tax_id, sequence)
				VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
				p.ID, taxID, (i+1)*10)
		}
	}
	for _, pl := range d.PriceLists {
		for _, l := range pl.Lines {
			b.Queue(`INSERT INTO price_list_lines (id, price_list_id, product_id, min_quantity, factor, fixed_price, sequence)
				VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING`,
				l.ID, pl.ID, nullable(l.ProductID), l.MinQuantity, l.Factor, l.FixedPrice, l.Sequence)
		}
	}
	for _, sh := range d.Shops {
		b.Queue(`INSERT INTO shops (id, company_id, name, price_list_id, currency_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING`,
			sh.ID, sh.CompanyID, sh.Name, nullable(sh.PriceListID), nullable(sh.CurrencyID), sh.CreatedAt, sh.UpdatedAt)
	}
	for _, u := range d.Users {
		b.Queue(`INSERT INTO users (id, company_id, shop_id, email, password_hash, name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT DO NOTHING`,
			u.ID, u.CompanyID, nullable(u.ShopID), u.Email, u.PasswordHash, u.Name, u.Status, u.CreatedAt, u.UpdatedAt)
	}
	for _, p := range d.Parties {
		b.Queue(`INSERT INTO parties (id, company_id, name, tax_id, email, sale_price_list_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT DO NOTHING`,
			p.ID, p.CompanyID, p.Name, p.TaxID, p.Email, nullable(p.SalePriceListID), p.CreatedAt, p.UpdatedAt)
	}
	return b
}
