package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible del catálogo.
type Product struct {
	ID             string
	CompanyID      string
	SKU            string // código único por empresa
	Name           string
	Description    string
	ListPrice      decimal.Decimal // precio de lista antes de tarifas
	SaleUOM        string          // unidad de venta
	Salable        bool
	CustomerTaxIDs []string // impuestos de cliente aplicables, en orden
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
