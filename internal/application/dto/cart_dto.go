package dto

import "github.com/shopspring/decimal"

// CreateCartLineRequest body para POST /api/carts.
// Los campos vacíos toman los valores por defecto (fecha de hoy, cantidad 1, tienda y moneda del usuario).
type CreateCartLineRequest struct {
	ShopID     string           `json:"shop_id,omitempty" validate:"omitempty,max=64"`
	CartDate   string           `json:"cart_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PartyID    string           `json:"party_id,omitempty" validate:"omitempty,max=64"`
	ProductID  string           `json:"product_id" validate:"required,max=64"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"` // nil = precio de tarifa
	CurrencyID string           `json:"currency_id,omitempty" validate:"omitempty,max=64"`
}

// UpdateCartLineRequest body para PUT /api/carts/:id. Solo se modifican los campos presentes.
type UpdateCartLineRequest struct {
	CartDate   *string          `json:"cart_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PartyID    *string          `json:"party_id,omitempty" validate:"omitempty,max=64"`
	ProductID  *string          `json:"product_id,omitempty" validate:"omitempty,min=1,max=64"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	CurrencyID *string          `json:"currency_id,omitempty" validate:"omitempty,min=1,max=64"`
}

// CartLineResponse línea de carrito con sus importes derivados.
// Los importes van como texto con la precisión de la moneda ("22.00").
type CartLineResponse struct {
	ID               string `json:"id"`
	ShopID           string `json:"shop_id"`
	CartDate         string `json:"cart_date"`
	PartyID          string `json:"party_id,omitempty"`
	ProductID        string `json:"product_id"`
	Quantity         string `json:"quantity"`
	UnitPrice        string `json:"unit_price"`
	CurrencyID       string `json:"currency_id,omitempty"`
	State            string `json:"state"`
	CurrencyDigits   int32  `json:"currency_digits"`
	UntaxedAmount    string `json:"untaxed_amount"`
	AmountWithTax    string `json:"amount_w_tax"`
	UnitPriceWithTax string `json:"unit_price_w_tax"`
}

// CartLineListResponse listado paginado de líneas.
type CartLineListResponse struct {
	Items []CartLineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CartLineListQuery filtros de GET /api/carts.
type CartLineListQuery struct {
	PageRequest
	PartyID string `query:"party_id"`
	State   string `query:"state" validate:"omitempty,oneof=draft waiting done"`
}

// CartOnChangeRequest body para POST /api/carts/onchange: línea aún no guardada.
// Field indica qué campo cambió: product (por defecto) o quantity.
type CartOnChangeRequest struct {
	Field      string           `json:"field,omitempty" validate:"omitempty,oneof=product quantity"`
	PartyID    string           `json:"party_id,omitempty"`
	ProductID  string           `json:"product_id,omitempty"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice  *decimal.Decimal `json:"unit_price,omitempty"`
	CurrencyID string           `json:"currency_id,omitempty"`
}

// CartOnChangeResponse valores recalculados para la línea.
type CartOnChangeResponse struct {
	UnitPrice   string `json:"unit_price"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// CartIDsRequest body con una selección de líneas (importes y borrado masivo).
type CartIDsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// CartAmountsResponse importes por ID de línea.
type CartAmountsResponse struct {
	Amounts map[string]CartAmounts `json:"amounts"`
}

// CartAmounts importes derivados de una línea.
type CartAmounts struct {
	CurrencyDigits   int32  `json:"currency_digits"`
	UntaxedAmount    string `json:"untaxed_amount"`
	AmountWithTax    string `json:"amount_w_tax"`
	UnitPriceWithTax string `json:"unit_price_w_tax"`
}
