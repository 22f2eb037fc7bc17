package dto

// SaleValuesRequest valores que sobrescriben los del borrador de cada pedido creado.
// Se aplican campo a campo; los ausentes conservan el valor por defecto del pedido.
type SaleValuesRequest struct {
	Reference   *string `json:"reference,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Comment     *string `json:"comment,omitempty"`
	SaleDate    *string `json:"sale_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ShopID      *string `json:"shop_id,omitempty" validate:"omitempty,min=1,max=64"`
}

// ConsolidateRequest body para POST /api/carts/consolidate.
type ConsolidateRequest struct {
	CartIDs []string          `json:"cart_ids" validate:"required,min=1,dive,required"`
	Values  SaleValuesRequest `json:"values"`
}

// ConsolidateResponse pedidos creados y la ruta para abrirlos.
type ConsolidateResponse struct {
	SaleIDs []string       `json:"sale_ids"`
	Sales   []SaleResponse `json:"sales"`
	Open    string         `json:"open"`
}

// SaleResponse pedido de venta con detalle.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	ShopID        string             `json:"shop_id,omitempty"`
	PartyID       string             `json:"party_id"`
	CurrencyID    string             `json:"currency_id,omitempty"`
	PriceListID   string             `json:"price_list_id,omitempty"`
	Reference     string             `json:"reference"`
	Description   string             `json:"description,omitempty"`
	Comment       string             `json:"comment,omitempty"`
	SaleDate      string             `json:"sale_date"`
	State         string             `json:"state"`
	UntaxedAmount string             `json:"untaxed_amount"`
	TaxAmount     string             `json:"tax_amount"`
	TotalAmount   string             `json:"total_amount"`
	Lines         []SaleLineResponse `json:"lines"`
}

// SaleLineResponse línea de pedido.
type SaleLineResponse struct {
	ID          string   `json:"id"`
	Sequence    int      `json:"sequence"`
	ProductID   string   `json:"product_id"`
	Description string   `json:"description,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Quantity    string   `json:"quantity"`
	UnitPrice   string   `json:"unit_price"`
	TaxIDs      []string `json:"tax_ids,omitempty"`
	Amount      string   `json:"amount"`
}

// SaleListResponse pedidos abiertos tras consolidar.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}
