package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una línea de carrito.
const (
	CartStateDraft   = "draft"
	CartStateWaiting = "waiting" // reservado para flujos externos; ninguna operación del carrito lo asigna
	CartStateDone    = "done"
)

// CartLine representa una línea borrador de carrito (producto, cantidad, precio) previa al pedido.
// Los importes derivados no se persisten: se calculan con el paquete domain/cart.
type CartLine struct {
	ID         string
	CompanyID  string
	ShopID     string
	CartDate   time.Time
	PartyID    string // opcional hasta la consolidación
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	CurrencyID string
	State      string // draft, waiting, done
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsDone indica si la línea ya fue consolidada en un pedido.
func (l *CartLine) IsDone() bool { return l.State == CartStateDone }

// CartLineAmounts importes derivados de una línea, redondeados a la precisión de la moneda.
type CartLineAmounts struct {
	CurrencyDigits   int32
	UntaxedAmount    decimal.Decimal
	AmountWithTax    decimal.Decimal
	UnitPriceWithTax decimal.Decimal
}
