package cart_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salecart-api/internal/domain"
	"github.com/jhoicas/salecart-api/internal/domain/cart"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

func validLine() *entity.CartLine {
	l := line("1", "10")
	l.ShopID = "s1"
	l.CartDate = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return l
}

func TestCanEdit_SoloEnBorrador(t *testing.T) {
	assert.True(t, cart.CanEdit(cart.FieldQuantity, entity.CartStateDraft))
	assert.False(t, cart.CanEdit(cart.FieldQuantity, entity.CartStateDone))
	assert.False(t, cart.CanEdit(cart.FieldQuantity, entity.CartStateWaiting))
	assert.False(t, cart.CanEdit(cart.FieldState, entity.CartStateDraft))
	assert.False(t, cart.CanEdit("desconocido", entity.CartStateDraft))
}

func TestValidate(t *testing.T) {
	salable := &entity.Product{ID: "p1", Salable: true}

	require.NoError(t, cart.Validate(validLine(), salable))

	l := validLine()
	l.CurrencyID = ""
	err := cart.Validate(l, salable)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), cart.FieldCurrency)

	l = validLine()
	l.Quantity = d("-1")
	assert.ErrorIs(t, cart.Validate(l, salable), domain.ErrInvalidInput)

	err = cart.Validate(validLine(), &entity.Product{ID: "p1", Salable: false})
	assert.ErrorIs(t, err, domain.ErrProductNotSalable)
}
