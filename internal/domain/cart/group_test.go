package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salecart-api/internal/domain"
	"github.com/jhoicas/salecart-api/internal/domain/cart"
	"github.com/jhoicas/salecart-api/internal/domain/entity"
)

func partyLine(id, party, product string) *entity.CartLine {
	l := line("1", "5")
	l.ID, l.PartyID, l.ProductID = id, party, product
	return l
}

func TestGroupByParty_ConservaOrden(t *testing.T) {
	lines := []*entity.CartLine{
		partyLine("1", "B", "p1"),
		partyLine("2", "A", "p2"),
		partyLine("3", "B", "p3"),
	}

	g, err := cart.GroupByParty(lines)
	require.NoError(t, err)

	require.Len(t, g.Groups, 2)
	assert.Equal(t, "B", g.Groups[0].PartyID)
	assert.Equal(t, "A", g.Groups[1].PartyID)
	require.Len(t, g.Groups[0].Items, 2)
	assert.Equal(t, "p1", g.Groups[0].Items[0].ProductID)
	assert.Equal(t, "p3", g.Groups[0].Items[1].ProductID)
	assert.Equal(t, []string{"1", "2", "3"}, g.LineIDs)
}

func TestGroupByParty_OmiteDone(t *testing.T) {
	done := partyLine("1", "A", "p1")
	done.State = entity.CartStateDone
	// Una línea done sin tercero tampoco debe fallar
	doneNoParty := partyLine("2", "", "p1")
	doneNoParty.State = entity.CartStateDone

	g, err := cart.GroupByParty([]*entity.CartLine{done, doneNoParty, partyLine("3", "A", "p2")})
	require.NoError(t, err)
	require.Len(t, g.Groups, 1)
	assert.Len(t, g.Groups[0].Items, 1)
	assert.Equal(t, []string{"3"}, g.LineIDs)
}

func TestGroupByParty_SinTercero(t *testing.T) {
	_, err := cart.GroupByParty([]*entity.CartLine{partyLine("1", "A", "p1"), partyLine("42", "", "p2")})

	var mp *domain.MissingPartyError
	require.ErrorAs(t, err, &mp)
	assert.Equal(t, "42", mp.CartLineID)
	assert.ErrorIs(t, err, domain.ErrMissingParty)
	assert.Contains(t, err.Error(), "42")
}
