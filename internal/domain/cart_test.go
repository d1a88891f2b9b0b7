package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id uuid.UUID, name string, price string, qty int) CartLine {
	return CartLine{
		ProductID:    id,
		ProductName:  name,
		ProductImage: "/img/" + name + ".jpg",
		Price:        decimal.RequireFromString(price),
		Quantity:     qty,
	}
}

func TestApply_AddItemMergesByProductID(t *testing.T) {
	id := uuid.New()
	cart := NewCart("c1")

	cart = Apply(cart, AddItem{Line: line(id, "mug", "12.50", 2)})
	cart = Apply(cart, AddItem{Line: line(id, "mug", "12.50", 3)})

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
}

func TestApply_AddItemKeepsFirstSnapshot(t *testing.T) {
	id := uuid.New()
	cart := NewCart("c1")

	cart = Apply(cart, AddItem{Line: line(id, "mug", "12.50", 1)})

	// Same product added again with a changed name and price. The line
	// already in the cart keeps its original snapshot.
	updated := line(id, "mug-renamed", "14.00", 1)
	cart = Apply(cart, AddItem{Line: updated})

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "mug", cart.Lines[0].ProductName)
	assert.True(t, cart.Lines[0].Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestApply_AddItemClampsNonPositiveQuantity(t *testing.T) {
	cart := Apply(NewCart("c1"), AddItem{Line: line(uuid.New(), "mug", "12.50", 0)})

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestApply_RemoveItem(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	cart := NewCart("c1")
	cart = Apply(cart, AddItem{Line: line(a, "mug", "12.50", 1)})
	cart = Apply(cart, AddItem{Line: line(b, "vase", "30.00", 1)})

	cart = Apply(cart, RemoveItem{ProductID: a})

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, b, cart.Lines[0].ProductID)

	// Removing a product that is not in the cart changes nothing.
	cart = Apply(cart, RemoveItem{ProductID: uuid.New()})
	assert.Len(t, cart.Lines, 1)
}

func TestApply_SetQuantity(t *testing.T) {
	id := uuid.New()
	cart := Apply(NewCart("c1"), AddItem{Line: line(id, "mug", "12.50", 2)})

	cart = Apply(cart, SetQuantity{ProductID: id, Quantity: 7})
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 7, cart.Lines[0].Quantity)

	// Zero removes the line entirely.
	cart = Apply(cart, SetQuantity{ProductID: id, Quantity: 0})
	assert.Empty(t, cart.Lines)

	// Setting quantity for an absent product is a no-op.
	cart = Apply(cart, SetQuantity{ProductID: uuid.New(), Quantity: 3})
	assert.Empty(t, cart.Lines)
}

func TestApply_Clear(t *testing.T) {
	cart := NewCart("c1")
	cart = Apply(cart, AddItem{Line: line(uuid.New(), "mug", "12.50", 2)})
	cart = Apply(cart, AddItem{Line: line(uuid.New(), "vase", "30.00", 1)})

	cart = Apply(cart, Clear{})

	assert.Empty(t, cart.Lines)
	assert.Equal(t, "c1", cart.ID)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	id := uuid.New()
	before := Apply(NewCart("c1"), AddItem{Line: line(id, "mug", "12.50", 2)})

	_ = Apply(before, SetQuantity{ProductID: id, Quantity: 9})
	_ = Apply(before, Clear{})

	require.Len(t, before.Lines, 1)
	assert.Equal(t, 2, before.Lines[0].Quantity)
}

func TestCart_SubtotalAndCount(t *testing.T) {
	cart := NewCart("c1")
	cart = Apply(cart, AddItem{Line: line(uuid.New(), "mug", "12.50", 2)})
	cart = Apply(cart, AddItem{Line: line(uuid.New(), "vase", "30.00", 1)})

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("55.00")),
		"got %s", cart.Subtotal())
	assert.Equal(t, 3, cart.Count())

	empty := NewCart("c2")
	assert.True(t, empty.Subtotal().IsZero())
	assert.Zero(t, empty.Count())
}
