package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one entry in a cart. ProductName, ProductImage, and Price are
// a snapshot taken when the line was first added; later catalog edits do not
// rewrite lines already in the cart.
type CartLine struct {
	ProductID    uuid.UUID       `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

// Cart holds the lines for one shopper, keyed by the cart ID the client
// presents on each request.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewCart returns an empty cart with the given ID.
func NewCart(id string) Cart {
	return Cart{ID: id, Lines: []CartLine{}}
}

// Command is a cart mutation. Commands are applied with Apply, which is a
// pure function of (Cart, Command), so every mutation path shares one
// merge-and-clamp rule set.
type Command interface {
	isCommand()
}

// AddItem merges a line into the cart. If a line with the same product ID
// already exists, only its quantity grows; the existing snapshot fields win.
type AddItem struct {
	Line CartLine
}

// RemoveItem drops the line with the given product ID. Removing a product
// that is not in the cart is a no-op.
type RemoveItem struct {
	ProductID uuid.UUID
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line. Setting quantity for an absent product is a no-op.
type SetQuantity struct {
	ProductID uuid.UUID
	Quantity  int
}

// Clear empties the cart.
type Clear struct{}

func (AddItem) isCommand()     {}
func (RemoveItem) isCommand()  {}
func (SetQuantity) isCommand() {}
func (Clear) isCommand()       {}

// Apply returns the cart that results from applying cmd to c. The input cart
// is not modified.
func Apply(c Cart, cmd Command) Cart {
	next := Cart{ID: c.ID, Lines: make([]CartLine, len(c.Lines)), UpdatedAt: c.UpdatedAt}
	copy(next.Lines, c.Lines)

	switch cmd := cmd.(type) {
	case AddItem:
		qty := cmd.Line.Quantity
		if qty <= 0 {
			qty = 1
		}
		merged := false
		for i := range next.Lines {
			if next.Lines[i].ProductID == cmd.Line.ProductID {
				next.Lines[i].Quantity += qty
				merged = true
				break
			}
		}
		if !merged {
			line := cmd.Line
			line.Quantity = qty
			next.Lines = append(next.Lines, line)
		}

	case RemoveItem:
		kept := next.Lines[:0]
		for _, l := range next.Lines {
			if l.ProductID != cmd.ProductID {
				kept = append(kept, l)
			}
		}
		next.Lines = kept

	case SetQuantity:
		if cmd.Quantity <= 0 {
			return Apply(c, RemoveItem{ProductID: cmd.ProductID})
		}
		for i := range next.Lines {
			if next.Lines[i].ProductID == cmd.ProductID {
				next.Lines[i].Quantity = cmd.Quantity
				break
			}
		}

	case Clear:
		next.Lines = []CartLine{}
	}

	return next
}

// Subtotal is the sum of price times quantity across all lines.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Count is the total number of units in the cart, not the number of lines.
func (c Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for the given product, if present.
func (c Cart) Line(productID uuid.UUID) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}
