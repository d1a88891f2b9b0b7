package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/repository/memory"
	apperrors "github.com/meridianhome/storefront/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCartFixture(t *testing.T) (*CartService, *memory.ProductRepository) {
	t.Helper()

	products := memory.NewProductRepository()
	carts := memory.NewCartRepository()
	return NewCartService(carts, products, nil, testLogger()), products
}

func seedProduct(t *testing.T, products *memory.ProductRepository, name, slug, price string) *domain.Product {
	t.Helper()

	p := &domain.Product{
		Name:       name,
		Slug:       slug,
		Price:      decimal.RequireFromString(price),
		Image:      "/img/" + slug + ".jpg",
		CategoryID: uuid.New(),
	}
	require.NoError(t, products.Create(context.Background(), p))
	return p
}

func TestCartService_AddItemSnapshotsProduct(t *testing.T) {
	svc, products := newCartFixture(t)
	ctx := context.Background()

	p := seedProduct(t, products, "Ceramic Mug", "ceramic-mug", "12.50")

	cart, err := svc.AddItem(ctx, "cart-1", p.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "Ceramic Mug", cart.Lines[0].ProductName)
	assert.Equal(t, "/img/ceramic-mug.jpg", cart.Lines[0].ProductImage)
	assert.True(t, cart.Lines[0].Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	// The save is read-your-writes: a fresh Get sees the same state.
	got, err := svc.GetCart(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, cart.Lines, got.Lines)
}

func TestCartService_AddItemUsesSalePrice(t *testing.T) {
	svc, products := newCartFixture(t)
	ctx := context.Background()

	sale := decimal.RequireFromString("9.99")
	p := &domain.Product{
		Name:      "Mug",
		Slug:      "mug",
		Price:     decimal.RequireFromString("12.50"),
		SalePrice: &sale,
	}
	require.NoError(t, products.Create(ctx, p))

	cart, err := svc.AddItem(ctx, "cart-1", p.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.True(t, cart.Lines[0].Price.Equal(sale))
}

func TestCartService_AddItemUnknownProduct(t *testing.T) {
	svc, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), "cart-1", uuid.New(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCartService_AddItemRejectsBadQuantity(t *testing.T) {
	svc, products := newCartFixture(t)
	p := seedProduct(t, products, "Mug", "mug", "12.50")

	_, err := svc.AddItem(context.Background(), "cart-1", p.ID, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_AddItemMergesKeepingFirstSnapshot(t *testing.T) {
	svc, products := newCartFixture(t)
	ctx := context.Background()

	p := seedProduct(t, products, "Mug", "mug", "12.50")

	_, err := svc.AddItem(ctx, "cart-1", p.ID, 1)
	require.NoError(t, err)

	// A price change between adds does not rewrite the existing line.
	p.Price = decimal.RequireFromString("15.00")
	require.NoError(t, products.Update(ctx, p))

	cart, err := svc.AddItem(ctx, "cart-1", p.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 3, cart.Lines[0].Quantity)
	assert.True(t, cart.Lines[0].Price.Equal(decimal.RequireFromString("12.50")))
}

func TestCartService_SetItemQuantity(t *testing.T) {
	svc, products := newCartFixture(t)
	ctx := context.Background()

	p := seedProduct(t, products, "Mug", "mug", "12.50")
	_, err := svc.AddItem(ctx, "cart-1", p.ID, 2)
	require.NoError(t, err)

	cart, err := svc.SetItemQuantity(ctx, "cart-1", p.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Lines[0].Quantity)

	// Zero behaves exactly like removal.
	cart, err = svc.SetItemQuantity(ctx, "cart-1", p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)

	_, err = svc.SetItemQuantity(ctx, "cart-1", p.ID, -1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_ClearCart(t *testing.T) {
	svc, products := newCartFixture(t)
	ctx := context.Background()

	p := seedProduct(t, products, "Mug", "mug", "12.50")
	_, err := svc.AddItem(ctx, "cart-1", p.ID, 2)
	require.NoError(t, err)

	cart, err := svc.ClearCart(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.True(t, cart.Subtotal().IsZero())
	assert.Zero(t, cart.Count())
}

func TestCartService_GetCartMissingIsEmpty(t *testing.T) {
	svc, _ := newCartFixture(t)

	cart, err := svc.GetCart(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "never-seen", cart.ID)
	assert.Empty(t, cart.Lines)
	assert.False(t, cart.UpdatedAt.After(time.Now()))
}
