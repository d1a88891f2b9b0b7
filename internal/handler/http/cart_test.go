package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartHeaders(id string) map[string]string {
	return map[string]string{"X-Cart-ID": id}
}

func getCart(t *testing.T, ts *testServer, cartID string) cartResponse {
	t.Helper()

	rec := ts.do(t, http.MethodGet, "/api/v1/cart", nil, cartHeaders(cartID))
	require.Equal(t, http.StatusOK, rec.Code)

	var cart cartResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &cart))
	return cart
}

func TestCartRequiresHeader(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/cart", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_PARAMETER", env.Error.Code)
}

func TestCartStartsEmpty(t *testing.T) {
	ts := newTestServer(t)

	cart := getCart(t, ts, "cart-1")
	assert.Equal(t, "cart-1", cart.ID)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.Subtotal)
	assert.Zero(t, cart.Count)
}

func TestCartAddUpdateRemoveFlow(t *testing.T) {
	ts := newTestServer(t)
	mug := ts.seedProduct(t, "Ceramic Mug", "12.50")
	vase := ts.seedProduct(t, "Vase", "30.00")

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": mug.ID.String(),
		"quantity":  2,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": vase.ID.String(),
		"quantity":  1,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := getCart(t, ts, "cart-1")
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "55.00", cart.Subtotal)
	assert.Equal(t, 3, cart.Count)

	// Adding the same product again merges, not duplicates.
	rec = ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": mug.ID.String(),
		"quantity":  1,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	cart = getCart(t, ts, "cart-1")
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 4, cart.Count)

	// Set quantity, then remove one line.
	rec = ts.do(t, http.MethodPut, "/api/v1/cart/items/"+mug.ID.String(), map[string]any{
		"quantity": 1,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/cart/items/"+vase.ID.String(), nil, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	cart = getCart(t, ts, "cart-1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "12.50", cart.Subtotal)
}

func TestCartAddUnknownProduct(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": uuid.New().String(),
		"quantity":  1,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": "nope",
		"quantity":  0,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "ProductID")
	assert.Contains(t, env.Error.Fields, "Quantity")
}

func TestCartSetQuantityZeroRemoves(t *testing.T) {
	ts := newTestServer(t)
	mug := ts.seedProduct(t, "Mug", "12.50")

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": mug.ID.String(),
		"quantity":  2,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPut, "/api/v1/cart/items/"+mug.ID.String(), map[string]any{
		"quantity": 0,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := getCart(t, ts, "cart-1")
	assert.Empty(t, cart.Items)
}

func TestCartClear(t *testing.T) {
	ts := newTestServer(t)
	mug := ts.seedProduct(t, "Mug", "12.50")

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": mug.ID.String(),
		"quantity":  2,
	}, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/cart", nil, cartHeaders("cart-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := getCart(t, ts, "cart-1")
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0.00", cart.Subtotal)
}

func TestCartsAreIsolatedByID(t *testing.T) {
	ts := newTestServer(t)
	mug := ts.seedProduct(t, "Mug", "12.50")

	rec := ts.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"productId": mug.ID.String(),
		"quantity":  1,
	}, cartHeaders("cart-a"))
	require.Equal(t, http.StatusOK, rec.Code)

	cart := getCart(t, ts, "cart-b")
	assert.Empty(t, cart.Items)
}
