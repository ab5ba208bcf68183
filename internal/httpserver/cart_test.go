package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/testutil"
)

func (env *testEnv) addItem(cartID, productID uuid.UUID, quantity int) (int, models.CartItem) {
	env.T.Helper()

	rec, _, c := env.doJSONRequest(http.MethodPost, "/api/cart/"+cartID.String()+"/add-item", map[string]any{
		"productId": productID,
		"quantity":  quantity,
	})
	c.SetParamNames("id")
	c.SetParamValues(cartID.String())
	require.NoError(env.T, env.C.AddItem(c))

	var item models.CartItem
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &item))
	return rec.Code, item
}

func (env *testEnv) getCart(cartID uuid.UUID) models.Cart {
	env.T.Helper()

	rec, _, c := env.doJSONRequest(http.MethodGet, "/api/cart/"+cartID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(cartID.String())
	require.NoError(env.T, env.C.GetCart(c))
	require.Equal(env.T, http.StatusOK, rec.Code)

	var cart models.Cart
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &cart))
	return cart
}

func TestCreateCart(t *testing.T) {
	env := newTestEnv(t)

	rec, _, c := env.doJSONRequest(http.MethodPost, "/api/cart", nil)
	require.NoError(t, env.C.CreateCart(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])
	assert.EqualValues(t, 0, resp["subtotal"])
	assert.EqualValues(t, 0, resp["total"])
	assert.Equal(t, []any{}, resp["cartItems"])

	event := env.Events.last(t)
	assert.Equal(t, "cart_created", event["type"])
	assert.Equal(t, "cart_events", event["topic"])
}

func TestCreateCartWithOwner(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.DB, "owner@example.com")

	rec, _, c := env.doJSONRequest(http.MethodPost, "/api/cart", map[string]any{"ownerId": user.ID})
	require.NoError(t, env.C.CreateCart(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, _, c = env.doJSONRequest(http.MethodPost, "/api/cart", map[string]any{"ownerId": user.ID})
	assert.Equal(t, http.StatusConflict, httpStatus(t, env.C.CreateCart(c)))

	_, _, c = env.doJSONRequest(http.MethodPost, "/api/cart", map[string]any{"ownerId": uuid.New()})
	assert.Equal(t, http.StatusNotFound, httpStatus(t, env.C.CreateCart(c)))

	_, _, c = env.doJSONRequest(http.MethodPost, "/api/cart", map[string]any{"ownerId": "nope"})
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, env.C.CreateCart(c)))

	rec, _, c = env.doJSONRequest(http.MethodGet, "/api/cart/by-user/"+user.ID.String(), nil)
	c.SetParamNames("userId")
	c.SetParamValues(user.ID.String())
	require.NoError(t, env.C.GetCartByUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var cart models.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.NotNil(t, cart.OwnerID)
	assert.Equal(t, user.ID, *cart.OwnerID)
}

func TestGetCartErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, c := env.doJSONRequest(http.MethodGet, "/api/cart/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, env.C.GetCart(c)))

	missing := uuid.NewString()
	_, _, c = env.doJSONRequest(http.MethodGet, "/api/cart/"+missing, nil)
	c.SetParamNames("id")
	c.SetParamValues(missing)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, env.C.GetCart(c)))

	_, _, c = env.doJSONRequest(http.MethodGet, "/api/cart/by-user/"+missing, nil)
	c.SetParamNames("userId")
	c.SetParamValues(missing)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, env.C.GetCartByUser(c)))
}

func TestAddItem(t *testing.T) {
	env := newTestEnv(t)

	cart := testutil.CreateCart(t, env.DB)
	mug := testutil.CreateProduct(t, env.DB, "mug", 1000)
	plate := testutil.CreateProduct(t, env.DB, "plate", 500)

	code, item := env.addItem(cart.ID, mug.ID, 2)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, mug.ID, item.ProductID)

	code, item = env.addItem(cart.ID, mug.ID, 1)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, item.Quantity)

	event := env.Events.last(t)
	assert.Equal(t, "cart_item_updated", event["type"])
	assert.EqualValues(t, 3000, event["total"])

	code, _ = env.addItem(cart.ID, plate.ID, 1)
	require.Equal(t, http.StatusCreated, code)

	got := env.getCart(cart.ID)
	assert.EqualValues(t, 3500, got.Subtotal)
	assert.EqualValues(t, 3500, got.Total)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Product)
}

func TestAddItemBadRequests(t *testing.T) {
	env := newTestEnv(t)

	cart := testutil.CreateCart(t, env.DB)
	mug := testutil.CreateProduct(t, env.DB, "mug", 1000)

	tests := []struct {
		name   string
		cartID string
		body   any
		want   int
	}{
		{name: "bad cart id", cartID: "x", body: map[string]any{"productId": mug.ID, "quantity": 1}, want: http.StatusBadRequest},
		{name: "zero quantity", cartID: cart.ID.String(), body: map[string]any{"productId": mug.ID, "quantity": 0}, want: http.StatusBadRequest},
		{name: "negative quantity", cartID: cart.ID.String(), body: map[string]any{"productId": mug.ID, "quantity": -1}, want: http.StatusBadRequest},
		{name: "missing product", cartID: cart.ID.String(), body: map[string]any{"quantity": 1}, want: http.StatusBadRequest},
		{name: "bad product id", cartID: cart.ID.String(), body: map[string]any{"productId": "abc", "quantity": 1}, want: http.StatusBadRequest},
		{name: "unknown product", cartID: cart.ID.String(), body: map[string]any{"productId": uuid.New(), "quantity": 1}, want: http.StatusNotFound},
		{name: "unknown cart", cartID: uuid.NewString(), body: map[string]any{"productId": mug.ID, "quantity": 1}, want: http.StatusNotFound},
		{name: "string quantity", cartID: cart.ID.String(), body: map[string]any{"productId": mug.ID, "quantity": "two"}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, c := env.doJSONRequest(http.MethodPost, "/api/cart/"+tt.cartID+"/add-item", tt.body)
			c.SetParamNames("id")
			c.SetParamValues(tt.cartID)
			assert.Equal(t, tt.want, httpStatus(t, env.C.AddItem(c)))
		})
	}

	var n int64
	require.NoError(t, env.DB.Model(&models.CartItem{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSetItemQuantity(t *testing.T) {
	env := newTestEnv(t)

	cart := testutil.CreateCart(t, env.DB)
	mug := testutil.CreateProduct(t, env.DB, "mug", 250)
	_, item := env.addItem(cart.ID, mug.ID, 1)
	id := item.ID.String()

	rec, _, c := env.doJSONRequest(http.MethodPatch, "/api/cart/"+id, map[string]any{"quantity": 4})
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.C.SetItemQuantity(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Quantity)
	assert.EqualValues(t, 1000, env.getCart(cart.ID).Total)

	_, _, c = env.doJSONRequest(http.MethodPatch, "/api/cart/"+id, map[string]any{"quantity": -1})
	c.SetParamNames("id")
	c.SetParamValues(id)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, env.C.SetItemQuantity(c)))

	_, _, c = env.doJSONRequest(http.MethodPatch, "/api/cart/"+id, map[string]any{})
	c.SetParamNames("id")
	c.SetParamValues(id)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, env.C.SetItemQuantity(c)))

	rec, _, c = env.doJSONRequest(http.MethodPatch, "/api/cart/"+id, map[string]any{"quantity": 0})
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, env.C.SetItemQuantity(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	cartAfter := env.getCart(cart.ID)
	assert.Empty(t, cartAfter.Items)
	assert.EqualValues(t, 0, cartAfter.Total)

	_, _, c = env.doJSONRequest(http.MethodPatch, "/api/cart/"+id, map[string]any{"quantity": 2})
	c.SetParamNames("id")
	c.SetParamValues(id)
	assert.Equal(t, http.StatusNotFound, httpStatus(t, env.C.SetItemQuantity(c)))
}

func TestDecrementAndDeleteItem(t *testing.T) {
	env := newTestEnv(t)

	cart := testutil.CreateCart(t, env.DB)
	a := testutil.CreateProduct(t, env.DB, "a", 1000)
	b := testutil.CreateProduct(t, env.DB, "b", 500)
	_, itemA := env.addItem(cart.ID, a.ID, 2)
	_, itemB := env.addItem(cart.ID, b.ID, 1)
	assert.EqualValues(t, 2500, env.getCart(cart.ID).Total)

	rec, _, c := env.doJSONRequest(http.MethodPatch, "/api/cart/"+itemA.ID.String()+"/decrement", nil)
	c.SetParamNames("id")
	c.SetParamValues(itemA.ID.String())
	require.NoError(t, env.C.DecrementItem(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1500, env.getCart(cart.ID).Total)

	rec, _, c = env.doJSONRequest(http.MethodDelete, "/api/cart/"+itemB.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(itemB.ID.String())
	require.NoError(t, env.C.DeleteItem(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.EqualValues(t, 1000, env.getCart(cart.ID).Total)

	rec, _, c = env.doJSONRequest(http.MethodPatch, "/api/cart/"+itemA.ID.String()+"/decrement", nil)
	c.SetParamNames("id")
	c.SetParamValues(itemA.ID.String())
	require.NoError(t, env.C.DecrementItem(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	got := env.getCart(cart.ID)
	assert.Empty(t, got.Items)
	assert.EqualValues(t, 0, got.Subtotal)

	_, _, c = env.doJSONRequest(http.MethodDelete, "/api/cart/"+itemB.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(itemB.ID.String())
	assert.Equal(t, http.StatusNotFound, httpStatus(t, env.C.DeleteItem(c)))
}
