package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantis/storefront-state/internal/api"
	"github.com/vantis/storefront-state/internal/api/handlers"
	"github.com/vantis/storefront-state/internal/cart"
	"github.com/vantis/storefront-state/internal/catalog"
	"github.com/vantis/storefront-state/internal/model"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(cart.NewStore(nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestPreviewDiscountEndpoint(t *testing.T) {
	srv := newServer(t)

	resp := postJSON(t, srv.URL+"/pricing/preview", handlers.DiscountPreviewRequest{
		BasePriceCents: 2000,
		Mode:           "percent",
		RawValue:       "25",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out handlers.DiscountPreviewResponse
	decodeInto(t, resp, &out)
	assert.True(t, out.Preview.Valid)
	assert.Equal(t, int64(1500), out.Preview.DiscountedPriceCents)

	// Garbage input is a normal 200 with valid=false, not an error.
	resp = postJSON(t, srv.URL+"/pricing/preview", handlers.DiscountPreviewRequest{
		BasePriceCents: 2000,
		Mode:           "bogus",
		RawValue:       "abc",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &out)
	assert.Equal(t, "percent", out.Draft.Mode)
	assert.False(t, out.Preview.Valid)
}

func TestProductsViewEndpoint(t *testing.T) {
	srv := newServer(t)

	products := []model.Product{
		{ID: "p1", Title: "One", Variants: []model.ProductVariant{{Stock: 1, PriceCents: 900}}},
		{ID: "p2", Title: "Two", Variants: []model.ProductVariant{{Stock: 6, PriceCents: 700}}},
		{ID: "p3", Title: "Three", Variants: []model.ProductVariant{{Stock: 2, PriceCents: 300}}},
	}
	resp := postJSON(t, srv.URL+"/admin/products/view", handlers.ProductsViewRequest{
		Products: products,
		State:    catalog.State{Sort: "price_asc", Stock: "low_stock"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out handlers.ProductsViewResponse
	decodeInto(t, resp, &out)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "p3", out.Products[0].ID)
	assert.Equal(t, "p1", out.Products[1].ID)

	// Unknown state values echo back normalized.
	resp = postJSON(t, srv.URL+"/admin/products/view", handlers.ProductsViewRequest{
		Products: products,
		State:    catalog.State{Sort: "whatever", Stock: "plenty"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &out)
	assert.Equal(t, "newest", out.State.Sort)
	assert.Equal(t, "all", out.State.Stock)
}

func TestOptionPayloadEndpoint(t *testing.T) {
	srv := newServer(t)

	resp := postJSON(t, srv.URL+"/admin/options/payload", map[string]any{
		"type":         "dropdown",
		"display_mode": "color_buttons",
		"values_json":  `[{"title":"Blue","price_value":0}]`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out model.OptionPayload
	decodeInto(t, resp, &out)
	assert.Equal(t, "select", out.TypeGroup)
	assert.Nil(t, out.PriceType)
	require.Len(t, out.Values, 1)
	assert.Equal(t, "#0072F5", out.Values[0].SwatchHex)
}

func TestToggleSelectionEndpoint(t *testing.T) {
	srv := newServer(t)

	resp := postJSON(t, srv.URL+"/admin/selection/toggle", handlers.ToggleSelectionRequest{
		Selected: []string{"p1", "p1", " p2 "},
		ID:       "p3",
		Checked:  true,
		AllIDs:   []string{"p1", "p2", "p3"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out handlers.ToggleSelectionResponse
	decodeInto(t, resp, &out)
	assert.Equal(t, []string{"p1", "p2", "p3"}, out.Selected)
	assert.True(t, out.AllSelected)
}

func TestParseCheckoutEndpoint(t *testing.T) {
	srv := newServer(t)

	resp := postJSON(t, srv.URL+"/checkout/parse", map[string]any{
		"order_id":     "o1",
		"checkout_url": "https://pay.example.com/s/abc",
		"status":       "pending",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result model.CheckoutResult
	decodeInto(t, resp, &result)
	assert.Equal(t, "o1", result.OrderID)

	resp = postJSON(t, srv.URL+"/checkout/parse", map[string]any{
		"order_id": "o1",
		"status":   "pending",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestCartSessionLifecycle(t *testing.T) {
	srv := newServer(t)

	snapshot := model.Cart{
		Items: []model.CartItem{
			{ID: "i1", UnitPriceCents: 1200, Currency: "USD", Quantity: 1},
			{ID: "i2", UnitPriceCents: 2500, Currency: "USD", Quantity: 2},
		},
	}

	// Install the server snapshot.
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/carts/c1/", jsonBody(t, snapshot))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state handlers.CartStateResponse
	decodeInto(t, resp, &state)
	assert.Equal(t, int64(6200), state.Cart.Totals.SubtotalCents)

	// Optimistic quantity change.
	resp = postJSON(t, srv.URL+"/carts/c1/items/i2", handlers.UpdateQuantityRequest{Quantity: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mut handlers.CartMutationResponse
	decodeInto(t, resp, &mut)
	assert.Equal(t, 4, mut.Cart.Totals.ItemCount)
	assert.Equal(t, int64(8700), mut.Cart.Totals.SubtotalCents)
	require.NotEmpty(t, mut.RequestID)
	require.Len(t, mut.Pending, 1)

	// Server fails: optimistic view is discarded, session turns stale.
	resp = postJSON(t, srv.URL+"/carts/c1/fail", handlers.FailRequest{RequestID: mut.RequestID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &state)
	assert.True(t, state.Stale)
	assert.Empty(t, state.Pending)

	// Refetch installs a fresh snapshot.
	req, err = http.NewRequest(http.MethodPut, srv.URL+"/carts/c1/", jsonBody(t, snapshot))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	decodeInto(t, resp, &state)
	assert.False(t, state.Stale)
	assert.Equal(t, int64(6200), state.Cart.Totals.SubtotalCents)
}

func TestCartSessionUnknownCart(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/carts/missing/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	buf, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(buf)
}
