package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mani_electrical_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"cart": models.Cart{Items: []models.CartItem{}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("jeton-test")

	_, err := c.FetchCart(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer jeton-test", gotAuth)
}

func TestClientDecodesCartEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/add", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["productId"])
		assert.Equal(t, 2.0, body["quantity"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "Produit ajouté au panier",
			"cart": models.Cart{
				Items:       []models.CartItem{{ProductID: "p1", Name: "Multiprise", Price: 250, Quantity: 2}},
				TotalAmount: 500,
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("jeton")

	cart, err := c.AddCartItem(context.Background(), "p1", 2)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 500.0, cart.TotalAmount)
}

func TestClientSurfacesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Stock insuffisant"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.SetToken("jeton")

	_, err := c.AddCartItem(context.Background(), "p1", 99)

	require.Error(t, err)
	apiErr, okCast := err.(*apiError)
	require.True(t, okCast)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Stock insuffisant", apiErr.Message)
}

func TestClientAuthenticatedLifecycle(t *testing.T) {
	c := NewClient("http://localhost:8080/")

	assert.False(t, c.Authenticated())
	c.SetToken("jeton")
	assert.True(t, c.Authenticated())
	c.ClearToken()
	assert.False(t, c.Authenticated())
}

func TestClientTimeoutConfigured(t *testing.T) {
	c := NewClient("http://localhost:8080")
	assert.Equal(t, RequestTimeout, c.http.Timeout)
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cart", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"cart": models.Cart{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	_, err := c.FetchCart(context.Background())
	require.NoError(t, err)
}
