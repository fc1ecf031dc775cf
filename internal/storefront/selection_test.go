package storefront

import (
	"context"
	"testing"

	"mani_electrical_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoLineCart() []models.CartItem {
	return []models.CartItem{
		{ProductID: "a", Name: "Perceuse", Price: 100, Quantity: 2},
		{ProductID: "b", Name: "Forets", Price: 50, Quantity: 1},
	}
}

func TestToggleIsInvolutive(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("a")
	assert.True(t, sel.Has("a"))

	sel.Toggle("a")
	assert.False(t, sel.Has("a"))
	assert.Equal(t, 0, sel.Count())
}

func TestSelectAllThenClearAll(t *testing.T) {
	sel := NewSelection()
	items := twoLineCart()

	sel.SelectAll(items)
	assert.Equal(t, 2, sel.Count())
	assert.True(t, sel.Has("a"))
	assert.True(t, sel.Has("b"))

	sel.ClearAll()
	assert.Equal(t, 0, sel.Count())
}

func TestSubtotalCountsQuantities(t *testing.T) {
	sel := NewSelection()
	items := twoLineCart()

	// A seul : 2 x 100
	sel.Toggle("a")
	assert.Equal(t, 200.0, sel.Subtotal(items))

	// A + B : 200 + 50
	sel.Toggle("b")
	assert.Equal(t, 250.0, sel.Subtotal(items))
	assert.False(t, sel.GiftEligible(items), "250 sous le seuil cadeau")
}

func TestGiftEligibilityExactThreshold(t *testing.T) {
	sel := NewSelection()
	items := []models.CartItem{
		{ProductID: "a", Price: 9999, Quantity: 1},
		{ProductID: "b", Price: 1, Quantity: 1},
	}

	sel.Toggle("a")
	assert.False(t, sel.GiftEligible(items))

	// franchit exactement le seuil : 9999 + 1 = 10000
	sel.Toggle("b")
	assert.True(t, sel.GiftEligible(items))

	// monotone : décocher repasse sous le seuil
	sel.Toggle("b")
	assert.False(t, sel.GiftEligible(items))
}

func TestReconcileDropsOrphans(t *testing.T) {
	sel := NewSelection()
	items := twoLineCart()
	sel.SelectAll(items)

	// la ligne "a" disparaît du panier
	sel.Reconcile(items[1:])

	assert.False(t, sel.Has("a"), "ligne retirée : sélection purgée")
	assert.True(t, sel.Has("b"))
	assert.Equal(t, 1, sel.Count())
}

func TestBindReconcilesOnCartChange(t *testing.T) {
	api := newFakeAPI()
	api.addProduct("a", "Perceuse", 100, 10)
	api.addProduct("b", "Forets", 50, 10)
	store := NewCartStore(api)
	sel := NewSelection()
	sel.Bind(store)

	store.Initialize(context.Background())
	store.AddItem(context.Background(), "a", 2, nil)
	store.AddItem(context.Background(), "b", 1, nil)
	sel.SelectAll(store.Items())
	require.Equal(t, 2, sel.Count())

	// la suppression côté store purge la sélection sans appel explicite
	res := store.RemoveItem(context.Background(), "a")
	require.True(t, res.Success)

	assert.False(t, sel.Has("a"))
	assert.True(t, sel.Has("b"))
	assert.Equal(t, 50.0, sel.Subtotal(store.Items()))
}

func TestSelectedItemsPreservesCartOrder(t *testing.T) {
	sel := NewSelection()
	items := twoLineCart()
	sel.Toggle("b")
	sel.Toggle("a")

	selected := sel.SelectedItems(items)
	require.Len(t, selected, 2)
	assert.Equal(t, "a", selected[0].ProductID)
	assert.Equal(t, "b", selected[1].ProductID)
}

func TestShippingFeeTiersForSelection(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("x")

	cases := []struct {
		price float64
		fee   float64
	}{
		{300, 99},
		{500, 49},
		{1999, 49},
		{2000, 0},
		{15000, 0},
	}
	for _, tc := range cases {
		items := []models.CartItem{{ProductID: "x", Price: tc.price, Quantity: 1}}
		assert.Equal(t, tc.fee, sel.ShippingFee(items), "sous-total %.0f", tc.price)
	}
}
