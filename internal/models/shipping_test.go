package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShippingFeeTiers(t *testing.T) {
	cases := []struct {
		subtotal float64
		fee      float64
	}{
		{0, StandardShippingFee},
		{499.99, StandardShippingFee},
		{500, ReducedShippingFee},
		{1999.99, ReducedShippingFee},
		{2000, 0},
		{10000, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.fee, ShippingFeeFor(tc.subtotal), "sous-total %.2f", tc.subtotal)
	}
}

func TestGiftEligibleAtExactThreshold(t *testing.T) {
	assert.False(t, GiftEligible(9999.99))
	assert.True(t, GiftEligible(GiftThreshold))
	assert.True(t, GiftEligible(25000))
}

func TestPromotionalGiftIsFree(t *testing.T) {
	gift := PromotionalGift()

	assert.Equal(t, "Lampe torche LED rechargeable (offerte)", gift.Name)
	assert.Equal(t, 0.0, gift.Price)
}

func TestCartTotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: "a", Price: 100, Quantity: 2},
		{ProductID: "b", Price: 50, Quantity: 1},
	}}

	assert.Equal(t, 250.0, cart.Total())
}

func TestEmptyCartTotalIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Cart{}.Total())
}
