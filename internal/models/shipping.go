package models

// Paliers de livraison (en roupies)
const (
	FreeShippingThreshold    = 2000.0
	ReducedShippingThreshold = 500.0
	ReducedShippingFee       = 49.0
	StandardShippingFee      = 99.0
)

// Seuil du cadeau promotionnel
const GiftThreshold = 10000.0

type ShippingCalculation struct {
	CartTotal     float64 `json:"cart_total"`
	Fee           float64 `json:"fee"`
	FreeThreshold float64 `json:"free_threshold"`
	IsFree        bool    `json:"is_free"`
}

// ShippingFeeFor retourne les frais de port pour un sous-total donné
func ShippingFeeFor(subtotal float64) float64 {
	switch {
	case subtotal >= FreeShippingThreshold:
		return 0
	case subtotal >= ReducedShippingThreshold:
		return ReducedShippingFee
	default:
		return StandardShippingFee
	}
}

// GiftEligible indique si le sous-total donne droit au cadeau promotionnel
func GiftEligible(subtotal float64) bool {
	return subtotal >= GiftThreshold
}

// PromotionalGift est le cadeau offert au-dessus du seuil
func PromotionalGift() GiftItem {
	return GiftItem{Name: "Lampe torche LED rechargeable (offerte)", Price: 0}
}
