package checkout

import (
	"net/http"
	"strconv"

	"mani_electrical_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetShippingFee retourne les frais de port pour un sous-total donné.
// Paliers : gratuit dès ₹2000, ₹49 dès ₹500, ₹99 en dessous.
func GetShippingFee(c *gin.Context) {
	cartTotal := 0.0
	if total := c.Query("cart_total"); total != "" {
		if n, err := strconv.ParseFloat(total, 64); err == nil && n >= 0 {
			cartTotal = n
		}
	}

	fee := models.ShippingFeeFor(cartTotal)

	c.JSON(http.StatusOK, models.ShippingCalculation{
		CartTotal:     cartTotal,
		Fee:           fee,
		FreeThreshold: models.FreeShippingThreshold,
		IsFree:        fee == 0,
	})
}
