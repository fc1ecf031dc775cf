package checkout

import (
	"net/http"
	"strconv"

	"mani_electrical_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// GetGiftEligibility indique si un sous-total donne droit au cadeau
// promotionnel. Le client calcule déjà l'éligibilité localement sur la
// sélection ; cet endpoint sert d'autorité au moment du récapitulatif.
func GetGiftEligibility(c *gin.Context) {
	subtotal := 0.0
	if s := c.Query("subtotal"); s != "" {
		if n, err := strconv.ParseFloat(s, 64); err == nil && n >= 0 {
			subtotal = n
		}
	}

	eligible := models.GiftEligible(subtotal)

	response := gin.H{
		"subtotal":  subtotal,
		"threshold": models.GiftThreshold,
		"eligible":  eligible,
	}
	if eligible {
		response["gift"] = models.PromotionalGift()
	}

	c.JSON(http.StatusOK, response)
}
