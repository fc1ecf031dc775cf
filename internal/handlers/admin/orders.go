package admin

import (
	"context"
	"net/http"
	"time"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateOrderStatus fait avancer une commande dans le flux de livraison
// (processing → shipped → delivered). Le passage à delivered fixe
// delivered_at, point de départ de la fenêtre de retour.
func UpdateOrderStatus(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Status != models.OrderStatusShipped && input.Status != models.OrderStatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"status": input.Status}
	if input.Status == models.OrderStatusDelivered {
		update["delivered_at"] = time.Now()
	}

	// Une commande annulée ne réintègre jamais le flux de livraison
	result, err := database.MongoOrdersDB.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": objID, "status": bson.M{"$ne": models.OrderStatusCancelled}},
		bson.M{"$set": update})
	if err != nil || result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour"})
}
