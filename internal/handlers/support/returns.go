package support

import (
	"context"
	"log"
	"net/http"
	"time"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fenêtre de retour après livraison
const ReturnWindow = 7 * 24 * time.Hour

// Délai d'acheminement forfaitaire pour les commandes dont la date de
// livraison n'a pas été suivie (passées avant l'ajout de delivered_at)
const deliveryAllowance = 10 * 24 * time.Hour

// returnDeadline calcule la date limite de retour : 7 jours après la
// livraison. Sans date de livraison, on borne sur la date de commande
// plus le délai d'acheminement forfaitaire.
func returnDeadline(order models.Order) time.Time {
	if order.DeliveredAt != nil {
		return order.DeliveredAt.Add(ReturnWindow)
	}
	return order.CreatedAt.Add(deliveryAllowance + ReturnWindow)
}

// CreateReturnRequest enregistre une demande de retour. Le succès dépend
// uniquement du résultat de l'insertion, pas de l'état de la réponse HTTP
// côté client.
func CreateReturnRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		OrderID string `json:"orderId" binding:"required"`
		Reason  string `json:"reason" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(input.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// La commande doit appartenir à l'utilisateur et être livrée
	var order models.Order
	err = database.MongoOrdersDB.Collection("orders").
		FindOne(ctx, bson.M{"_id": objID, "user_id": userID}).
		Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.Status != models.OrderStatusDelivered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seules les commandes livrées peuvent être retournées"})
		return
	}

	if time.Now().After(returnDeadline(order)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le délai de retour de 7 jours est dépassé"})
		return
	}

	// Une seule demande par commande
	count, _ := database.MongoShopDB.Collection("return_requests").
		CountDocuments(ctx, bson.M{"order_id": input.OrderID})
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Une demande de retour existe déjà pour cette commande"})
		return
	}

	request := models.ReturnRequest{
		ID:        primitive.NewObjectID(),
		OrderID:   input.OrderID,
		UserID:    userID,
		Reason:    input.Reason,
		Status:    models.ReturnStatusPending,
		CreatedAt: time.Now(),
	}

	if _, err := database.MongoShopDB.Collection("return_requests").InsertOne(ctx, request); err != nil {
		log.Println("❌ Erreur MongoDB InsertOne:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement demande"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Demande de retour enregistrée",
		"request": request,
	})
}

// ListReturnRequests liste les demandes de retour (admin)
func ListReturnRequests(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.MongoShopDB.Collection("return_requests").Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération demandes"})
		return
	}
	defer cursor.Close(ctx)

	var requests []models.ReturnRequest
	if err := cursor.All(ctx, &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage demandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// UpdateReturnRequestStatus approuve ou rejette une demande (admin)
func UpdateReturnRequestStatus(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID demande invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Status != models.ReturnStatusApproved && input.Status != models.ReturnStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.MongoShopDB.Collection("return_requests").
		UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": input.Status}})
	if err != nil || result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Demande introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour"})
}
