package user

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

// ListMyAddresses retourne les adresses de l'utilisateur connecté
func ListMyAddresses(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.MongoShopDB.Collection("addresses").Find(ctx, bson.M{"userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération adresses"})
		return
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage adresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

// CreateAddress ajoute une adresse. La première adresse devient l'adresse
// par défaut.
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		FullName   string `json:"fullName" binding:"required"`
		Street     string `json:"street" binding:"required"`
		City       string `json:"city" binding:"required"`
		State      string `json:"state" binding:"required"`
		PostalCode string `json:"postalCode" binding:"required"`
		Phone      string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := database.MongoShopDB.Collection("addresses")

	count, _ := collection.CountDocuments(ctx, bson.M{"userId": userID})

	address := models.Address{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		FullName:   input.FullName,
		Street:     input.Street,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Phone:      input.Phone,
		IsDefault:  count == 0,
	}

	if _, err := collection.InsertOne(ctx, address); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création adresse"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": address})
}

// MakeDefaultAddress définit l'adresse par défaut
func MakeDefaultAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	addressID := c.Param("id")

	objID, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := database.MongoShopDB.Collection("addresses")

	// Retire le défaut des autres adresses puis l'applique à celle-ci
	if _, err := collection.UpdateMany(ctx, bson.M{"userId": userID},
		bson.M{"$set": bson.M{"isDefault": false}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour adresses"})
		return
	}

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": objID, "userId": userID},
		bson.M{"$set": bson.M{"isDefault": true}})
	if err != nil || result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse par défaut mise à jour"})
}

// DeleteAddress supprime une adresse de l'utilisateur
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	addressID := c.Param("id")

	objID, err := primitive.ObjectIDFromHex(addressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.MongoShopDB.Collection("addresses").
		DeleteOne(ctx, bson.M{"_id": objID, "userId": userID})
	if err != nil || result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}
