package support

import (
	"context"
	"log"
	"net/http"
	"time"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"
	"mani_electrical_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateContactMessage enregistre un message du formulaire de contact
func CreateContactMessage(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	msg := models.SupportMessage{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		Handled:   false,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.MongoShopDB.Collection("support_messages").InsertOne(ctx, msg); err != nil {
		log.Println("❌ Erreur MongoDB InsertOne:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement message"})
		return
	}

	// Accusé de réception (best effort)
	go func() {
		if err := services.SendMail(msg.Email, "Nous avons bien reçu votre message",
			services.SupportAckHTML(msg.Name, msg.Subject)); err != nil {
			log.Println("⚠️ Accusé de réception non envoyé:", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message envoyé, nous vous répondrons sous 48h",
	})
}

// ListContactMessages liste les messages de support (admin)
func ListContactMessages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.MongoShopDB.Collection("support_messages").Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération messages"})
		return
	}
	defer cursor.Close(ctx)

	var messages []models.SupportMessage
	if err := cursor.All(ctx, &messages); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkContactMessageHandled marque un message comme traité (admin)
func MarkContactMessageHandled(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID message invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := database.MongoShopDB.Collection("support_messages").
		UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"handled": true}})
	if err != nil || result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message marqué comme traité"})
}
