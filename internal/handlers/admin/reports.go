package admin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"
	"mani_electrical_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetSalesReport agrège les ventes sur N jours (défaut 30), avec un résumé
// IA optionnel si Azure OpenAI est configuré
func GetSalesReport(c *gin.Context) {
	days := 30
	if d := c.Query("days"); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}

	since := time.Now().AddDate(0, 0, -days)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	collection := database.MongoOrdersDB.Collection("orders")

	// Chiffre d'affaires et nombre de commandes (hors annulées)
	pipeline := []bson.M{
		{"$match": bson.M{
			"created_at": bson.M{"$gte": since},
			"status":     bson.M{"$ne": models.OrderStatusCancelled},
		}},
		{"$group": bson.M{
			"_id":      nil,
			"revenue":  bson.M{"$sum": "$total"},
			"orders":   bson.M{"$sum": 1},
			"shipping": bson.M{"$sum": "$shipping_fee"},
		}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		log.Println("❌ Erreur agrégation MongoDB:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération rapport"})
		return
	}

	var totals []bson.M
	if err := cursor.All(ctx, &totals); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage rapport"})
		return
	}

	revenue, orderCount, shipping := 0.0, 0, 0.0
	if len(totals) > 0 {
		if v, ok := totals[0]["revenue"].(float64); ok {
			revenue = v
		}
		switch v := totals[0]["orders"].(type) {
		case int32:
			orderCount = int(v)
		case int64:
			orderCount = int(v)
		}
		if v, ok := totals[0]["shipping"].(float64); ok {
			shipping = v
		}
	}

	// Top produits par quantité vendue
	topPipeline := []bson.M{
		{"$match": bson.M{
			"created_at": bson.M{"$gte": since},
			"status":     bson.M{"$ne": models.OrderStatusCancelled},
		}},
		{"$unwind": "$items"},
		{"$group": bson.M{
			"_id":      "$items.name",
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": bson.M{"$multiply": []interface{}{"$items.price", "$items.quantity"}}},
		}},
		{"$sort": bson.M{"quantity": -1}},
		{"$limit": 10},
	}

	topCursor, err := collection.Aggregate(ctx, topPipeline)
	var topProducts []bson.M
	if err == nil {
		topCursor.All(ctx, &topProducts)
	}

	// Répartition par statut
	statusPipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}

	statusCursor, err := collection.Aggregate(ctx, statusPipeline)
	var statusBreakdown []bson.M
	if err == nil {
		statusCursor.All(ctx, &statusBreakdown)
	}

	report := gin.H{
		"period_days":      days,
		"revenue":          revenue,
		"order_count":      orderCount,
		"shipping_total":   shipping,
		"top_products":     topProducts,
		"status_breakdown": statusBreakdown,
		"generated_at":     time.Now(),
		"ai_enabled":       services.AIEnabled(),
	}

	// Résumé IA (best effort)
	if services.AIEnabled() {
		if raw, err := json.Marshal(report); err == nil {
			if summary, err := services.SummarizeSalesReport(ctx, string(raw)); err == nil {
				report["ai_summary"] = summary
			} else {
				report["ai_error"] = "Résumé IA indisponible"
			}
		}
	}

	c.JSON(http.StatusOK, report)
}
