package user

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"
	"mani_electrical_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fenêtre d'annulation après passage de commande
const CancelWindow = 24 * time.Hour

var upiPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)

// CreateOrder crée une commande à partir des lignes envoyées par le client.
// Les prix sont TOUJOURS relus depuis le catalogue : un prix envoyé par le
// client est ignoré. Le panier n'est pas touché.
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	email, _ := c.Get("email")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		Items []struct {
			Product   string `json:"product"`
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items" binding:"required"`
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
		PaymentDetails  struct {
			CardHolder string `json:"cardHolder"`
			CardNumber string `json:"cardNumber"`
			CardLast4  string `json:"cardLast4"`
			UPIID      string `json:"upiId"`
		} `json:"paymentDetails"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun article dans la commande"})
		return
	}

	// ✅ 1. Valider le moyen de paiement
	method := strings.ToLower(req.PaymentMethod)
	var payment models.PaymentDetails

	switch method {
	case "cod":
		// Paiement à la livraison, rien à valider
	case "card", "credit", "debit":
		// Défense en profondeur : même si le client tronque déjà,
		// on ne garde jamais plus que les 4 derniers chiffres.
		last4 := req.PaymentDetails.CardLast4
		if last4 == "" && req.PaymentDetails.CardNumber != "" {
			digits := strings.Map(func(r rune) rune {
				if r >= '0' && r <= '9' {
					return r
				}
				return -1
			}, req.PaymentDetails.CardNumber)
			if len(digits) >= 4 {
				last4 = digits[len(digits)-4:]
			}
		}
		if len(last4) != 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Informations de carte invalides"})
			return
		}
		payment.CardHolder = req.PaymentDetails.CardHolder
		payment.CardLast4 = last4
	case "upi":
		if !upiPattern.MatchString(req.PaymentDetails.UPIID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant UPI invalide"})
			return
		}
		payment.UPIID = req.PaymentDetails.UPIID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement non supporté"})
		return
	}

	// ✅ 2. Relire chaque produit depuis le catalogue et vérifier le stock
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	type pricedLine struct {
		item  models.OrderItem
		stock int
		uuid  gocql.UUID
	}
	var lines []pricedLine

	for _, reqItem := range req.Items {
		productID := reqItem.Product
		if productID == "" {
			productID = reqItem.ProductID
		}

		pid, err := uuid.Parse(productID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide: " + productID})
			return
		}

		if reqItem.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide pour " + productID})
			return
		}

		var (
			pidDB       gocql.UUID
			name, brand string
			price       float64
			stock       int
			imageURLs   []string
		)
		err = database.ProductForCartQuery(session, gocql.UUID(pid)).
			Scan(&pidDB, &name, &brand, &price, &stock, &imageURLs)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable: " + productID})
			return
		}

		if stock < reqItem.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Stock insuffisant",
				"product":   name,
				"available": stock,
				"requested": reqItem.Quantity,
			})
			return
		}

		lines = append(lines, pricedLine{
			item: models.OrderItem{
				ProductID: productID,
				Name:      name,
				Brand:     brand,
				Price:     price,
				Quantity:  reqItem.Quantity,
			},
			stock: stock,
			uuid:  gocql.UUID(pid),
		})
	}

	// ✅ 3. Totaux : sous-total, frais de port, cadeau promotionnel
	subtotal := 0.0
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		subtotal += l.item.Price * float64(l.item.Quantity)
		items = append(items, l.item)
	}

	shippingFee := models.ShippingFeeFor(subtotal)

	var gift *models.GiftItem
	if models.GiftEligible(subtotal) {
		g := models.PromotionalGift()
		gift = &g
	}

	order := models.Order{
		UserID:          userID,
		Items:           items,
		FreeGift:        gift,
		Subtotal:        subtotal,
		ShippingFee:     shippingFee,
		Total:           subtotal + shippingFee,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   method,
		PaymentDetails:  payment,
		Status:          models.OrderStatusProcessing,
		CreatedAt:       time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.MongoOrdersDB.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		log.Println("❌ Erreur MongoDB InsertOne:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande"})
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	// ✅ 4. Décrémenter le stock (après insertion réussie)
	for _, l := range lines {
		if err := database.UpdateStockQuery(session, l.stock-l.item.Quantity, l.uuid).Exec(); err != nil {
			log.Printf("⚠️ Décrément stock échoué pour %s: %v", l.item.ProductID, err)
		}
	}

	// ✅ 5. E-mail de confirmation (best effort, jamais bloquant)
	if emailStr, ok := email.(string); ok && emailStr != "" {
		go func(o models.Order, to string) {
			if err := services.SendMail(to, "Confirmation de commande — Mani Electrical",
				services.OrderConfirmationHTML(o)); err != nil {
				log.Println("⚠️ E-mail de confirmation non envoyé:", err)
			}
		}(order, emailStr)
	}

	log.Printf("✅ Commande %s créée (₹%.2f, %s) pour user %s",
		order.ID.Hex(), order.Total, method, userID)

	response := gin.H{
		"success": true,
		"message": "Commande enregistrée avec succès",
		"orderId": order.ID.Hex(),
		"order":   order,
	}

	// Pour l'UPI : QR code de l'intent de paiement (aucun prestataire appelé)
	if method == "upi" {
		if qr, err := services.UPIQRCode(order.Total, order.ID.Hex()); err == nil {
			response["upiQr"] = qr
			response["upiIntent"] = services.BuildUPIIntent(order.Total, order.ID.Hex())
		}
	}

	c.JSON(http.StatusCreated, response)
}

// GetMyOrders récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrdersDB.Collection("orders")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		log.Println("❌ Erreur MongoDB Find:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("❌ Erreur décodage commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID récupère une commande spécifique par ID
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.MongoOrdersDB.Collection("orders").FindOne(ctx, bson.M{
		"_id":     objID,
		"user_id": userID, // la commande doit appartenir à l'utilisateur
	}).Decode(&order)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder annule une commande dans les 24h suivant sa création et
// remet les articles en stock
func CancelOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	objID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := database.MongoOrdersDB.Collection("orders")

	var order models.Order
	err = collection.FindOne(ctx, bson.M{"_id": objID, "user_id": userID}).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.Status != models.OrderStatusProcessing {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cette commande ne peut plus être annulée"})
		return
	}

	if time.Since(order.CreatedAt) > CancelWindow {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le délai d'annulation de 24h est dépassé"})
		return
	}

	now := time.Now()
	_, err = collection.UpdateOne(ctx,
		bson.M{"_id": objID, "user_id": userID, "status": models.OrderStatusProcessing},
		bson.M{"$set": bson.M{"status": models.OrderStatusCancelled, "cancelled_at": now}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur annulation commande"})
		return
	}

	// Remettre les articles en stock (best effort)
	if session, err := database.GetCatalogSession(); err == nil {
		for _, item := range order.Items {
			pid, err := uuid.Parse(item.ProductID)
			if err != nil {
				continue
			}
			var stock int
			if session.Query("SELECT stock FROM products WHERE product_id = ?",
				gocql.UUID(pid)).Scan(&stock) == nil {
				database.UpdateStockQuery(session, stock+item.Quantity, gocql.UUID(pid)).Exec()
			}
		}
	}

	log.Printf("✅ Commande %s annulée par user %s", orderID, userID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Commande annulée",
	})
}
