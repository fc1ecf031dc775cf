package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const CartTTL = 30 * 24 * time.Hour // 30 jours

// Le panier est un blob JSON dans Redis, clé "cart:<userID>". Chaque mutation
// relit, modifie puis réécrit le blob et renvoie l'état complet : le client
// remplace toujours son état local par la réponse, jamais de merge.

func cartKey(userID string) string {
	return "cart:" + userID
}

func loadCart(ctx context.Context, userID string) []models.CartItem {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		return []models.CartItem{}
	}

	var items []models.CartItem
	if json.Unmarshal([]byte(data), &items) != nil {
		return []models.CartItem{}
	}
	return items
}

func saveCart(ctx context.Context, userID string, items []models.CartItem) error {
	jsonData, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, cartKey(userID), jsonData, CartTTL).Err()
}

func cartResponse(items []models.CartItem) models.Cart {
	cart := models.Cart{Items: items}
	cart.TotalAmount = cart.Total()
	return cart
}

// GetCart récupère le panier (seulement Redis, jamais le catalogue)
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	items := loadCart(context.Background(), userID)
	c.JSON(http.StatusOK, gin.H{"cart": cartResponse(items)})
}

// AddToCart ajoute un produit au panier avec snapshot prix/produit
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// Infos produit depuis ScyllaDB (lecture allégée préparée au démarrage)
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var (
		productIDDB gocql.UUID
		name, brand string
		price       float64
		stock       int
		imageURLs   []string
	)

	err = database.ProductForCartQuery(session, gocql.UUID(productID)).
		Scan(&productIDDB, &name, &brand, &price, &stock, &imageURLs)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if stock < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Produit en rupture de stock"})
		return
	}

	imageURL := ""
	if len(imageURLs) > 0 {
		imageURL = imageURLs[0]
	}

	ctx := context.Background()
	cart := loadCart(ctx, userID)

	// Fusionne avec une ligne existante, sinon ajoute. La quantité est
	// bornée à [1, stock].
	found := false
	for i := range cart {
		if cart[i].ProductID == input.ProductID {
			newQuantity := cart[i].Quantity + input.Quantity
			if newQuantity > stock {
				newQuantity = stock
			}
			cart[i].Quantity = newQuantity
			cart[i].Stock = stock
			found = true
			break
		}
	}
	if !found {
		quantity := input.Quantity
		if quantity > stock {
			quantity = stock
		}
		cart = append(cart, models.CartItem{
			ProductID: input.ProductID,
			Name:      name,
			Brand:     brand,
			Price:     price, // prix figé à l'ajout
			Quantity:  quantity,
			Stock:     stock,
			ImageURL:  imageURL,
		})
	}

	if err := saveCart(ctx, userID, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"cart":    cartResponse(cart),
	})
}

// UpdateCartQuantity met à jour la quantité d'une ligne (minimum 1 :
// la suppression passe par DELETE /cart/remove/:productId)
func UpdateCartQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	ctx := context.Background()
	cart := loadCart(ctx, userID)

	found := false
	for i := range cart {
		if cart[i].ProductID == input.ProductID {
			quantity := input.Quantity
			if cart[i].Stock > 0 && quantity > cart[i].Stock {
				quantity = cart[i].Stock
			}
			cart[i].Quantity = quantity
			found = true
			break
		}
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit absent du panier"})
		return
	}

	if err := saveCart(ctx, userID, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cartResponse(cart)})
}

// RemoveFromCart supprime une ligne du panier
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	productID := c.Param("productId")
	ctx := context.Background()
	cart := loadCart(ctx, userID)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID != productID {
			newCart = append(newCart, item)
		}
	}

	if err := saveCart(ctx, userID, newCart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"cart":    cartResponse(newCart),
	})
}

// ClearCart vide le panier (persiste un panier vide, la clé reste)
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	ctx := context.Background()
	if err := saveCart(ctx, userID, []models.CartItem{}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cartResponse([]models.CartItem{})})
}
