package product

import (
	"net/http"
	"time"

	"mani_electrical_back_end/internal/cache"
	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// CreateReview crée un avis (un seul par utilisateur et par produit)
func CreateReview(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		UserName  string `json:"user_name"`
		Rating    int    `json:"rating" binding:"required,min=1,max=5"`
		Comment   string `json:"comment"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	pid, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifie que le produit existe
	var name string
	if err := session.Query("SELECT name FROM products WHERE product_id = ?",
		gocql.UUID(pid)).Scan(&name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// Un seul avis par utilisateur et par produit
	var existing gocql.UUID
	err = session.Query("SELECT review_id FROM reviews WHERE product_id = ? AND user_id = ? ALLOW FILTERING",
		gocql.UUID(pid), userID).Scan(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Vous avez déjà laissé un avis sur ce produit"})
		return
	}

	review := models.Review{
		ID:        gocql.UUID(uuid.New()),
		ProductID: gocql.UUID(pid),
		UserID:    userID,
		UserName:  input.UserName,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	err = session.Query(`INSERT INTO reviews (review_id, product_id, user_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		review.ID, review.ProductID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.CreatedAt).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement avis"})
		return
	}

	cache.InvalidateProductCache(input.ProductID)

	c.JSON(http.StatusCreated, gin.H{"review": review, "message": "Avis enregistré"})
}

// GetProductReviews liste les avis d'un produit avec la note moyenne
func GetProductReviews(c *gin.Context) {
	productID := c.Param("id")

	pid, err := uuid.Parse(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT review_id, product_id, user_id, user_name, rating, comment, created_at
		FROM reviews WHERE product_id = ? ALLOW FILTERING`, gocql.UUID(pid)).Iter()

	reviews := []models.Review{}
	var r models.Review
	totalRating := 0
	for iter.Scan(&r.ID, &r.ProductID, &r.UserID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt) {
		reviews = append(reviews, r)
		totalRating += r.Rating
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}

	rating := models.ProductRating{ProductID: gocql.UUID(pid), TotalReviews: len(reviews)}
	if len(reviews) > 0 {
		rating.AverageRating = float64(totalRating) / float64(len(reviews))
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": rating.AverageRating,
		"total_reviews":  rating.TotalReviews,
		"rating":         rating,
	})
}
