package product

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"mani_electrical_back_end/internal/cache"
	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// UploadProductImage envoie une image dans MinIO et retourne son URL (admin)
func UploadProductImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}
	defer file.Close()

	// Nom unique pour éviter les collisions
	ext := filepath.Ext(header.Filename)
	objectName := fmt.Sprintf("products/%d%s", time.Now().UnixNano(), ext)

	imageURL, err := services.UploadProductImage(objectName, file, header.Size,
		header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload MinIO: " + err.Error()})
		return
	}

	// URL présignée pour la prévisualisation immédiate, même si le bucket
	// n'est pas public
	previewURL, _ := services.SignedImageURL(objectName, 15*time.Minute)

	c.JSON(http.StatusOK, gin.H{
		"message":     "Image uploadée avec succès",
		"image_url":   imageURL,
		"preview_url": previewURL,
	})
}

// AddImageToProduct rattache une URL d'image à un produit (admin)
func AddImageToProduct(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		ImageURL  string `json:"image_url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var imageURLs []string
	if err := session.Query("SELECT image_urls FROM products WHERE product_id = ?",
		gocql.UUID(pid)).Scan(&imageURLs); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	imageURLs = append(imageURLs, req.ImageURL)

	if err := session.Query("UPDATE products SET image_urls = ?, updated_at = ? WHERE product_id = ?",
		imageURLs, time.Now(), gocql.UUID(pid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(req.ProductID)

	c.JSON(http.StatusOK, gin.H{"message": "Image ajoutée au produit", "image_urls": imageURLs})
}
