package product

import (
	"net/http"
	"time"

	"mani_electrical_back_end/internal/cache"
	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"
	"mani_electrical_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GetAllProducts retourne le catalogue (produits actifs uniquement)
func GetAllProducts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, name, brand, description, price, stock, category, image_urls, is_active, created_at, updated_at
		FROM products`).Iter()

	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.ImageURLs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProductByID retourne la fiche d'un produit (cache Redis devant Scylla)
func GetProductByID(c *gin.Context) {
	productID := c.Param("id")

	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	product, err := cache.GetProductFromCache(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// GetProductsByCategory liste les produits d'une catégorie
func GetProductsByCategory(c *gin.Context) {
	category := c.Param("category")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, name, brand, description, price, stock, category, image_urls, is_active, created_at, updated_at
		FROM products WHERE category = ? ALLOW FILTERING`, category).Iter()

	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.ImageURLs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// ================== ADMIN ==================

// CreateProduct crée un produit (admin)
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Brand       string   `json:"brand" binding:"required"`
		Description string   `json:"description"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Stock       int      `json:"stock" binding:"min=0"`
		Category    string   `json:"category" binding:"required"`
		ImageURLs   []string `json:"image_urls"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	productID := gocql.UUID(uuid.New())

	err = session.Query(`INSERT INTO products (product_id, name, brand, description, price, stock, category, image_urls, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		productID, input.Name, input.Brand, input.Description, input.Price,
		input.Stock, input.Category, input.ImageURLs, true, now, now).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	product := models.Product{
		ID:          productID,
		Name:        input.Name,
		Brand:       input.Brand,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		ImageURLs:   input.ImageURLs,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Indexation Elasticsearch (best effort)
	services.IndexProduct(product)

	c.JSON(http.StatusCreated, gin.H{"product": product, "message": "Produit créé"})
}

// UpdateProduct met à jour un produit (admin)
func UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	pid, err := uuid.Parse(productID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Name        string   `json:"name" binding:"required"`
		Brand       string   `json:"brand" binding:"required"`
		Description string   `json:"description"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Stock       int      `json:"stock" binding:"min=0"`
		Category    string   `json:"category" binding:"required"`
		ImageURLs   []string `json:"image_urls"`
		IsActive    *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	err = session.Query(`UPDATE products SET name = ?, brand = ?, description = ?, price = ?, stock = ?, category = ?, image_urls = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?`,
		input.Name, input.Brand, input.Description, input.Price, input.Stock,
		input.Category, input.ImageURLs, isActive, now, gocql.UUID(pid)).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	// Invalider le cache et réindexer
	cache.InvalidateProductCache(productID)
	if product, err := cache.GetProductFromCache(productID); err == nil {
		services.IndexProduct(*product)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour"})
}

// DeleteProduct supprime un produit (admin)
func DeleteProduct(c *gin.Context) {
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

	if err := session.Query("DELETE FROM products WHERE product_id = ?", gocql.UUID(pid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	cache.InvalidateProductCache(productID)
	services.RemoveProductFromIndex(productID)

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}
