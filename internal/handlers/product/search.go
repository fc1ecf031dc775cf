package product

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"
	"mani_electrical_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchProducts recherche dans le catalogue via Elasticsearch, avec repli
// sur un scan Scylla si l'index est indisponible
func SearchProducts(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	// 1. Elasticsearch d'abord
	if results, err := services.SearchProducts(query); err == nil {
		c.JSON(http.StatusOK, gin.H{"products": results, "count": len(results), "source": "elastic"})
		return
	}

	// 2. Repli : scan du catalogue + filtrage en mémoire
	products, err := scanAndFilter(query, c.Query("min_price"), c.Query("max_price"), c.DefaultQuery("sort", "relevance"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products), "source": "scan"})
}

func scanAndFilter(query, minPrice, maxPrice, sortBy string) ([]models.Product, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT product_id, name, brand, description, price, stock, category, image_urls, is_active, created_at, updated_at
		FROM products`).Iter()

	var products []models.Product
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.Stock,
		&p.Category, &p.ImageURLs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt) {
		if p.IsActive {
			products = append(products, p)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	// Filtrer par query (nom, marque, description)
	queryLower := strings.ToLower(query)
	var filtered []models.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), queryLower) ||
			strings.Contains(strings.ToLower(p.Brand), queryLower) ||
			strings.Contains(strings.ToLower(p.Description), queryLower) {
			filtered = append(filtered, p)
		}
	}
	products = filtered

	// Filtrer par prix
	if minPrice != "" {
		if min, err := strconv.ParseFloat(minPrice, 64); err == nil {
			var kept []models.Product
			for _, p := range products {
				if p.Price >= min {
					kept = append(kept, p)
				}
			}
			products = kept
		}
	}
	if maxPrice != "" {
		if max, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			var kept []models.Product
			for _, p := range products {
				if p.Price <= max {
					kept = append(kept, p)
				}
			}
			products = kept
		}
	}

	// Trier
	switch sortBy {
	case "price_asc":
		sort.Slice(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price_desc":
		sort.Slice(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "newest":
		sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}

	return products, nil
}
