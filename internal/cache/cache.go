package cache

import (
	"context"
	"encoding/json"
	"time"

	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const ProductCacheTTL = 10 * time.Minute

// GetProductFromCache récupère un produit depuis Redis ou ScyllaDB
func GetProductFromCache(productID string) (*models.Product, error) {
	ctx := context.Background()
	key := "product:" + productID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	// 2. Récupérer de ScyllaDB
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	err = database.ProductByIDQuery(session, gocql.UUID(pid)).Scan(
		&product.ID, &product.Name, &product.Brand, &product.Description, &product.Price,
		&product.Stock, &product.Category, &product.ImageURLs, &product.IsActive,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(product)
	database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)

	return &product, nil
}

// InvalidateProductCache invalide le cache d'un produit
func InvalidateProductCache(productID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "product:"+productID)
}
