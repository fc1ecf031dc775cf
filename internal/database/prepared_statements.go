package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// CQL des chemins chauds du catalogue. gocql prépare et met en cache les
// statements par session ; centraliser le texte ici garantit qu'une seule
// variante de chaque requête est préparée.
const (
	cqlGetProductByID = `SELECT product_id, name, brand, description, price, stock, category, image_urls, is_active, created_at, updated_at
		FROM products WHERE product_id = ?`

	// Lecture allégée pour l'ajout au panier et la commande
	cqlGetProductForCart = `SELECT product_id, name, brand, price, stock, image_urls
		FROM products WHERE product_id = ?`

	cqlUpdateStock = `UPDATE products SET stock = ? WHERE product_id = ?`
)

var preparedOnce sync.Once

// InitPreparedStatements prépare les requêtes chaudes au démarrage pour que
// le premier ajout au panier ne paie pas la préparation
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetCatalogSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		// Exécuter une lecture à vide suffit à faire préparer le statement
		// par le cluster. L'UPDATE est préparé au premier usage réel (un
		// upsert à vide créerait une ligne fantôme).
		var discard gocql.UUID
		session.Query(cqlGetProductByID, discard).Iter().Close()
		session.Query(cqlGetProductForCart, discard).Iter().Close()

		log.Println("✅ Prepared statements initialisés")
	})
}

// ProductByIDQuery retourne une requête fraîche pour la fiche produit
// complète (une Query gocql ne se partage pas entre goroutines)
func ProductByIDQuery(session *gocql.Session, id gocql.UUID) *gocql.Query {
	return session.Query(cqlGetProductByID, id)
}

// ProductForCartQuery retourne la lecture allégée produit
func ProductForCartQuery(session *gocql.Session, id gocql.UUID) *gocql.Query {
	return session.Query(cqlGetProductForCart, id)
}

// UpdateStockQuery retourne la mise à jour de stock
func UpdateStockQuery(session *gocql.Session, stock int, id gocql.UUID) *gocql.Query {
	return session.Query(cqlUpdateStock, stock, id)
}
