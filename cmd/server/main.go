package main

import (
	"log"
	"os"

	"mani_electrical_back_end/internal/config"
	"mani_electrical_back_end/internal/database"
	"mani_electrical_back_end/internal/routes"
	"mani_electrical_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET manquant dans .env")
	}

	database.ConnectDatabases()
	defer database.CloseScylla()

	// ✅ Prepared statements pour les lectures chaudes du catalogue
	database.InitPreparedStatements()

	// ✅ Service IA pour les rapports admin (optionnel)
	services.InitAIService()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Mani Electrical lancé sur le port", port)
	r.Run(":" + port)
}
