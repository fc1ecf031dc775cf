package routes

import (
	"os"
	"strings"

	"mani_electrical_back_end/internal/handlers/admin"
	"mani_electrical_back_end/internal/handlers/checkout"
	"mani_electrical_back_end/internal/handlers/product"
	"mani_electrical_back_end/internal/handlers/support"
	"mani_electrical_back_end/internal/handlers/user"
	"mani_electrical_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// CORS pour le front React
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	api.Use(middleware.APIRateLimit())

	// --- Auth ---
	api.POST("/auth/register", middleware.RegisterRateLimit(), user.Register)
	api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
	api.GET("/auth/me", middleware.AuthRequired(), user.Me)

	// --- Produits (public) ---
	api.GET("/products", product.GetAllProducts)
	api.GET("/products/search", middleware.SearchRateLimit(), product.SearchProducts)
	api.GET("/products/category/:category", product.GetProductsByCategory)
	api.GET("/products/:id", product.GetProductByID)
	api.GET("/products/:id/reviews", product.GetProductReviews)

	// --- Avis ---
	api.POST("/reviews", middleware.AuthRequired(), product.CreateReview)

	// --- Panier (toujours authentifié : pas de credential → 401) ---
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", middleware.CartRateLimit(), user.AddToCart)
		cart.PUT("/update", user.UpdateCartQuantity)
		cart.DELETE("/remove/:productId", user.RemoveFromCart)
		cart.DELETE("/clear", user.ClearCart)
	}

	// --- Commandes ---
	orders := api.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("", user.CreateOrder)
		orders.GET("", user.GetMyOrders)
		orders.GET("/:id", user.GetOrderByID)
		orders.PUT("/:id/cancel", user.CancelOrder)
	}

	// --- Checkout (frais de port + cadeau promotionnel) ---
	api.GET("/checkout/shipping", checkout.GetShippingFee)
	api.GET("/checkout/gift", checkout.GetGiftEligibility)

	// --- Adresses ---
	addresses := api.Group("/addresses", middleware.AuthRequired())
	{
		addresses.GET("", user.ListMyAddresses)
		addresses.POST("", user.CreateAddress)
		addresses.PUT("/:id/default", user.MakeDefaultAddress)
		addresses.DELETE("/:id", user.DeleteAddress)
	}

	// --- Support ---
	api.POST("/support/contact", support.CreateContactMessage)
	api.POST("/returns", middleware.AuthRequired(), support.CreateReturnRequest)

	// --- Admin ---
	adminGroup := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.POST("/products", product.CreateProduct)
		adminGroup.PUT("/products/:id", product.UpdateProduct)
		adminGroup.DELETE("/products/:id", product.DeleteProduct)
		adminGroup.POST("/products/images", product.UploadProductImage)
		adminGroup.POST("/products/images/attach", product.AddImageToProduct)
		adminGroup.GET("/support/messages", support.ListContactMessages)
		adminGroup.PUT("/support/messages/:id/handled", support.MarkContactMessageHandled)
		adminGroup.PUT("/orders/:id/status", admin.UpdateOrderStatus)
		adminGroup.GET("/returns", support.ListReturnRequests)
		adminGroup.PUT("/returns/:id", support.UpdateReturnRequestStatus)
		adminGroup.GET("/reports/sales", admin.GetSalesReport)
	}
}
