package routes

import (
	"scoop_storefront/internal/handlers"
	"scoop_storefront/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes déclare les pages, les routes de compte et l'API JSON.
// limiter peut être nil : la limitation des tentatives est alors désactivée.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, limiter *redis.Client) {
	r.GET("/health", h.Health)

	// Pages
	r.GET("/", h.Home)
	r.GET("/products", h.Products)
	r.GET("/cart", h.CartPage)
	r.GET("/login", h.LoginPage)
	r.GET("/account", middleware.PageAuthRequired(), h.Account)
	r.GET("/order/success/:orderId", middleware.PageAuthRequired(), h.OrderSuccess)

	// Compte
	r.POST("/register", middleware.RegisterRateLimit(limiter), h.Register)
	r.POST("/login", middleware.LoginRateLimit(limiter), h.Login)
	r.GET("/account/logout", h.Logout)

	api := r.Group("/api")
	{
		api.GET("/products", h.ListProducts)

		api.GET("/cart/count", h.CartCount)
		api.POST("/cart/apply-discount", h.ApplyDiscount)

		auth := api.Group("/", middleware.AuthRequired())
		auth.GET("/cart", h.GetCart)
		auth.POST("/cart/add", h.AddToCart)
		auth.POST("/cart/update/:itemId", h.UpdateCartItem)
		auth.DELETE("/cart/remove/:itemId", h.RemoveCartItem)
		auth.POST("/order/place", h.PlaceOrder)
	}
}
