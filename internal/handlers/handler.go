package handlers

import (
	"log"
	"net/http"

	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler regroupe les services utilisés par les routes
type Handler struct {
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Accounts *services.AccountService
	Orders   *services.OrderService

	// BaseURL sert aux liens absolus (QR code de confirmation)
	BaseURL string
}

func New(catalog *services.CatalogService, cart *services.CartService, accounts *services.AccountService, orders *services.OrderService, baseURL string) *Handler {
	return &Handler{
		Catalog:  catalog,
		Cart:     cart,
		Accounts: accounts,
		Orders:   orders,
		BaseURL:  baseURL,
	}
}

// Health : sonde de disponibilité
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// saveSession écrit la session courante ; l'erreur est seulement loggée
func saveSession(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if s == nil {
		return
	}
	if err := s.Save(c.Request, c.Writer); err != nil {
		log.Printf("❌ Erreur sauvegarde session: %v", err)
	}
}

func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}
