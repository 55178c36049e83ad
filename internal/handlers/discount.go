package handlers

import (
	"net/http"

	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/pricing"
	"scoop_storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// 🏷️ POST /api/cart/apply-discount
// Un code invalide efface la remise déjà active.
func (h *Handler) ApplyDiscount(c *gin.Context) {
	var input struct {
		Code string `json:"code"`
	}
	// corps illisible = code vide, donc invalide
	_ = c.ShouldBindJSON(&input)

	s := middleware.CurrentSession(c)
	code, pct, ok := pricing.LookupDiscount(input.Code)
	if !ok {
		if s != nil {
			session.ClearDiscount(s)
			saveSession(c)
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid discount code"})
		return
	}

	if s != nil {
		session.SetDiscount(s, code, pct)
		saveSession(c)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Discount code " + code + " applied!"})
}
