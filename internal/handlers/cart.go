package handlers

import (
	"errors"
	"log"
	"net/http"

	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/pricing"
	"scoop_storefront/internal/services"
	"scoop_storefront/internal/session"
	"scoop_storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// 🛒 POST /api/cart/add
// Nom, prix et image du corps sont indicatifs : seul productId est utilisé.
func (h *Handler) AddToCart(c *gin.Context) {
	var input struct {
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Image     string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	count, err := h.Cart.Add(c.Request.Context(), c.GetString("user_id"), input.ProductID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(c, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		log.Printf("❌ Erreur ajout panier: %v", err)
		jsonError(c, http.StatusInternalServerError, "Error adding to cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to cart!", "newCount": count})
}

// GET /api/cart/count ; un visiteur anonyme a un panier vide
func (h *Handler) CartCount(c *gin.Context) {
	count, err := h.Cart.Count(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		log.Printf("❌ Erreur comptage panier: %v", err)
		jsonError(c, http.StatusInternalServerError, "Error counting cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// POST /api/cart/update/:itemId
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var input struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	err := h.Cart.Update(c.Request.Context(), c.GetString("user_id"), c.Param("itemId"), input.Action)
	switch {
	case errors.Is(err, services.ErrInvalidAction):
		jsonError(c, http.StatusBadRequest, "Invalid action")
		return
	case errors.Is(err, store.ErrNotFound):
		jsonError(c, http.StatusNotFound, "Item not found")
		return
	case err != nil:
		log.Printf("❌ Erreur mise à jour panier: %v", err)
		jsonError(c, http.StatusInternalServerError, "Error updating quantity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reload": true})
}

// DELETE /api/cart/remove/:itemId
func (h *Handler) RemoveCartItem(c *gin.Context) {
	err := h.Cart.Remove(c.Request.Context(), c.GetString("user_id"), c.Param("itemId"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(c, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		log.Printf("❌ Erreur suppression article: %v", err)
		jsonError(c, http.StatusInternalServerError, "Error removing item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reload": true})
}

// GET /api/cart : articles + récapitulatif avec la remise de la session
func (h *Handler) GetCart(c *gin.Context) {
	items, err := h.Cart.Items(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		log.Printf("❌ Erreur lecture panier: %v", err)
		jsonError(c, http.StatusInternalServerError, "Error loading cart")
		return
	}

	code, pct := "", 0.0
	if s := middleware.CurrentSession(c); s != nil {
		code, pct = session.Discount(s)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"items":        items,
		"discountCode": code,
		"summary":      pricing.Calculate(items, pct),
	})
}
