package handlers

import (
	"errors"
	"log"
	"net/http"

	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/services"
	"scoop_storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// 📦 POST /api/order/place
// Les montants sont recalculés côté serveur à partir du panier.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var input services.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order data"})
		return
	}

	s := middleware.CurrentSession(c)
	var discount services.Discount
	if s != nil {
		discount.Code, discount.Percent = session.Discount(s)
	}

	customer := services.Customer{
		ID:    c.GetString("user_id"),
		Name:  c.GetString("user_name"),
		Email: c.GetString("email"),
	}

	order, err := h.Orders.Place(c.Request.Context(), customer, discount, input)
	if errors.Is(err, services.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Your cart is empty"})
		return
	}
	if err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error placing order"})
		return
	}

	if s != nil {
		session.ClearDiscount(s)
		saveSession(c)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orderId": order.OrderNumber})
}
