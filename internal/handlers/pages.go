package handlers

import (
	"errors"
	"log"
	"net/http"

	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/models"
	"scoop_storefront/internal/pricing"
	"scoop_storefront/internal/services"
	"scoop_storefront/internal/session"
	"scoop_storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// featuredLimit : nombre de produits mis en avant sur l'accueil
const featuredLimit = 4

// page ajoute l'identité du visiteur aux données du template
func page(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["UserName"] = c.GetString("user_name")
	data["LoggedIn"] = c.GetString("user_id") != ""
	return data
}

func pageError(c *gin.Context, msg string, err error) {
	log.Printf("❌ %s: %v", msg, err)
	c.String(http.StatusInternalServerError, msg)
}

// GET /
func (h *Handler) Home(c *gin.Context) {
	featured, err := h.Catalog.Featured(c.Request.Context(), featuredLimit)
	if err != nil {
		pageError(c, "Error loading home page", err)
		return
	}
	c.HTML(http.StatusOK, "index.html", page(c, gin.H{"Featured": featured}))
}

// GET /products ; le filtrage se fait ensuite via /api/products
func (h *Handler) Products(c *gin.Context) {
	products, err := h.Catalog.All(c.Request.Context())
	if err != nil {
		pageError(c, "Error loading products", err)
		return
	}
	c.HTML(http.StatusOK, "products.html", page(c, gin.H{
		"Products":   products,
		"Categories": models.Categories,
		"Sizes":      models.Sizes,
	}))
}

// GET /cart ; un visiteur anonyme voit un panier vide
func (h *Handler) CartPage(c *gin.Context) {
	items, err := h.Cart.Items(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		pageError(c, "Error loading cart", err)
		return
	}

	code, pct := "", 0.0
	if s := middleware.CurrentSession(c); s != nil {
		code, pct = session.Discount(s)
	}

	c.HTML(http.StatusOK, "cart.html", page(c, gin.H{
		"Items":        items,
		"Summary":      pricing.Calculate(items, pct),
		"DiscountCode": code,
	}))
}

// GET /login ; ?mode=register ouvre l'onglet inscription
func (h *Handler) LoginPage(c *gin.Context) {
	if c.GetString("user_id") != "" {
		c.Redirect(http.StatusSeeOther, "/account")
		return
	}
	c.HTML(http.StatusOK, "login.html", page(c, gin.H{
		"Mode":  c.Query("mode"),
		"Error": c.Query("error"),
	}))
}

// GET /account (auth)
func (h *Handler) Account(c *gin.Context) {
	orders, err := h.Orders.History(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		pageError(c, "Error loading account", err)
		return
	}
	c.HTML(http.StatusOK, "account.html", page(c, gin.H{
		"Email":  c.GetString("email"),
		"Orders": orders,
	}))
}

// GET /order/success/:orderId (auth, commande du visiteur uniquement)
func (h *Handler) OrderSuccess(c *gin.Context) {
	order, err := h.Orders.Find(c.Request.Context(), c.GetString("user_id"), c.Param("orderId"))
	if errors.Is(err, store.ErrNotFound) {
		c.String(http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		pageError(c, "Error loading order", err)
		return
	}

	link := services.OrderURL(h.BaseURL, order.OrderNumber)
	qr, err := services.OrderQRCode(link)
	if err != nil {
		// la page reste utilisable sans QR code
		log.Printf("⚠️ QR code commande %s: %v", order.OrderNumber, err)
	}

	c.HTML(http.StatusOK, "order_success.html", page(c, gin.H{
		"Order":  order,
		"Link":   link,
		"QRCode": qr,
	}))
}
