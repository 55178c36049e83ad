package handlers

import (
	"log"
	"net/http"
	"strconv"

	"scoop_storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// parseProductQuery lit les filtres de la query string.
// categories et sizes peuvent être répétés ; un maxPrice illisible est ignoré.
func parseProductQuery(c *gin.Context) store.ProductQuery {
	q := store.ProductQuery{
		Categories: c.QueryArray("categories"),
		Sizes:      c.QueryArray("sizes"),
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q.MaxPrice = &v
		}
	}
	return q
}

// 🔍 GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Catalog.Search(c.Request.Context(), parseProductQuery(c))
	if err != nil {
		log.Printf("❌ Erreur recherche produits: %v", err)
		jsonError(c, http.StatusInternalServerError, "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, products)
}
