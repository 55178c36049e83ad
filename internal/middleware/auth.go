package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginPath est la page vers laquelle le client est renvoyé sans session
const LoginPath = "/login"

// AuthRequired bloque les routes API pour les visiteurs anonymes (401 + redirect)
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"error":    "Please log in to continue",
				"redirect": LoginPath,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// PageAuthRequired redirige les pages protégées vers /login
func PageAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
