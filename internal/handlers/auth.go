package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/models"
	"scoop_storefront/internal/services"
	"scoop_storefront/internal/session"
	"scoop_storefront/internal/store"

	"github.com/gin-gonic/gin"
)

func loginRedirect(c *gin.Context, params url.Values) {
	c.Redirect(http.StatusSeeOther, middleware.LoginPath+"?"+params.Encode())
}

// startSession attache l'utilisateur à la session courante sous un nouvel identifiant
func startSession(c *gin.Context, user *models.User) {
	s := middleware.CurrentSession(c)
	if s == nil {
		return
	}
	if err := session.Regenerate(c.Request.Context(), s); err != nil {
		log.Printf("⚠️ Régénération session: %v", err)
	}
	session.Login(s, user)
	saveSession(c)
}

// ================== AUTH LOCALE ==================

// POST /register (formulaire name, email, password)
func (h *Handler) Register(c *gin.Context) {
	user, err := h.Accounts.Register(c.Request.Context(),
		c.PostForm("name"), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		msg := "Registration failed"
		switch {
		case errors.Is(err, services.ErrMissingFields):
			msg = "All fields are required"
		case errors.Is(err, store.ErrDuplicateEmail):
			msg = "An account with this email already exists"
		default:
			log.Printf("❌ Erreur inscription: %v", err)
		}
		c.Set(middleware.AttemptFailed, true)
		loginRedirect(c, url.Values{"mode": {"register"}, "error": {msg}})
		return
	}

	c.Set(middleware.AttemptSucceeded, true)
	startSession(c, user)
	log.Printf("✅ Nouvel utilisateur %s", user.Email)
	c.Redirect(http.StatusSeeOther, "/account")
}

// POST /login (formulaire email, password)
func (h *Handler) Login(c *gin.Context) {
	user, err := h.Accounts.Authenticate(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("❌ Erreur connexion: %v", err)
		}
		c.Set(middleware.AttemptFailed, true)
		loginRedirect(c, url.Values{"error": {"Invalid email or password"}})
		return
	}

	c.Set(middleware.AttemptSucceeded, true)
	startSession(c, user)
	c.Redirect(http.StatusSeeOther, "/account")
}

// GET /account/logout
func (h *Handler) Logout(c *gin.Context) {
	if s := middleware.CurrentSession(c); s != nil {
		session.Destroy(s)
		saveSession(c)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
