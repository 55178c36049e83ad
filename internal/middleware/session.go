package middleware

import (
	"log"
	"net/http"

	"scoop_storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const sessionKey = "session"

// Session charge la session du visiteur et met l'identité dans le contexte
// Gin ("user_id", "user_name", "email"). Une nouvelle session est créée dès
// la première requête.
func Session(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := store.Get(c.Request, session.Name)
		if err != nil {
			// session illisible : on repart d'une session vide
			log.Printf("⚠️ Session illisible: %v", err)
			s, err = store.New(c.Request, session.Name)
			if s == nil {
				log.Printf("❌ Impossible de créer une session: %v", err)
				c.String(http.StatusInternalServerError, "Session unavailable")
				c.Abort()
				return
			}
		}

		if s.IsNew {
			if err := s.Save(c.Request, c.Writer); err != nil {
				log.Printf("⚠️ Sauvegarde nouvelle session: %v", err)
			}
		}

		c.Set(sessionKey, s)
		c.Set("user_id", session.UserID(s))
		c.Set("user_name", session.UserName(s))
		c.Set("email", session.UserEmail(s))
		c.Next()
	}
}

// CurrentSession retourne la session chargée par le middleware Session
func CurrentSession(c *gin.Context) *sessions.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*sessions.Session)
	return s
}
