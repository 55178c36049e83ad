package session

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

// Options des cookies de session
func Options(maxAge int, secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
}

// NewStore retourne un store Redis, ou un store fichiers (répertoire
// temporaire) quand Redis n'est pas configuré. Dans les deux cas l'état
// reste côté serveur.
func NewStore(client *redis.Client, secret []byte, opts *sessions.Options) sessions.Store {
	if client != nil {
		store := NewRedisStore(client, secret)
		store.Options = opts
		log.Println("✅ Sessions stockées dans Redis")
		return store
	}

	store := sessions.NewFilesystemStore("", secret)
	store.Options = opts
	store.MaxAge(opts.MaxAge)
	log.Println("⚠️ Sessions stockées sur disque")
	return store
}
