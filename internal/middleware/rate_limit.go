package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	// Limites par endpoint
	LoginMaxAttempts    = 5
	RegisterMaxAttempts = 3

	// Durées de cooldown
	LoginCooldown    = 15 * time.Minute
	RegisterCooldown = 30 * time.Minute
)

// Clés posées par les handlers pour indiquer l'issue de la tentative
const (
	AttemptFailed    = "attempt_failed"
	AttemptSucceeded = "attempt_succeeded"
)

type attemptPolicy struct {
	name     string
	max      int
	cooldown time.Duration
	subject  func(c *gin.Context) string
	// countOn : clé de contexte qui incrémente le compteur
	countOn string
	// resetOn : clé de contexte qui remet le compteur à zéro ("" = jamais)
	resetOn string
}

// LoginRateLimit limite les échecs de connexion par email.
// Sans Redis le middleware laisse tout passer.
func LoginRateLimit(client *redis.Client) gin.HandlerFunc {
	return attemptLimit(client, attemptPolicy{
		name:     "login",
		max:      LoginMaxAttempts,
		cooldown: LoginCooldown,
		subject: func(c *gin.Context) string {
			return strings.ToLower(strings.TrimSpace(c.PostForm("email")))
		},
		countOn: AttemptFailed,
		resetOn: AttemptSucceeded,
	})
}

// RegisterRateLimit limite les inscriptions par IP
func RegisterRateLimit(client *redis.Client) gin.HandlerFunc {
	return attemptLimit(client, attemptPolicy{
		name:     "register",
		max:      RegisterMaxAttempts,
		cooldown: RegisterCooldown,
		subject:  func(c *gin.Context) string { return c.ClientIP() },
		countOn:  AttemptSucceeded,
	})
}

func attemptLimit(client *redis.Client, p attemptPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := p.subject(c)
		if client == nil || subject == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := p.name + "_attempts:" + subject
		cooldownKey := p.name + "_cooldown:" + subject

		// Vérifier si le sujet est en cooldown
		if ttl, err := client.TTL(ctx, cooldownKey).Result(); err == nil && ttl > 0 {
			tooMany(c, ttl)
			return
		}

		// Vérifier le nombre de tentatives
		attempts, err := client.Get(ctx, key).Int()
		if err != nil && err != redis.Nil {
			log.Printf("⚠️ Rate limit %s indisponible: %v", p.name, err)
			c.Next()
			return
		}
		if attempts >= p.max {
			// Activer le cooldown
			client.Set(ctx, cooldownKey, "1", p.cooldown)
			client.Del(ctx, key)
			tooMany(c, p.cooldown)
			return
		}

		c.Next()

		if c.GetBool(p.countOn) {
			pipe := client.Pipeline()
			pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, p.cooldown)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("⚠️ Incrément rate limit %s: %v", p.name, err)
			}
		} else if p.resetOn != "" && c.GetBool(p.resetOn) {
			client.Del(ctx, key, cooldownKey)
		}
	}
}

func tooMany(c *gin.Context, wait time.Duration) {
	minutes := int(wait.Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())))
	c.String(http.StatusTooManyRequests,
		fmt.Sprintf("Too many attempts. Please try again in %d minutes.", minutes))
	c.Abort()
}
