package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Load charge .env s'il existe ; les variables système restent prioritaires
func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

type Settings struct {
	Port          string
	DatabaseURL   string
	DatabaseName  string
	SessionSecret string
	SessionMaxAge int
	SecureCookies bool

	RedisHost     string
	RedisPassword string

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string
	ElasticIndex    string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	BaseURL     string
	CORSOrigins []string
	GinMode     string
}

// devSessionSecret n'est accepté qu'en mode debug
const devSessionSecret = "dev-only-session-secret-change-me"

// FromEnv lit la configuration depuis l'environnement
func FromEnv() (Settings, error) {
	s := Settings{
		Port:            getEnv("PORT", "3000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DatabaseName:    getEnv("DATABASE_NAME", "scoopshop"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionMaxAge:   getEnvInt("SESSION_MAX_AGE", 86400),
		SecureCookies:   strings.ToLower(os.Getenv("SECURE_COOKIES")) == "true",
		RedisHost:       os.Getenv("REDIS_HOST"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		ElasticURL:      os.Getenv("ELASTIC_URL"),
		ElasticUser:     os.Getenv("ELASTIC_USER"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),
		ElasticIndex:    getEnv("ELASTIC_INDEX", "products"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnvInt("SMTP_PORT", 587),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		MailFrom:        getEnv("MAIL_FROM", "noreply@scoopshop.local"),
		GinMode:         getEnv("GIN_MODE", "debug"),
	}
	s.BaseURL = getEnv("BASE_URL", "http://localhost:"+s.Port)

	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			s.CORSOrigins = append(s.CORSOrigins, origin)
		}
	}

	if s.DatabaseURL == "" {
		return s, errors.New("DATABASE_URL manquant")
	}
	if s.SessionSecret == "" {
		if s.GinMode == "release" {
			return s, errors.New("SESSION_SECRET manquant")
		}
		log.Println("⚠️ SESSION_SECRET absent, secret de développement utilisé")
		s.SessionSecret = devSessionSecret
	}
	return s, nil
}

// MailEnabled : l'envoi d'emails n'est actif que si un serveur SMTP est configuré
func (s Settings) MailEnabled() bool {
	return s.SMTPHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ %s invalide (%q), valeur par défaut %d", key, v, fallback)
		return fallback
	}
	return n
}
