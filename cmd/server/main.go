package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scoop_storefront/internal/config"
	"scoop_storefront/internal/database"
	"scoop_storefront/internal/handlers"
	"scoop_storefront/internal/middleware"
	"scoop_storefront/internal/routes"
	"scoop_storefront/internal/services"
	"scoop_storefront/internal/session"
	"scoop_storefront/internal/store"
	"scoop_storefront/web"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.Load()

	settings, err := config.FromEnv()
	if err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}
	gin.SetMode(settings.GinMode)

	database.ConnectDatabases(settings)

	catalog := store.NewMongoCatalog(database.MongoDB)
	carts := store.NewMongoCarts(database.MongoDB)

	var searcher services.ProductSearcher
	if database.Elastic != nil {
		searcher = services.NewProductIndex(database.Elastic, settings.ElasticIndex)
	}
	catalogService := services.NewCatalogService(catalog, searcher)
	syncSearchIndex(catalogService)

	var notifier services.OrderNotifier
	if settings.MailEnabled() {
		notifier = services.NewMailer(services.SMTPConfig{
			Host:     settings.SMTPHost,
			Port:     settings.SMTPPort,
			Username: settings.SMTPUsername,
			Password: settings.SMTPPassword,
			From:     settings.MailFrom,
		}, settings.BaseURL)
		log.Println("✅ Emails de confirmation activés")
	}

	h := handlers.New(
		catalogService,
		services.NewCartService(catalog, carts),
		services.NewAccountService(store.NewMongoUsers(database.MongoDB), bcrypt.DefaultCost),
		services.NewOrderService(carts, store.NewMongoOrders(database.MongoDB), notifier),
		settings.BaseURL,
	)

	tmpl, err := web.Templates()
	if err != nil {
		log.Fatalf("❌ Templates invalides: %v", err)
	}

	sessionStore := session.NewStore(database.Redis, []byte(settings.SessionSecret),
		session.Options(settings.SessionMaxAge, settings.SecureCookies))

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if len(settings.CORSOrigins) > 0 {
		r.Use(middleware.CORS(settings.CORSOrigins))
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())
	r.Use(middleware.Session(sessionStore))
	routes.RegisterRoutes(r, h, database.Redis)

	srv := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: r,
	}

	go func() {
		log.Println("🚀 Serveur Scoop Shop lancé sur le port", settings.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Serveur arrêté: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Arrêt du serveur...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Arrêt forcé: %v", err)
	}
	database.Close(ctx)
}

// syncSearchIndex recopie le catalogue dans Elasticsearch au démarrage.
// En cas d'échec la recherche passe par MongoDB.
func syncSearchIndex(catalog *services.CatalogService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := catalog.SyncIndex(ctx); err != nil {
		log.Printf("⚠️ Indexation produits: %v", err)
	}
}
