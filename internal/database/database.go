package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"scoop_storefront/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// --- Variables Globales ---
var (
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	Redis   *redis.Client         // nil si REDIS_HOST n'est pas défini
	Elastic *elasticsearch.Client // nil si ELASTIC_URL n'est pas défini
)

// --- Initialisation ---
// Seul MongoDB est obligatoire ; Redis et Elasticsearch sont optionnels.
func ConnectDatabases(s config.Settings) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. MongoDB
	if err := connectMongo(ctx, s); err != nil {
		log.Fatalf("❌ Échec initialisation MongoDB: %v", err)
	}
	if err := EnsureIndexes(ctx, MongoDB); err != nil {
		log.Fatalf("❌ Échec création des index MongoDB: %v", err)
	}

	// 2. Redis
	if s.RedisHost != "" {
		connectRedis(ctx, s)
	} else {
		log.Println("⚠️ REDIS_HOST absent : sessions sur disque, pas de limitation des tentatives")
	}

	// 3. Elasticsearch
	if s.ElasticURL != "" {
		connectElastic(s)
	} else {
		log.Println("⚠️ ELASTIC_URL absent : recherche produits via MongoDB uniquement")
	}

	log.Println("✅ Bases de données connectées")
}

// =============================================
// MONGODB
// =============================================
func connectMongo(ctx context.Context, s config.Settings) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.DatabaseURL))
	if err != nil {
		return fmt.Errorf("connexion: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	Mongo = client
	MongoDB = client.Database(s.DatabaseName)
	log.Printf("✅ Connecté à MongoDB (base %s)", s.DatabaseName)
	return nil
}

// EnsureIndexes crée les index dont dépendent les invariants des stores :
// un email par compte, une ligne de panier par (utilisateur, produit).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"cartitems": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"orders": {
			{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"products": {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
		},
	}

	for coll, specs := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("index %s: %w", coll, err)
		}
	}
	return nil
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context, s config.Settings) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     s.RedisHost,
		Password: s.RedisPassword,
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic(s config.Settings) {
	cfg := elasticsearch.Config{
		Addresses: []string{s.ElasticURL},
		Username:  s.ElasticUser,
		Password:  s.ElasticPassword,
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Fatal("❌ Erreur création client Elasticsearch:", err)
	}

	res, err := client.Info()
	if err != nil {
		// la recherche retombe sur MongoDB
		log.Printf("⚠️ Elasticsearch injoignable, désactivé: %v", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}

// Close ferme les connexions ouvertes
func Close(ctx context.Context) {
	if Redis != nil {
		if err := Redis.Close(); err != nil {
			log.Printf("⚠️ Fermeture Redis: %v", err)
		}
	}
	if Mongo != nil {
		if err := Mongo.Disconnect(ctx); err != nil {
			log.Printf("⚠️ Fermeture MongoDB: %v", err)
		}
	}
	log.Println("🔌 Connexions fermées")
}
