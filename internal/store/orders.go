package store

import (
	"context"
	"errors"
	"fmt"

	"scoop_storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOrders struct {
	orders *mongo.Collection
}

func NewMongoOrders(db *mongo.Database) *MongoOrders {
	return &MongoOrders{orders: db.Collection("orders")}
}

func (s *MongoOrders) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := s.orders.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("enregistrement commande: %w", err)
	}
	return nil
}

// FindByNumber vérifie aussi que la commande appartient à l'utilisateur
func (s *MongoOrders) FindByNumber(ctx context.Context, userID, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{
		"order_number": orderNumber,
		"user_id":      userID,
	}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture commande %s: %w", orderNumber, err)
	}
	return &order, nil
}

func (s *MongoOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.orders.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("lecture commandes: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("décodage commandes: %w", err)
	}
	return orders, nil
}
