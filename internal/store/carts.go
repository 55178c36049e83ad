package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scoop_storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCarts struct {
	items *mongo.Collection
}

func NewMongoCarts(db *mongo.Database) *MongoCarts {
	return &MongoCarts{items: db.Collection("cartitems")}
}

func (s *MongoCarts) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := s.items.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("lecture panier: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("décodage panier: %w", err)
	}
	return items, nil
}

// Increment s'appuie sur l'index unique (user_id, product_id) : un upsert
// avec $inc ne peut pas créer de doublon.
func (s *MongoCarts) Increment(ctx context.Context, item models.CartItem) error {
	now := time.Now()
	filter := bson.M{"user_id": item.UserID, "product_id": item.ProductID}
	update := bson.M{
		"$inc": bson.M{"quantity": 1},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"name":       item.Name,
			"price":      item.Price,
			"image":      item.Image,
			"created_at": now,
		},
	}

	_, err := s.items.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ajout au panier: %w", err)
	}
	return nil
}

func ownedItemFilter(userID, itemID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}

func (s *MongoCarts) Get(ctx context.Context, userID, itemID string) (*models.CartItem, error) {
	filter, err := ownedItemFilter(userID, itemID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.items.FindOne(ctx, filter).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture ligne %s: %w", itemID, err)
	}
	return &item, nil
}

func (s *MongoCarts) SetQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	filter, err := ownedItemFilter(userID, itemID)
	if err != nil {
		return err
	}

	res, err := s.items.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"quantity": quantity, "updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("mise à jour ligne %s: %w", itemID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoCarts) Remove(ctx context.Context, userID, itemID string) error {
	filter, err := ownedItemFilter(userID, itemID)
	if err != nil {
		return err
	}

	res, err := s.items.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("suppression ligne %s: %w", itemID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoCarts) Count(ctx context.Context, userID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "count": bson.M{"$sum": "$quantity"}}}},
	}

	cursor, err := s.items.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("comptage panier: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("décodage comptage: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Count, nil
}

func (s *MongoCarts) Clear(ctx context.Context, userID string) error {
	if _, err := s.items.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("vidage panier: %w", err)
	}
	return nil
}
