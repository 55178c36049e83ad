package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"scoop_storefront/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCatalog struct {
	products *mongo.Collection
}

func NewMongoCatalog(db *mongo.Database) *MongoCatalog {
	return &MongoCatalog{products: db.Collection("products")}
}

// ProductFilter traduit la requête en filtre Mongo
func ProductFilter(q ProductQuery) bson.M {
	filter := bson.M{}
	if len(q.Categories) > 0 {
		filter["category"] = bson.M{"$in": q.Categories}
	}
	if len(q.Sizes) > 0 {
		filter["size"] = bson.M{"$in": q.Sizes}
	}
	if q.MaxPrice != nil {
		filter["price"] = bson.M{"$lte": *q.MaxPrice}
	}
	if q.IDs != nil {
		oids := make([]primitive.ObjectID, 0, len(q.IDs))
		for _, id := range q.IDs {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				oids = append(oids, oid)
			}
		}
		filter["_id"] = bson.M{"$in": oids}
	} else if q.Search != "" {
		// recherche littérale : les caractères spéciaux sont échappés
		filter["name"] = bson.M{"$regex": regexp.QuoteMeta(q.Search), "$options": "i"}
	}
	return filter
}

// ProductSort retourne l'ordre de tri, nil si aucun
func ProductSort(sort string) bson.D {
	switch sort {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	}
	return nil
}

func (s *MongoCatalog) Find(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	opts := options.Find()
	if sort := ProductSort(q.Sort); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := s.products.Find(ctx, ProductFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("recherche produits: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("décodage produits: %w", err)
	}
	return products, nil
}

func (s *MongoCatalog) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p models.Product
	err = s.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture produit %s: %w", id, err)
	}
	return &p, nil
}

func (s *MongoCatalog) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	opts := options.Find().SetLimit(limit)
	cursor, err := s.products.Find(ctx, bson.M{"isFeatured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("produits vedettes: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("décodage produits: %w", err)
	}
	return products, nil
}
