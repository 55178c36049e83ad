package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catégories acceptées par le catalogue
const (
	CategoryParfait = "parfait"
	CategoryCone    = "cone"
	CategoryTub     = "tub"
)

var Categories = []string{CategoryParfait, CategoryCone, CategoryTub}

// Tailles optionnelles d'un produit
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

var Sizes = []string{SizeSmall, SizeMedium, SizeLarge}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	Size        string             `bson:"size,omitempty" json:"size,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsFeatured  bool               `bson:"isFeatured" json:"isFeatured"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// IsValidCategory vérifie qu'une catégorie fait partie de l'enum
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
