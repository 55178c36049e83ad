// Package store regroupe les accès MongoDB du site : catalogue, paniers,
// comptes et commandes.
package store

import (
	"context"
	"errors"

	"scoop_storefront/internal/models"
)

var (
	ErrNotFound       = errors.New("document introuvable")
	ErrDuplicateEmail = errors.New("email déjà utilisé")
)

// Tri accepté par le catalogue
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ProductQuery décrit les filtres de GET /api/products
type ProductQuery struct {
	Categories []string
	Sizes      []string
	MaxPrice   *float64
	Search     string
	Sort       string
	// IDs restreint la recherche (résultat de l'index Elasticsearch)
	IDs []string
}

type Catalog interface {
	Find(ctx context.Context, q ProductQuery) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Featured(ctx context.Context, limit int64) ([]models.Product, error)
}

type Carts interface {
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	// Increment ajoute 1 à la ligne (user, produit), ou la crée avec quantité 1
	Increment(ctx context.Context, item models.CartItem) error
	// Get ne retourne la ligne que si elle appartient à userID
	Get(ctx context.Context, userID, itemID string) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	Count(ctx context.Context, userID string) (int, error)
	Clear(ctx context.Context, userID string) error
}

type Users interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type Orders interface {
	Create(ctx context.Context, order *models.Order) error
	FindByNumber(ctx context.Context, userID, orderNumber string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}
