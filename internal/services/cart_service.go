package services

import (
	"context"
	"errors"
	"fmt"

	"scoop_storefront/internal/models"
	"scoop_storefront/internal/store"
)

const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
)

var ErrInvalidAction = errors.New("action inconnue")

type CartService struct {
	catalog store.Catalog
	carts   store.Carts
}

func NewCartService(catalog store.Catalog, carts store.Carts) *CartService {
	return &CartService{catalog: catalog, carts: carts}
}

// Add ajoute une unité du produit au panier et retourne le nouveau total
// d'articles. Nom, prix et image sont copiés depuis le catalogue.
func (s *CartService) Add(ctx context.Context, userID, productID string) (int, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	err = s.carts.Increment(ctx, models.CartItem{
		UserID:    userID,
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
	})
	if err != nil {
		return 0, err
	}

	return s.carts.Count(ctx, userID)
}

// Update applique +1 ou -1 ; une quantité qui tomberait à 0 supprime la ligne
func (s *CartService) Update(ctx context.Context, userID, itemID, action string) error {
	if action != ActionIncrement && action != ActionDecrement {
		return ErrInvalidAction
	}

	item, err := s.carts.Get(ctx, userID, itemID)
	if err != nil {
		return err
	}

	quantity := item.Quantity + 1
	if action == ActionDecrement {
		quantity = item.Quantity - 1
	}
	if quantity <= 0 {
		return s.carts.Remove(ctx, userID, itemID)
	}
	return s.carts.SetQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID string) error {
	return s.carts.Remove(ctx, userID, itemID)
}

// Count retourne 0 pour un visiteur anonyme
func (s *CartService) Count(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, nil
	}
	return s.carts.Count(ctx, userID)
}

func (s *CartService) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	if userID == "" {
		return []models.CartItem{}, nil
	}
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("panier de %s: %w", userID, err)
	}
	return items, nil
}
