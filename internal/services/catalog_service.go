package services

import (
	"context"
	"log"

	"scoop_storefront/internal/models"
	"scoop_storefront/internal/store"
)

// ProductSearcher résout un texte de recherche en identifiants produits
type ProductSearcher interface {
	MatchIDs(ctx context.Context, term string) ([]string, error)
	Reindex(ctx context.Context, products []models.Product) error
}

type CatalogService struct {
	catalog store.Catalog
	index   ProductSearcher
}

// NewCatalogService : index peut être nil (recherche Mongo uniquement)
func NewCatalogService(catalog store.Catalog, index ProductSearcher) *CatalogService {
	return &CatalogService{catalog: catalog, index: index}
}

// Search passe par Elasticsearch si disponible, sinon $regex Mongo
func (s *CatalogService) Search(ctx context.Context, q store.ProductQuery) ([]models.Product, error) {
	if s.index != nil && q.Search != "" {
		ids, err := s.index.MatchIDs(ctx, q.Search)
		if err == nil {
			q.IDs = ids
		} else {
			log.Printf("⚠️ Elasticsearch indisponible, fallback MongoDB: %v", err)
		}
	}
	return s.catalog.Find(ctx, q)
}

func (s *CatalogService) All(ctx context.Context) ([]models.Product, error) {
	return s.catalog.Find(ctx, store.ProductQuery{})
}

func (s *CatalogService) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	return s.catalog.Featured(ctx, limit)
}

func (s *CatalogService) Product(ctx context.Context, id string) (*models.Product, error) {
	return s.catalog.FindByID(ctx, id)
}

// SyncIndex recopie le catalogue dans l'index de recherche
func (s *CatalogService) SyncIndex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}
	products, err := s.All(ctx)
	if err != nil {
		return err
	}
	return s.index.Reindex(ctx, products)
}
