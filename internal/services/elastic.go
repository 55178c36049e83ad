package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"scoop_storefront/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// searchPageSize : nombre de hits par page, les pages suivantes passent par search_after
const searchPageSize = 1000

// ProductIndex indexe les noms de produits dans Elasticsearch
type ProductIndex struct {
	client   *elasticsearch.Client
	index    string
	pageSize int
}

func NewProductIndex(client *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{client: client, index: index, pageSize: searchPageSize}
}

type indexedProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
}

func (p *ProductIndex) Reindex(ctx context.Context, products []models.Product) error {
	for _, product := range products {
		data, err := json.Marshal(indexedProduct{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			Category:  product.Category,
			Price:     product.Price,
		})
		if err != nil {
			return err
		}

		req := esapi.IndexRequest{
			Index:      p.index,
			DocumentID: product.ID.Hex(),
			Body:       bytes.NewReader(data),
		}
		res, err := req.Do(ctx, p.client)
		if err != nil {
			return fmt.Errorf("indexation %s: %w", product.Name, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("indexation %s: %s", product.Name, res.Status())
		}
	}

	// rend les documents visibles pour la recherche
	res, err := esapi.IndicesRefreshRequest{Index: []string{p.index}}.Do(ctx, p.client)
	if err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	res.Body.Close()

	log.Printf("✅ %d produits indexés dans Elasticsearch", len(products))
	return nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// SearchQuery : sous-chaîne insensible à la casse sur le nom complet.
// after reprend la pagination après le dernier hit de la page précédente.
func SearchQuery(term string, size int, after []interface{}) map[string]interface{} {
	q := map[string]interface{}{
		"size":    size,
		"_source": false,
		"sort":    []interface{}{map[string]interface{}{"product_id.keyword": "asc"}},
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"name.keyword": map[string]interface{}{
					"value":            "*" + wildcardEscaper.Replace(term) + "*",
					"case_insensitive": true,
				},
			},
		},
	}
	if len(after) > 0 {
		q["search_after"] = after
	}
	return q
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID   string        `json:"_id"`
			Sort []interface{} `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// MatchIDs parcourt toutes les pages de résultats : le fallback MongoDB
// n'a pas de limite, l'index non plus.
func (p *ProductIndex) MatchIDs(ctx context.Context, term string) ([]string, error) {
	ids := []string{}
	var after []interface{}
	for {
		r, err := p.searchPage(ctx, term, after)
		if err != nil {
			return nil, err
		}
		for _, hit := range r.Hits.Hits {
			ids = append(ids, hit.ID)
		}

		hits := r.Hits.Hits
		if len(hits) < p.pageSize || len(hits[len(hits)-1].Sort) == 0 {
			return ids, nil
		}
		after = hits[len(hits)-1].Sort
	}
}

func (p *ProductIndex) searchPage(ctx context.Context, term string, after []interface{}) (*searchResponse, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(SearchQuery(term, p.pageSize, after)); err != nil {
		return nil, fmt.Errorf("encodage requête: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{p.index},
		Body:  &buf,
	}
	res, err := req.Do(ctx, p.client)
	if err != nil {
		return nil, fmt.Errorf("requête Elastic: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("elasticsearch a renvoyé " + res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("décodage JSON: %w", err)
	}
	return &r, nil
}
