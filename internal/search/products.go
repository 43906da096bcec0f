package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"go-storefront-api/internal/config"
	"go-storefront-api/internal/model"

	"github.com/elastic/go-elasticsearch/v9"
)

// ProductIndex mirrors the product catalog into Elasticsearch. A nil
// *ProductIndex is a valid no-op, so callers never branch on whether
// search is configured.
type ProductIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewProductIndex(cfg *config.Config) (*ProductIndex, error) {
	if cfg.ESAddress == "" {
		return nil, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ESAddress},
		Username:  cfg.ESUsername,
		Password:  cfg.ESPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("search: create client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("search: ping cluster: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search: cluster error: %s", body)
	}

	log.Println("Elasticsearch connection established")
	return &ProductIndex{client: client, index: cfg.ESIndex}, nil
}

// Enabled reports whether a live index backs this instance.
func (p *ProductIndex) Enabled() bool {
	return p != nil && p.client != nil
}

// IndexProduct upserts one product document. Best-effort: indexing
// failures are logged, never surfaced to the catalog write path.
func (p *ProductIndex) IndexProduct(ctx context.Context, product *model.Product) {
	if !p.Enabled() {
		return
	}

	doc, err := json.Marshal(product)
	if err != nil {
		log.Printf("search: marshal product %s: %v", product.ID, err)
		return
	}

	res, err := p.client.Index(
		p.index,
		bytes.NewReader(doc),
		p.client.Index.WithContext(ctx),
		p.client.Index.WithDocumentID(product.ID.String()),
	)
	if err != nil {
		log.Printf("search: index product %s: %v", product.ID, err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Printf("search: index product %s: %s", product.ID, res.Status())
	}
}

// RemoveProduct deletes the document for a product taken off the catalog.
func (p *ProductIndex) RemoveProduct(ctx context.Context, id string) {
	if !p.Enabled() {
		return
	}

	res, err := p.client.Delete(p.index, id, p.client.Delete.WithContext(ctx))
	if err != nil {
		log.Printf("search: remove product %s: %v", id, err)
		return
	}
	res.Body.Close()
}

// Search runs a fuzzy multi-field query and returns matching products with
// the total hit count.
func (p *ProductIndex) Search(ctx context.Context, query string, from, size int) (int64, []model.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description", "category"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := p.client.Search(
		p.client.Search.WithContext(ctx),
		p.client.Search.WithIndex(p.index),
		p.client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: query failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: query failed: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source model.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	products := make([]model.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		products[i] = hit.Source
	}
	return r.Hits.Total.Value, products, nil
}
