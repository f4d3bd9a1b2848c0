package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/storefront/internal/models"
)

const maxHits = 1000

var productMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"name":        map[string]any{"type": "keyword"},
			"description": map[string]any{"type": "keyword"},
			"category":    map[string]any{"type": "keyword"},
			"price":       map[string]any{"type": "double"},
			"stock":       map[string]any{"type": "integer"},
			"createdAt":   map[string]any{"type": "date"},
		},
	},
}

// ProductIndex mirrors products into an index searched by substring.
type ProductIndex struct {
	client *elasticsearch.Client
	index  string
}

func NewProductIndex(client *elasticsearch.Client, index string) *ProductIndex {
	return &ProductIndex{client: client, index: index}
}

func (p *ProductIndex) EnsureIndex(ctx context.Context) error {
	res, err := p.client.Indices.Exists([]string{p.index}, p.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, err := encode(productMapping)
	if err != nil {
		return err
	}
	res, err = p.client.Indices.Create(p.index,
		p.client.Indices.Create.WithContext(ctx),
		p.client.Indices.Create.WithBody(body),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return check(res, "create index")
}

func (p *ProductIndex) Index(ctx context.Context, product models.Product) error {
	body, err := encode(product)
	if err != nil {
		return err
	}
	res, err := p.client.Index(p.index, body,
		p.client.Index.WithContext(ctx),
		p.client.Index.WithDocumentID(product.ID),
		p.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	return check(res, "index product")
}

func (p *ProductIndex) Delete(ctx context.Context, id string) error {
	res, err := p.client.Delete(p.index, id,
		p.client.Delete.WithContext(ctx),
		p.client.Delete.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.StatusCode == http.StatusNotFound {
		res.Body.Close()
		return nil
	}
	return check(res, "delete product")
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// Search matches q as a case-insensitive substring of name, description or
// category and returns the ids of the matching products, oldest first.
func (p *ProductIndex) Search(ctx context.Context, q string) ([]string, error) {
	pattern := "*" + wildcardEscaper.Replace(q) + "*"
	should := make([]any, 0, 3)
	for _, field := range []string{"name", "description", "category"} {
		should = append(should, map[string]any{
			"wildcard": map[string]any{
				field: map[string]any{"value": pattern, "case_insensitive": true},
			},
		})
	}
	body, err := encode(map[string]any{
		"size":    maxHits,
		"_source": false,
		"query":   map[string]any{"bool": map[string]any{"should": should, "minimum_should_match": 1}},
		"sort":    []any{map[string]any{"createdAt": map[string]any{"order": "asc", "unmapped_type": "date"}}},
	})
	if err != nil {
		return nil, err
	}

	res, err := p.client.Search(
		p.client.Search.WithContext(ctx),
		p.client.Search.WithIndex(p.index),
		p.client.Search.WithBody(body),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search: %s: %s", res.Status(), msg)
	}

	var r struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	ids := make([]string, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		ids[i] = hit.ID
	}
	return ids, nil
}

// IndexAll writes every product in one bulk request, replacing existing documents.
func (p *ProductIndex) IndexAll(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, product := range products {
		meta := map[string]any{"index": map[string]any{"_id": product.ID}}
		if err := enc.Encode(meta); err != nil {
			return fmt.Errorf("encode bulk meta: %w", err)
		}
		if err := enc.Encode(product); err != nil {
			return fmt.Errorf("encode bulk doc: %w", err)
		}
	}

	res, err := p.client.Bulk(&buf,
		p.client.Bulk.WithContext(ctx),
		p.client.Bulk.WithIndex(p.index),
		p.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("bulk index: %s: %s", res.Status(), msg)
	}

	var r struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return fmt.Errorf("decode bulk: %w", err)
	}
	if r.Errors {
		return fmt.Errorf("bulk index: some documents were rejected")
	}
	return nil
}

func encode(v any) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return &buf, nil
}

func check(res *esapi.Response, op string) error {
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%s: %s: %s", op, res.Status(), msg)
	}
	return nil
}
