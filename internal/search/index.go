package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/storefront/internal/models"
)

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

// Index is the Elasticsearch product index. Documents are products keyed by id.
type Index struct {
	es    *elasticsearch.Client
	index string
}

func New(cfg Config) (*Index, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	name := cfg.Index
	if name == "" {
		name = "products"
	}
	return &Index{es: client, index: name}, nil
}

func responseError(op string, status string, body io.Reader) error {
	raw, _ := io.ReadAll(io.LimitReader(body, 1024))
	return fmt.Errorf("elasticsearch %s: %s: %s", op, status, bytes.TrimSpace(raw))
}

func (i *Index) Ping(ctx context.Context) error {
	res, err := i.es.Info(i.es.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("info", res.Status(), res.Body)
	}
	return nil
}

func (i *Index) IndexProduct(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	res, err := i.es.Index(
		i.index,
		&buf,
		i.es.Index.WithContext(ctx),
		i.es.Index.WithDocumentID(p.ID.String()),
		i.es.Index.WithRefresh("wait_for"),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res.Status(), res.Body)
	}
	return nil
}

// Search runs a fuzzy match on product names and returns the total hit count
// with one page of products.
func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name"},
				"fuzziness": "AUTO",
			},
		},
		"sort": []any{"_score", map[string]any{"name.keyword": "asc"}},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode query: %w", err)
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(&buf),
		i.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res.Status(), res.Body)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for n, hit := range r.Hits.Hits {
		prods[n] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
