package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
)

const maxNameLength = 200

// ProductIndex is the full-text product index.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error)
}

type CatalogService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	// Index is nil when search runs on the database only.
	Index ProductIndex
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (s *CatalogService) GetProducts(ctx context.Context, page util.Page) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, page.Offset(), page.Limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, fmt.Errorf("name must be at most %d characters: %w", maxNameLength, ErrValidation)
	}
	if req.Price == nil {
		return nil, fmt.Errorf("price is required: %w", ErrValidation)
	}
	if *req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	exists, err := s.Repo.ProductNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("product with this name already exists: %w", ErrConflict)
	}

	prod := &models.Product{
		Name:     name,
		Price:    *req.Price,
		ImageURL: req.ImageURL,
	}
	if _, err := s.Repo.CreateProduct(ctx, prod); err != nil {
		if errors.Is(translate(err), ErrConflict) {
			return nil, fmt.Errorf("product with this name already exists: %w", ErrConflict)
		}
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, *prod); err != nil {
			logging.FromContext(ctx).Error("index_product_error", "productID", prod.ID, "error", err)
		}
	}

	publish(ctx, s.Events, events.TopicProduct, prod.ID.String(), events.ProductEvent{
		Type:      events.ProductCreated,
		ProductID: prod.ID,
		Name:      prod.Name,
		Price:     prod.Price,
		At:        time.Now().UTC(),
	})
	return prod, nil
}

// SearchProducts queries the search index when one is configured and falls back
// to a name match in the database otherwise or when the index fails.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, page util.Page) (int64, []models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("q is required: %w", ErrValidation)
	}

	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, q, page.Offset(), page.Limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("search_index_error", "fallback", "database", "error", err)
	}

	return s.Repo.SearchProducts(ctx, q, page.Offset(), page.Limit)
}
