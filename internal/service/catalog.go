package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CatalogService struct {
	Products ProductStore
	Orders   OrderStore
	Users    UserStore
	Index    ProductIndex
	Events   Publisher
}

// ProductInput is shared by create and patch; nil fields were not supplied.
type ProductInput struct {
	Name        *string
	Price       *float64
	Rating      *float64
	Description *string
	Images      []string
	Category    *string
	Stock       *int
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Products.ListProducts(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.Products.GetProduct(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fail(ErrNotFound, "Product not found")
	}
	return p, err
}

func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Products.ProductsByCategory(ctx, strings.ToLower(strings.TrimSpace(category)))
}

// Search prefers the index and falls back to the store when it errors.
// Index hits are loaded from the store so stock and reviews are current.
func (s *CatalogService) Search(ctx context.Context, q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fail(ErrValidation, "Search query required")
	}

	if s.Index != nil {
		ids, err := s.Index.Search(ctx, q)
		if err == nil {
			return s.Products.GetProductsByIDs(ctx, ids)
		}
		logging.FromContext(ctx).Warn("search_index_error", "svc", "catalog.search", "error", err)
	}
	return s.Products.SearchProducts(ctx, q)
}

// Reindex copies the whole catalogue into the index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	items, err := s.Products.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.Index.IndexAll(ctx, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Price == nil ||
		in.Category == nil || strings.TrimSpace(*in.Category) == "" {
		return nil, fail(ErrValidation, "Name, price, and category are required")
	}
	if *in.Price < 0 {
		return nil, fail(ErrValidation, "Price must be a positive number")
	}

	p := &models.Product{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(*in.Name),
		Price:    *in.Price,
		Category: strings.ToLower(strings.TrimSpace(*in.Category)),
		Images:   []string{},
	}
	if in.Rating != nil {
		p.Rating = clampRating(*in.Rating)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Stock != nil {
		p.Stock = max(0, *in.Stock)
	}

	if err := s.Products.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.mirror(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, productEvent(events.ProductCreated, p))
	return p, nil
}

// Update patches supplied fields. Empty strings leave name, description and
// category unchanged.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	if in.Price != nil && *in.Price < 0 {
		return nil, fail(ErrValidation, "Price must be a positive number")
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Rating != nil {
		p.Rating = clampRating(*in.Rating)
	}
	if in.Description != nil && *in.Description != "" {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Category != nil && *in.Category != "" {
		p.Category = strings.ToLower(strings.TrimSpace(*in.Category))
	}
	if in.Stock != nil {
		p.Stock = max(0, *in.Stock)
	}

	if err := s.Products.SaveProduct(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "Product not found")
		}
		return nil, err
	}
	s.mirror(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, productEvent(events.ProductUpdated, p))
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Products.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "Product not found")
		}
		return err
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_error", "svc", "catalog.delete", "product_id", id, "error", err)
		}
	}
	publish(ctx, s.Events, events.TopicProducts, events.New(events.ProductDeleted, id, nil))
	return nil
}

func (s *CatalogService) Reviews(ctx context.Context, id string) ([]models.Review, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.ParseReviews(p.RateComments), nil
}

// SubmitReview checks the purchase before the product, so reviewing an unknown
// product that was never bought is forbidden rather than not found.
func (s *CatalogService) SubmitReview(ctx context.Context, userID, productID string, rating *float64, comment string) (*models.Product, error) {
	if rating == nil || *rating == 0 || comment == "" {
		return nil, fail(ErrValidation, "Rating and comment are required")
	}
	if *rating < 1 || *rating > 5 {
		return nil, fail(ErrValidation, "Rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fail(ErrValidation, "Comment cannot be empty")
	}

	bought, err := s.Orders.HasPurchased(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !bought {
		return nil, fail(ErrForbidden, "You can only review products you've purchased")
	}

	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "User not found")
		}
		return nil, err
	}

	blob, err := models.NewReviewBlob(user.Name, *rating, comment, time.Now())
	if err != nil {
		return nil, err
	}
	p, err := s.Products.AppendReview(ctx, productID, blob)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "Product not found")
		}
		return nil, err
	}

	s.mirror(ctx, p)
	publish(ctx, s.Events, events.TopicProducts, events.New(events.ReviewAdded, p.ID, map[string]any{
		"userId": userID,
		"rating": *rating,
	}))
	return p, nil
}

func (s *CatalogService) mirror(ctx context.Context, p *models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, *p); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "svc", "catalog.mirror", "product_id", p.ID, "error", err)
	}
}

func clampRating(r float64) float64 {
	return min(5, max(0, r))
}

func productEvent(typ string, p *models.Product) events.Event {
	return events.New(typ, p.ID, map[string]any{
		"name":     p.Name,
		"price":    p.Price,
		"category": p.Category,
		"stock":    p.Stock,
	})
}
