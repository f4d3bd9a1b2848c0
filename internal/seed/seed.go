// Package seed loads the demo catalogue into an empty store.
package seed

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// Seed inserts the demo catalogue through the catalog service so the search
// index and event stream see the same products. A non-empty catalogue is
// left alone unless force is set, in which case it is cleared first.
func Seed(ctx context.Context, catalog *service.CatalogService, force bool) (int, error) {
	l := logging.FromContext(ctx).With("svc", "seed")

	existing, err := catalog.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		if !force {
			l.Info("seed_skipped", "products", len(existing))
			return 0, nil
		}
		for _, p := range existing {
			if err := catalog.Delete(ctx, p.ID); err != nil {
				return 0, fmt.Errorf("clear product %s: %w", p.ID, err)
			}
		}
		l.Info("seed_cleared", "products", len(existing))
	}

	for i, it := range demo {
		_, err := catalog.Create(ctx, service.ProductInput{
			Name:        &it.name,
			Price:       &it.price,
			Rating:      &it.rating,
			Description: &it.description,
			Images:      it.images,
			Category:    &it.category,
			Stock:       &it.stock,
		})
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", it.name, err)
		}
	}

	l.Info("seed_done", "products", len(demo))
	return len(demo), nil
}
