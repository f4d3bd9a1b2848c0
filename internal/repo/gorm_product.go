package repo

import (
	"context"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := []models.Product{}
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	items := []models.Product{}
	if len(ids) == 0 {
		return items, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *GormRepo) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.matchProducts(ctx, category, "category")
}

func (r *GormRepo) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	return r.matchProducts(ctx, q, "name", "description", "category")
}

// matchProducts returns products where any of the columns contains q,
// ignoring case, oldest first.
func (r *GormRepo) matchProducts(ctx context.Context, q string, columns ...string) ([]models.Product, error) {
	items := []models.Product{}

	if r.DB.Dialector.Name() == "sqlite" {
		// sqlite LOWER and LIKE fold ASCII only
		if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
			return nil, err
		}
		needle := strings.ToLower(q)
		return slices.DeleteFunc(items, func(p models.Product) bool {
			for _, col := range columns {
				if strings.Contains(strings.ToLower(productColumn(p, col)), needle) {
					return false
				}
			}
			return true
		}), nil
	}

	pattern := containsPattern(q)
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = col + ` ILIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	err := r.DB.WithContext(ctx).
		Where(strings.Join(conds, " OR "), args...).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func productColumn(p models.Product, column string) string {
	switch column {
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "category":
		return p.Category
	}
	return ""
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	p.Normalize()
	return translate(r.DB.WithContext(ctx).Create(p).Error)
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	res := r.DB.WithContext(ctx).Model(p).Select("*").Omit("created_at").Updates(p)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock adds delta to the stock column in a single statement.
func (r *GormRepo) AdjustStock(ctx context.Context, id string, delta int) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) AppendReview(ctx context.Context, id, blob string) (*models.Product, error) {
	var product models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			return err
		}
		product.RateComments = append(product.RateComments, blob)
		return tx.Model(&product).Select("rate_comments", "updated_at").Updates(&product).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}
