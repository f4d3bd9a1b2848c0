package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	return translate(r.DB.WithContext(ctx).Create(o).Error)
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// ListOrders returns orders newest first; an empty userID lists everyone's.
func (r *GormRepo) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	orders := []models.Order{}
	err := q.Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (r *GormRepo) GetOrdersByIDs(ctx context.Context, ids []string) ([]models.Order, error) {
	orders := []models.Order{}
	if len(ids) == 0 {
		return orders, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetOrder(ctx, id)
}

// DeleteOrder removes the order and returns what was deleted.
func (r *GormRepo) DeleteOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// HasPurchased narrows candidates with a LIKE on the serialized items, then
// confirms on the decoded snapshot.
func (r *GormRepo) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	orders := []models.Order{}
	err := r.DB.WithContext(ctx).
		Where(`user_id = ? AND items LIKE ? ESCAPE '\'`, userID, `%"productId":"`+likeEscaper.Replace(productID)+`"%`).
		Find(&orders).Error
	if err != nil {
		return false, err
	}
	for i := range orders {
		if orders[i].Contains(productID) {
			return true, nil
		}
	}
	return false, nil
}
