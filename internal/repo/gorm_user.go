package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return translate(r.DB.WithContext(ctx).Create(u).Error)
}

func (r *GormRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("gmail = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("gmail = ? AND id <> ?", email, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *GormRepo) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	res := r.DB.WithContext(ctx).Model(u).Select("*").Omit("created_at").Updates(u)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) DeleteUser(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// mutateUser loads, changes and saves a user inside one transaction.
func (r *GormRepo) mutateUser(ctx context.Context, id string, fn func(u *models.User) error) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return err
		}
		if err := fn(&user); err != nil {
			return err
		}
		return tx.Model(&user).Select("*").Omit("created_at").Updates(&user).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) AddAddress(ctx context.Context, userID string, addr models.Address) (*models.User, error) {
	return r.mutateUser(ctx, userID, func(u *models.User) error {
		u.Addresses = append(u.Addresses, addr)
		return nil
	})
}

func (r *GormRepo) UpdateAddress(ctx context.Context, userID string, addr models.Address) (*models.User, error) {
	return r.mutateUser(ctx, userID, func(u *models.User) error {
		for i := range u.Addresses {
			if u.Addresses[i].ID == addr.ID {
				u.Addresses[i].City = addr.City
				u.Addresses[i].State = addr.State
				u.Addresses[i].Zipcode = addr.Zipcode
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r *GormRepo) RemoveAddress(ctx context.Context, userID, addressID string) (*models.User, error) {
	return r.mutateUser(ctx, userID, func(u *models.User) error {
		u.Addresses = removeFunc(u.Addresses, func(a models.Address) bool { return a.ID == addressID })
		return nil
	})
}

func (r *GormRepo) AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	return r.mutateUser(ctx, userID, func(u *models.User) error {
		u.Wishlist = addToSet(u.Wishlist, productID)
		return nil
	})
}

func (r *GormRepo) RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error) {
	return r.mutateUser(ctx, userID, func(u *models.User) error {
		u.Wishlist = removeFunc(u.Wishlist, func(id string) bool { return id == productID })
		return nil
	})
}

func (r *GormRepo) PushOrder(ctx context.Context, userID, orderID string) error {
	_, err := r.mutateUser(ctx, userID, func(u *models.User) error {
		u.Orders = append(u.Orders, orderID)
		return nil
	})
	return err
}

func (r *GormRepo) PullOrder(ctx context.Context, userID, orderID string) error {
	_, err := r.mutateUser(ctx, userID, func(u *models.User) error {
		u.Orders = removeFunc(u.Orders, func(id string) bool { return id == orderID })
		return nil
	})
	return err
}

func addToSet(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func removeFunc[T any](list []T, match func(T) bool) []T {
	out := list[:0]
	for _, x := range list {
		if !match(x) {
			out = append(out, x)
		}
	}
	return out
}
