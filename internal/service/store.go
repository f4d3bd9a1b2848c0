package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error
	AddAddress(ctx context.Context, userID string, addr models.Address) (*models.User, error)
	UpdateAddress(ctx context.Context, userID string, addr models.Address) (*models.User, error)
	RemoveAddress(ctx context.Context, userID, addressID string) (*models.User, error)
	AddToWishlist(ctx context.Context, userID, productID string) (*models.User, error)
	RemoveFromWishlist(ctx context.Context, userID, productID string) (*models.User, error)
	PushOrder(ctx context.Context, userID, orderID string) error
	PullOrder(ctx context.Context, userID, orderID string) error
}

type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]models.Product, error)
	SearchProducts(ctx context.Context, q string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) error
	AppendReview(ctx context.Context, id, blob string) (*models.Product, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	GetOrdersByIDs(ctx context.Context, ids []string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error)
	DeleteOrder(ctx context.Context, id string) (*models.Order, error)
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}

// Store is implemented by repo.GormRepo and repo.MongoRepo.
type Store interface {
	UserStore
	ProductStore
	OrderStore
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ProductIndex interface {
	Index(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
	IndexAll(ctx context.Context, products []models.Product) error
	// Search returns matching product ids; the store stays the source of truth.
	Search(ctx context.Context, q string) ([]string, error)
}

// publish never fails the caller; a lost event is only logged.
func publish(ctx context.Context, p Publisher, topic string, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, ev.ID, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", ev.Type, "error", err)
	}
}
