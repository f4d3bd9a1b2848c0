package repo

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/internal/models"
)

func newMongoRepo(t *testing.T) *MongoRepo {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	db, err := pkgdb.ConnectMongo(ctx, uri, "storefront_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})

	r := NewMongoRepo(db)
	require.NoError(t, r.Migrate(ctx))
	return r
}

func TestMongoRepo_UsersAndOrders(t *testing.T) {
	ctx := context.Background()
	r := newMongoRepo(t)

	require.NoError(t, r.CreateUser(ctx, &models.User{ID: "u-1", Name: "A", Gmail: "a@x.io", Password: "h", Role: "user"}))
	assert.ErrorIs(t, r.CreateUser(ctx, &models.User{ID: "u-2", Name: "B", Gmail: "a@x.io", Password: "h", Role: "user"}), ErrDuplicate)

	u, err := r.AddToWishlist(ctx, "u-1", "p-1")
	require.NoError(t, err)
	u, err = r.AddToWishlist(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, u.Wishlist)

	_, err = r.AddAddress(ctx, "u-1", models.Address{ID: "a-1", City: "Almaty"})
	require.NoError(t, err)
	u, err = r.UpdateAddress(ctx, "u-1", models.Address{ID: "a-1", City: "Astana"})
	require.NoError(t, err)
	assert.Equal(t, "Astana", u.Addresses[0].City)
	_, err = r.UpdateAddress(ctx, "u-1", models.Address{ID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.CreateProduct(ctx, &models.Product{ID: "p-1", Name: "iPhone", Category: "Phones", Stock: 3}))
	require.NoError(t, r.AdjustStock(ctx, "p-1", -1))
	p, err := r.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)

	items, err := r.SearchProducts(ctx, "IPH")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = r.GetProductsByIDs(ctx, []string{"p-1", "ghost"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Stock)

	require.NoError(t, r.CreateOrder(ctx, &models.Order{
		ID: "o-1", UserID: "u-1", Status: models.OrderStatusPending,
		Items: []models.OrderItem{{ProductID: "p-1", Quantity: 1}},
	}))
	bought, err := r.HasPurchased(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.True(t, bought)

	o, err := r.DeleteOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Len(t, o.Items, 1)
	_, err = r.GetOrder(ctx, "o-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
