package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/internal/models"
)

func newSQLiteRepo(t *testing.T) *GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := pkgdb.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(gdb) })

	r := NewGormRepo(gdb)
	require.NoError(t, r.Migrate(ctx))
	return r
}

func TestGormRepo_Users(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)

	u := &models.User{ID: "u-1", Name: "Alice", Gmail: "alice@example.com", Password: "hash", Role: "user"}
	require.NoError(t, r.CreateUser(ctx, u))

	dup := &models.User{ID: "u-2", Name: "Other", Gmail: "alice@example.com", Password: "hash", Role: "user"}
	assert.ErrorIs(t, r.CreateUser(ctx, dup), ErrDuplicate)

	got, err := r.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, []string{}, got.Wishlist)
	assert.Equal(t, []models.Address{}, got.Addresses)

	_, err = r.GetUserByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	taken, err := r.EmailTaken(ctx, "alice@example.com", "u-1")
	require.NoError(t, err)
	assert.False(t, taken)
	taken, err = r.EmailTaken(ctx, "alice@example.com", "u-9")
	require.NoError(t, err)
	assert.True(t, taken)

	got.Name = "Alicia"
	require.NoError(t, r.SaveUser(ctx, got))
	again, err := r.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", again.Name)

	assert.ErrorIs(t, r.SaveUser(ctx, &models.User{ID: "ghost", Name: "x", Gmail: "g@x.io", Password: "p", Role: "user"}), ErrNotFound)

	require.NoError(t, r.DeleteUser(ctx, "u-1"))
	assert.ErrorIs(t, r.DeleteUser(ctx, "u-1"), ErrNotFound)
}

func TestGormRepo_UserLists(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	require.NoError(t, r.CreateUser(ctx, &models.User{ID: "u-1", Name: "A", Gmail: "a@x.io", Password: "h", Role: "user"}))

	u, err := r.AddToWishlist(ctx, "u-1", "p-1")
	require.NoError(t, err)
	u, err = r.AddToWishlist(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, u.Wishlist)

	u, err = r.RemoveFromWishlist(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.Empty(t, u.Wishlist)

	u, err = r.AddAddress(ctx, "u-1", models.Address{ID: "a-1", City: "Almaty", State: "KZ", Zipcode: "050000"})
	require.NoError(t, err)
	require.Len(t, u.Addresses, 1)

	u, err = r.UpdateAddress(ctx, "u-1", models.Address{ID: "a-1", City: "Astana", State: "KZ", Zipcode: "010000"})
	require.NoError(t, err)
	assert.Equal(t, "Astana", u.Addresses[0].City)

	_, err = r.UpdateAddress(ctx, "u-1", models.Address{ID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)

	u, err = r.RemoveAddress(ctx, "u-1", "a-1")
	require.NoError(t, err)
	assert.Empty(t, u.Addresses)

	require.NoError(t, r.PushOrder(ctx, "u-1", "o-1"))
	require.NoError(t, r.PushOrder(ctx, "u-1", "o-2"))
	require.NoError(t, r.PullOrder(ctx, "u-1", "o-1"))
	u, err = r.GetUserByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"o-2"}, u.Orders)

	_, err = r.AddToWishlist(ctx, "ghost", "p-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_Products(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)

	for _, p := range []models.Product{
		{ID: "p-1", Name: "iPhone 15", Price: 999, Category: "Phones", Description: "Apple phone", Stock: 5},
		{ID: "p-2", Name: "MacBook Air", Price: 1299, Category: "Laptops", Description: "100% aluminium", Stock: 2},
	} {
		p := p
		require.NoError(t, r.CreateProduct(ctx, &p))
	}

	n, err := r.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	items, err := r.ProductsByCategory(ctx, "phone")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-1", items[0].ID)

	items, err = r.SearchProducts(ctx, "APPLE")
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = r.SearchProducts(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-2", items[0].ID)

	items, err = r.SearchProducts(ctx, "%")
	require.NoError(t, err)
	assert.Len(t, items, 1, "wildcards are matched literally")

	require.NoError(t, r.AdjustStock(ctx, "p-1", -3))
	p, err := r.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Stock)
	assert.ErrorIs(t, r.AdjustStock(ctx, "ghost", 1), ErrNotFound)

	p, err = r.AppendReview(ctx, "p-1", `{"userName":"A"}`)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"userName":"A"}`}, p.RateComments)
	_, err = r.AppendReview(ctx, "ghost", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	p.Price = 899
	require.NoError(t, r.SaveProduct(ctx, p))
	p, err = r.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 899.0, p.Price)
	assert.Len(t, p.RateComments, 1)

	require.NoError(t, r.DeleteProduct(ctx, "p-1"))
	assert.ErrorIs(t, r.DeleteProduct(ctx, "p-1"), ErrNotFound)
	_, err = r.GetProduct(ctx, "p-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_ProductLookups(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first := models.Product{ID: "p-1", Name: "Écran 27", Category: "monitors", CreatedAt: base}
	require.NoError(t, r.CreateProduct(ctx, &first))
	assert.Equal(t, []string{}, first.RateComments)
	assert.Equal(t, []string{}, first.Images)

	second := models.Product{ID: "p-2", Name: "Ёлка", Category: "Décor", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, r.CreateProduct(ctx, &second))

	items, err := r.GetProductsByIDs(ctx, []string{"p-2", "ghost", "p-1"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p-1", items[0].ID)
	assert.Equal(t, "p-2", items[1].ID)

	items, err = r.GetProductsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{}, items)

	items, err = r.SearchProducts(ctx, "ÉCRAN")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-1", items[0].ID)

	items, err = r.SearchProducts(ctx, "ёлк")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-2", items[0].ID)

	items, err = r.ProductsByCategory(ctx, "DÉCOR")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p-2", items[0].ID)
}

func TestGormRepo_Orders(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)

	older := &models.Order{
		ID: "o-1", OrderDate: time.Now().UTC().Add(-time.Hour), UserID: "u-1", Status: models.OrderStatusPending,
		Items: []models.OrderItem{{ProductID: "p-1", ProductName: "iPhone", Quantity: 1, Price: 999}},
	}
	newer := &models.Order{
		ID: "o-2", OrderDate: time.Now().UTC(), UserID: "u-1", Status: models.OrderStatusPending,
		Items: []models.OrderItem{{ProductID: "p-10", ProductName: "Case", Quantity: 2, Price: 10}},
	}
	other := &models.Order{ID: "o-3", OrderDate: time.Now().UTC(), UserID: "u-2", Status: models.OrderStatusPending}
	for _, o := range []*models.Order{older, newer, other} {
		require.NoError(t, r.CreateOrder(ctx, o))
	}

	mine, err := r.ListOrders(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "o-2", mine[0].ID)

	all, err := r.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byIDs, err := r.GetOrdersByIDs(ctx, []string{"o-1", "o-3"})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	bought, err := r.HasPurchased(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.True(t, bought)
	bought, err = r.HasPurchased(ctx, "u-2", "p-1")
	require.NoError(t, err)
	assert.False(t, bought)

	o, err := r.UpdateOrderStatus(ctx, "o-1", models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, o.Status)
	_, err = r.UpdateOrderStatus(ctx, "ghost", models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := r.DeleteOrder(ctx, "o-1")
	require.NoError(t, err)
	require.Len(t, deleted.Items, 1)
	assert.Equal(t, 1, deleted.Items[0].Quantity)
	_, err = r.DeleteOrder(ctx, "o-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
