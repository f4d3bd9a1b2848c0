package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
)

type recorder struct {
	mu     sync.Mutex
	topics []string
	events []events.Event
}

func (r *recorder) PublishEvent(_ context.Context, topic, _ string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
	r.events = append(r.events, event.(events.Event))
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

type fixture struct {
	store   *repo.GormRepo
	events  *recorder
	auth    *AuthService
	catalog *CatalogService
	orders  *OrderService
	users   *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	gdb, err := pkgdb.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(gdb) })

	store := repo.NewGormRepo(gdb)
	require.NoError(t, store.Migrate(ctx))

	rec := &recorder{}
	return &fixture{
		store:   store,
		events:  rec,
		auth:    &AuthService{Users: store, Events: rec, Secret: []byte("test-secret"), TTL: time.Hour},
		catalog: &CatalogService{Products: store, Orders: store, Users: store, Events: rec},
		orders:  &OrderService{Orders: store, Products: store, Users: store, Events: rec},
		users:   &UserService{Users: store, Orders: store, Events: rec},
	}
}

func (f *fixture) register(t *testing.T, name, email, role string) *models.User {
	t.Helper()
	res, err := f.auth.Register(context.Background(), name, email, "secret1", role)
	require.NoError(t, err)
	return res.User
}

func (f *fixture) product(t *testing.T, name, category string, stock int) *models.Product {
	t.Helper()
	price := 100.0
	p, err := f.catalog.Create(context.Background(), ProductInput{
		Name: &name, Price: &price, Category: &category, Stock: &stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) order(t *testing.T, userID string, items ...models.OrderItem) *models.Order {
	t.Helper()
	total := 10.0
	o, err := f.orders.Create(context.Background(), userID, CreateOrderInput{
		Location:    models.Location{City: "Almaty", State: "KZ", Zipcode: "050000"},
		Items:       items,
		TotalAmount: &total,
	})
	require.NoError(t, err)
	return o
}

func ptr[T any](v T) *T { return &v }
