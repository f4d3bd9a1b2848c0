package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
)

func newCatalog(t *testing.T) (*service.CatalogService, *repo.GormRepo) {
	t.Helper()
	ctx := context.Background()
	gdb, err := pkgdb.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pkgdb.Close(gdb) })

	store := repo.NewGormRepo(gdb)
	require.NoError(t, store.Migrate(ctx))
	return &service.CatalogService{Products: store, Orders: store, Users: store}, store
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	catalog, store := newCatalog(t)

	n, err := Seed(ctx, catalog, false)
	require.NoError(t, err)
	assert.Equal(t, len(demo), n)

	count, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(demo), count)

	phones, err := catalog.ByCategory(ctx, "phones")
	require.NoError(t, err)
	assert.Len(t, phones, 2)
	assert.Len(t, phones[0].Images, 2)

	n, err = Seed(ctx, catalog, false)
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err = store.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(demo), count)
}

func TestSeed_Force(t *testing.T) {
	ctx := context.Background()
	catalog, store := newCatalog(t)

	_, err := Seed(ctx, catalog, false)
	require.NoError(t, err)

	n, err := Seed(ctx, catalog, true)
	require.NoError(t, err)
	assert.Equal(t, len(demo), n)

	count, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(demo), count)
}
