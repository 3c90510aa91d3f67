package catalog_test

import (
	"context"
	"testing"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *catalog.Repository {
	// Use in-memory database for tests
	repo, err := catalog.NewRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations("./migrations"))
	return repo
}

func TestGetAllProducts_Returns20AfterMigrations(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 20)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Wireless Mouse", products[0].Name)
	assert.Equal(t, int64(3500), products[0].Price)
	assert.Equal(t, int64(20), products[19].ID)

	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, int64(1000), p.Name)
		assert.LessOrEqual(t, p.Price, int64(15000), p.Name)
		assert.NotEmpty(t, p.Description, p.Name)
		assert.NotEmpty(t, p.Image, p.Name)
	}
}

func TestRunMigrations_Twice(t *testing.T) {
	repo := setupTestDB(t)
	assert.NoError(t, repo.RunMigrations("./migrations"))
}

func TestGetAllProducts_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAllProducts(ctx)
	assert.ErrorContains(t, err, "failed to query products")
}

func TestLoad_BuildsCatalog(t *testing.T) {
	c, err := catalog.Load(context.Background(), ":memory:", "./migrations")
	require.NoError(t, err)

	assert.Equal(t, 20, c.Len())
	mice := c.Search("mouse")
	require.Len(t, mice, 2)
	assert.Equal(t, "Wireless Mouse", mice[0].Name)
	assert.Equal(t, "Mousepad XL", mice[1].Name)
}
