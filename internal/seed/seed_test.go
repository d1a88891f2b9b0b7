package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/internal/repository/memory"
	"github.com/meridianhome/storefront/internal/service"
	"github.com/meridianhome/storefront/pkg/pagination"
)

func TestCatalogSeedsEverything(t *testing.T) {
	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := service.NewCatalogService(memory.NewProductRepository(), memory.NewCategoryRepository(), l)
	ctx := context.Background()

	require.NoError(t, Catalog(ctx, catalog, l))

	cats, err := catalog.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(categories))

	result, err := catalog.ListProducts(ctx, domain.ProductFilter{}, pagination.Params{Page: 1, PerPage: 100})
	require.NoError(t, err)
	assert.Equal(t, len(products), result.TotalCount)

	// Every product landed in a real category.
	office, err := catalog.ListProducts(ctx, domain.ProductFilter{CategorySlug: "office"}, pagination.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 3, office.TotalCount)

	// Seeding twice collides on slugs.
	assert.Error(t, Catalog(ctx, catalog, l))
}
