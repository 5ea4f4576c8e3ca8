package services

import (
	"context"
	"log/slog"
	"testing"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/netdelay"
	"agriecom/internal/lib/validation"
	"agriecom/internal/repository"
	"agriecom/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *ProductService {
	t.Helper()

	repos := repository.New(slog.Default(), memory.New())

	return NewProductService(slog.Default(), repos.Product, netdelay.None{})
}

func tomatoes() CreateInput {
	return CreateInput{
		Title:       "Tomatoes",
		Description: "Fresh",
		Price:       3,
		Category:    "vegetables",
		SellerID:    "u1",
	}
}

func TestCreateProductThenSearch(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateProduct(ctx, tomatoes())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("case-insensitive substring match", func(t *testing.T) {
		got, err := svc.Search(ctx, "tomato", "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, created.ID, got[0].ID)
	})

	t.Run("wrong category filters it out", func(t *testing.T) {
		got, err := svc.Search(ctx, "tomato", "fruits")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty search returns the full catalog", func(t *testing.T) {
		got, err := svc.Search(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateProduct(ctx, CreateInput{Price: -1, SellerID: "u1"})

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "title is required")
	assert.Contains(t, verr.Violations, "price must be greater than zero")
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateProduct(ctx, tomatoes())
	require.NoError(t, err)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.Title, got.Title)

	// unknown id is a nil, not an error
	got, err = svc.GetProduct(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListBySeller(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateProduct(ctx, tomatoes())
	require.NoError(t, err)

	other := tomatoes()
	other.Title = "Honey"
	other.SellerID = "u2"
	_, err = svc.CreateProduct(ctx, other)
	require.NoError(t, err)

	mine, err := svc.ListBySeller(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Tomatoes", mine[0].Title)

	none, err := svc.ListBySeller(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateProduct(ctx, tomatoes())
	require.NoError(t, err)

	t.Run("merges set fields and keeps the rest", func(t *testing.T) {
		price := 4.5
		updated, err := svc.UpdateProduct(ctx, created.ID, models.ProductPatch{Price: &price})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 4.5, updated.Price)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.SellerID, updated.SellerID)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	})

	t.Run("unknown id is a nil, not an error", func(t *testing.T) {
		price := 1.0
		updated, err := svc.UpdateProduct(ctx, "ghost", models.ProductPatch{Price: &price})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("rejects a non-positive price", func(t *testing.T) {
		price := 0.0
		_, err := svc.UpdateProduct(ctx, created.ID, models.ProductPatch{Price: &price})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	created, err := svc.CreateProduct(ctx, tomatoes())
	require.NoError(t, err)

	// unknown id is a no-op
	require.NoError(t, svc.DeleteProduct(ctx, "ghost"))

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}
