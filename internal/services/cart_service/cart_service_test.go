package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"agriecom/internal/domain/models"
	"agriecom/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Items(ctx context.Context) ([]models.CartItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, items []models.CartItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProductProvider struct {
	mock.Mock
}

func (m *MockProductProvider) FindByID(ctx context.Context, id string) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

var testProduct = models.Product{
	ID:    "p1",
	Title: "Tomatoes",
	Price: 3,
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("new line snapshots the product", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductProvider)
		svc := NewCartService(slog.Default(), repo, products)

		products.On("FindByID", ctx, "p1").Return(testProduct, nil).Once()
		repo.On("Items", ctx).Return([]models.CartItem{}, nil).Once()
		repo.On("Save", ctx, []models.CartItem{
			{ProductID: "p1", Title: "Tomatoes", Price: 3, Quantity: 2},
		}).Return(nil).Once()

		items, err := svc.Add(ctx, "p1", 2)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)

		repo.AssertExpectations(t)
		products.AssertExpectations(t)
	})

	t.Run("existing line merges quantity", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductProvider)
		svc := NewCartService(slog.Default(), repo, products)

		products.On("FindByID", ctx, "p1").Return(testProduct, nil).Once()
		repo.On("Items", ctx).Return([]models.CartItem{
			{ProductID: "p1", Title: "Tomatoes", Price: 3, Quantity: 1},
		}, nil).Once()
		repo.On("Save", ctx, []models.CartItem{
			{ProductID: "p1", Title: "Tomatoes", Price: 3, Quantity: 3},
		}).Return(nil).Once()

		items, err := svc.Add(ctx, "p1", 2)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		repo := new(MockCartRepository)
		products := new(MockProductProvider)
		svc := NewCartService(slog.Default(), repo, products)

		products.On("FindByID", ctx, "ghost").
			Return(models.Product{}, fmt.Errorf("lookup: %w", storage.ErrProductNotFound)).Once()

		_, err := svc.Add(ctx, "ghost", 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestCartService_SetQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("changes the line quantity", func(t *testing.T) {
		repo := new(MockCartRepository)
		svc := NewCartService(slog.Default(), repo, new(MockProductProvider))

		repo.On("Items", ctx).Return([]models.CartItem{
			{ProductID: "p1", Title: "Tomatoes", Price: 3, Quantity: 2},
		}, nil).Once()
		repo.On("Save", ctx, []models.CartItem{
			{ProductID: "p1", Title: "Tomatoes", Price: 3, Quantity: 5},
		}).Return(nil).Once()

		items, err := svc.SetQuantity(ctx, "p1", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, items[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		repo := new(MockCartRepository)
		svc := NewCartService(slog.Default(), repo, new(MockProductProvider))

		repo.On("Items", ctx).Return([]models.CartItem{
			{ProductID: "p1", Title: "Tomatoes", Price: 3, Quantity: 2},
		}, nil).Once()
		repo.On("Save", ctx, []models.CartItem{}).Return(nil).Once()

		items, err := svc.SetQuantity(ctx, "p1", 0)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCartService_Total(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCartRepository)
	svc := NewCartService(slog.Default(), repo, new(MockProductProvider))

	repo.On("Items", ctx).Return([]models.CartItem{
		{ProductID: "p1", Price: 3, Quantity: 2},
		{ProductID: "p2", Price: 9.9, Quantity: 1},
	}, nil).Once()

	total, err := svc.Total(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 15.9, total, 0.0001)
}
