// Package services (cart_service) manages the locally persisted cart. Lines
// snapshot the product's title, price and image at add time, the way the
// storefront displays them even after the catalog changes.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"agriecom/internal/domain/models"
	"agriecom/internal/repository"
	"agriecom/internal/storage"
)

var ErrProductNotFound = errors.New("product not found")

// ProductProvider resolves the product being added to the cart.
type ProductProvider interface {
	FindByID(ctx context.Context, id string) (models.Product, error)
}

type CartService struct {
	log      *slog.Logger
	repo     repository.CartRepository
	products ProductProvider
}

func NewCartService(log *slog.Logger, repo repository.CartRepository, products ProductProvider) *CartService {
	return &CartService{log: log, repo: repo, products: products}
}

func (s *CartService) Items(ctx context.Context) ([]models.CartItem, error) {
	const op = "cart_service.Items"

	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Add puts qty units of the product into the cart, merging with an existing
// line for the same product.
func (s *CartService) Add(ctx context.Context, productID string, qty int) ([]models.CartItem, error) {
	const op = "cart_service.Add"

	if qty < 1 {
		qty = 1
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrProductNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  qty,
		})
	}

	if err := s.repo.Save(ctx, items); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("cart item added",
		slog.String("op", op),
		slog.String("product_id", productID),
		slog.Int("quantity", qty),
	)

	return items, nil
}

// SetQuantity changes a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, productID string, qty int) ([]models.CartItem, error) {
	const op = "cart_service.SetQuantity"

	items, err := s.repo.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	next := items[:0:0]
	for _, item := range items {
		if item.ProductID == productID {
			if qty <= 0 {
				continue
			}
			item.Quantity = qty
		}
		next = append(next, item)
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return next, nil
}

// Remove drops the line for the product. Unknown products are a no-op.
func (s *CartService) Remove(ctx context.Context, productID string) ([]models.CartItem, error) {
	return s.SetQuantity(ctx, productID, 0)
}

func (s *CartService) Clear(ctx context.Context) error {
	const op = "cart_service.Clear"

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Total sums price times quantity across the cart.
func (s *CartService) Total(ctx context.Context) (float64, error) {
	const op = "cart_service.Total"

	items, err := s.repo.Items(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}

	return total, nil
}
