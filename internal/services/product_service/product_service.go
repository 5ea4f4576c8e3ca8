// Package services (product_service) is the CRUD and search surface over the
// product catalog. Ownership is recorded via SellerID on write but not
// enforced on mutation; the HTTP layer gates who may call what.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/logger/sl"
	"agriecom/internal/lib/netdelay"
	"agriecom/internal/lib/validation"
	"agriecom/internal/repository"
	"agriecom/internal/storage"

	"github.com/go-playground/validator/v10"
)

type ProductService struct {
	log      *slog.Logger
	repo     repository.ProductRepository
	delay    netdelay.Delayer
	validate *validator.Validate
	now      func() time.Time
}

func NewProductService(log *slog.Logger, repo repository.ProductRepository, delay netdelay.Delayer) *ProductService {
	return &ProductService{
		log:      log,
		repo:     repo,
		delay:    delay,
		validate: validation.New(),
		now:      time.Now,
	}
}

type CreateInput struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category"`
	Image       string  `json:"image" validate:"omitempty,url"`
	SellerID    string  `json:"sellerId" validate:"required"`
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	const op = "product_service.ListProducts"

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

// GetProduct returns nil without error when the id is unknown.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	const op = "product_service.GetProduct"

	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, storage.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &product, nil
}

func (s *ProductService) ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	const op = "product_service.ListBySeller"

	products, err := s.repo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, input CreateInput) (models.Product, error) {
	const op = "product_service.CreateProduct"

	log := s.log.With(
		slog.String("op", op),
		slog.String("seller_id", input.SellerID),
	)

	if err := s.delay.Wait(ctx); err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validation.Wrap(s.validate.Struct(input)); err != nil {
		log.Info("product rejected", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	product := models.Product{
		ID:          models.NewID(now),
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		SellerID:    input.SellerID,
		CreatedAt:   now,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		log.Error("failed to save product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("product created", slog.String("product_id", product.ID))

	return product, nil
}

// UpdateProduct merges the patch over the stored record. An unknown id
// returns nil without error, matching the read side.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	const op = "product_service.UpdateProduct"

	log := s.log.With(
		slog.String("op", op),
		slog.String("product_id", id),
	)

	if err := s.delay.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := validation.Wrap(s.validate.Struct(patch)); err != nil {
		log.Info("product update rejected", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, storage.ErrProductNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.Update(ctx, patch.ApplyTo(existing))
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			// removed between read and write; same answer as a miss
			return nil, nil
		}
		log.Error("failed to update product", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("product updated")

	return &updated, nil
}

// DeleteProduct removes the record; deleting an unknown id is a no-op.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	const op = "product_service.DeleteProduct"

	if err := s.delay.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		s.log.Error("failed to delete product", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *ProductService) Search(ctx context.Context, query, category string) ([]models.Product, error) {
	const op = "product_service.Search"

	products, err := s.repo.Search(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}
