package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/logger/sl"
	"agriecom/internal/storage"
)

type ProductRepo struct {
	log   *slog.Logger
	store storage.Storage
	mu    sync.Mutex
}

func NewProductRepository(log *slog.Logger, store storage.Storage) *ProductRepo {
	return &ProductRepo{log: log, store: store}
}

// load reads the full catalog. An unwritten key is an empty catalog, and
// corrupt data degrades to empty with a log line rather than an error.
func (r *ProductRepo) load(ctx context.Context) ([]models.Product, error) {
	const op = "repository.product_repository.load"

	data, err := r.store.Get(ctx, storage.ProductsKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		r.log.Warn("corrupt product collection, falling back to empty", sl.Err(err))
		return []models.Product{}, nil
	}

	return products, nil
}

func (r *ProductRepo) save(ctx context.Context, products []models.Product) error {
	const op = "repository.product_repository.save"

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.store.Set(ctx, storage.ProductsKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (models.Product, error) {
	const op = "repository.product_repository.FindByID"

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}

	return models.Product{}, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
}

func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	const op = "repository.product_repository.ListBySeller"

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mine := []models.Product{}
	for _, p := range products {
		if p.SellerID == sellerID {
			mine = append(mine, p)
		}
	}

	return mine, nil
}

func (r *ProductRepo) Insert(ctx context.Context, product models.Product) error {
	const op = "repository.product_repository.Insert"

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.save(ctx, append(products, product)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ProductRepo) Update(ctx context.Context, product models.Product) (models.Product, error) {
	const op = "repository.product_repository.Update"

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	for i, p := range products {
		if p.ID != product.ID {
			continue
		}
		products[i] = product
		if err := r.save(ctx, products); err != nil {
			return models.Product{}, fmt.Errorf("%s: %w", op, err)
		}
		return product, nil
	}

	return models.Product{}, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
}

// Remove filters the record out. Removing an unknown id is a no-op by
// contract.
func (r *ProductRepo) Remove(ctx context.Context, id string) error {
	const op = "repository.product_repository.Remove"

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kept := products[:0:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return nil
	}

	if err := r.save(ctx, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Search keeps products whose title or description contains the query
// (case-insensitive) and whose category equals the filter when one is given.
// An empty query matches everything.
func (r *ProductRepo) Search(ctx context.Context, query, category string) ([]models.Product, error) {
	const op = "repository.product_repository.Search"

	r.mu.Lock()
	defer r.mu.Unlock()

	products, err := r.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q := strings.ToLower(strings.TrimSpace(query))

	matched := []models.Product{}
	for _, p := range products {
		matchesQuery := strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
		matchesCategory := category == "" || p.Category == category

		if matchesQuery && matchesCategory {
			matched = append(matched, p)
		}
	}

	return matched, nil
}
