package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/logger/sl"
	"agriecom/internal/storage"
)

type CartRepo struct {
	log   *slog.Logger
	store storage.Storage
	mu    sync.Mutex
}

func NewCartRepository(log *slog.Logger, store storage.Storage) *CartRepo {
	return &CartRepo{log: log, store: store}
}

func (r *CartRepo) Items(ctx context.Context) ([]models.CartItem, error) {
	const op = "repository.cart_repository.Items"

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.store.Get(ctx, storage.CartKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		r.log.Warn("corrupt cart, falling back to empty", sl.Err(err))
		return []models.CartItem{}, nil
	}

	return items, nil
}

func (r *CartRepo) Save(ctx context.Context, items []models.CartItem) error {
	const op = "repository.cart_repository.Save"

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.store.Set(ctx, storage.CartKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *CartRepo) Clear(ctx context.Context) error {
	const op = "repository.cart_repository.Clear"

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Delete(ctx, storage.CartKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
