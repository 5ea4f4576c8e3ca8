// Package seed bundles the demo fixtures and the first-run bootstrap that
// writes them into empty storage. Seeding belongs to application startup, not
// to the repositories; they only fall back to the same fixtures when asked
// before bootstrap ran.
package seed

import (
	"context"
	"encoding/json"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/logger/sl"
	"agriecom/internal/storage"
)

//go:embed users.json
var usersJSON []byte

//go:embed products.json
var productsJSON []byte

// Users returns a fresh copy of the bundled demo accounts.
func Users() []models.User {
	var users []models.User
	// embedded fixtures are compile-time data; a decode failure is a bug
	if err := json.Unmarshal(usersJSON, &users); err != nil {
		panic(fmt.Sprintf("seed: bad users fixture: %v", err))
	}

	return users
}

// Products returns a fresh copy of the bundled demo catalog.
func Products() []models.Product {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		panic(fmt.Sprintf("seed: bad products fixture: %v", err))
	}

	return products
}

type Seeder struct {
	log   *slog.Logger
	store storage.Storage
}

func NewSeeder(log *slog.Logger, store storage.Storage) *Seeder {
	return &Seeder{log: log, store: store}
}

// Bootstrap writes the fixture collections into storage for every key that is
// absent or holds an empty collection. Keys with real data are left alone.
func (s *Seeder) Bootstrap(ctx context.Context) error {
	const op = "seed.Bootstrap"

	if err := s.seedKey(ctx, storage.UsersKey, usersJSON); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.seedKey(ctx, storage.ProductsKey, productsJSON); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Seeder) seedKey(ctx context.Context, key string, fixture []byte) error {
	data, err := s.store.Get(ctx, key)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return err
	}

	if err == nil && !s.emptyCollection(data) {
		return nil
	}

	if err := s.store.Set(ctx, key, fixture); err != nil {
		return err
	}

	s.log.Info("seeded storage key", slog.String("key", key))

	return nil
}

// emptyCollection reports whether data decodes to zero records. Corrupt data
// counts as empty and gets reseeded rather than surfaced.
func (s *Seeder) emptyCollection(data []byte) bool {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("corrupt collection in storage, reseeding", sl.Err(err))
		return true
	}

	return len(records) == 0
}
