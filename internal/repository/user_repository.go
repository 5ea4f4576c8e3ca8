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
	"agriecom/internal/seed"
	"agriecom/internal/storage"
)

type UserRepo struct {
	log   *slog.Logger
	store storage.Storage
	mu    sync.Mutex
}

func NewUserRepository(log *slog.Logger, store storage.Storage) *UserRepo {
	return &UserRepo{log: log, store: store}
}

// load reads the full user collection. A never-written key and a corrupt
// value both fall back to the bundled fixtures: the repository must answer
// queries arriving before bootstrap seeding ran, and malformed data is a
// local recovery, never a caller-visible error.
func (r *UserRepo) load(ctx context.Context) ([]models.User, error) {
	const op = "repository.user_repository.load"

	data, err := r.store.Get(ctx, storage.UsersKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return seed.Users(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		r.log.Warn("corrupt user collection, falling back to fixtures", sl.Err(err))
		return seed.Users(), nil
	}

	return users, nil
}

func (r *UserRepo) save(ctx context.Context, users []models.User) error {
	const op = "repository.user_repository.save"

	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.store.Set(ctx, storage.UsersKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (models.User, error) {
	const op = "repository.user_repository.FindByID"

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "repository.user_repository.FindByEmail"

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	want := models.NormalizeEmail(email)
	for _, u := range users {
		if models.NormalizeEmail(u.Email) == want {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

// Insert appends a new record. The unique-normalized-email invariant is
// enforced here, at the last write before persistence.
func (r *UserRepo) Insert(ctx context.Context, user models.User) error {
	const op = "repository.user_repository.Insert"

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	want := models.NormalizeEmail(user.Email)
	for _, u := range users {
		if models.NormalizeEmail(u.Email) == want {
			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
	}

	if err := r.save(ctx, append(users, user)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Update replaces the stored record carrying the same ID.
func (r *UserRepo) Update(ctx context.Context, user models.User) (models.User, error) {
	const op = "repository.user_repository.Update"

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	for i, u := range users {
		if u.ID != user.ID {
			continue
		}
		users[i] = user
		if err := r.save(ctx, users); err != nil {
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
		return user, nil
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (r *UserRepo) Remove(ctx context.Context, id string) error {
	const op = "repository.user_repository.Remove"

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	kept := users[:0:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	if len(kept) == len(users) {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	if err := r.save(ctx, kept); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
