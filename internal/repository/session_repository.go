package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/logger/sl"
	"agriecom/internal/storage"
)

// SessionRepo owns the current-user slot. No other component writes that key.
type SessionRepo struct {
	log   *slog.Logger
	store storage.Storage
}

func NewSessionRepository(log *slog.Logger, store storage.Storage) *SessionRepo {
	return &SessionRepo{log: log, store: store}
}

// Current returns the persisted session, or nil when there is none. A corrupt
// stored value means "no session", never an error.
func (r *SessionRepo) Current(ctx context.Context) (*models.User, error) {
	const op = "repository.session_repository.Current"

	data, err := r.store.Get(ctx, storage.CurrentUserKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		r.log.Warn("corrupt session record, treating as signed out", sl.Err(err))
		return nil, nil
	}

	return &user, nil
}

// Save overwrites any prior session with the given record.
func (r *SessionRepo) Save(ctx context.Context, user models.User) error {
	const op = "repository.session_repository.Save"

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.store.Set(ctx, storage.CurrentUserKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Clear removes the session slot. Clearing an empty slot is a no-op.
func (r *SessionRepo) Clear(ctx context.Context) error {
	const op = "repository.session_repository.Clear"

	if err := r.store.Delete(ctx, storage.CurrentUserKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
