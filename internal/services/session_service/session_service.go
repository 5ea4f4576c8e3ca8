// Package services (session_service) tracks which user is currently signed
// in. It is a thin wrapper over the session repository and the only component
// other services go through to touch the session slot.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"agriecom/internal/domain/models"
	"agriecom/internal/repository"
)

type SessionService struct {
	log  *slog.Logger
	repo repository.SessionRepository
}

func NewSessionService(log *slog.Logger, repo repository.SessionRepository) *SessionService {
	return &SessionService{log: log, repo: repo}
}

// Current returns the signed-in user, or nil when nobody is.
func (s *SessionService) Current(ctx context.Context) (*models.User, error) {
	const op = "session_service.Current"

	user, err := s.repo.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// Start persists user as the active session, replacing any prior one.
func (s *SessionService) Start(ctx context.Context, user models.User) error {
	const op = "session_service.Start"

	if err := s.repo.Save(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("session started",
		slog.String("op", op),
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return nil
}

// End clears the session. Ending an already-ended session is a no-op.
func (s *SessionService) End(ctx context.Context) error {
	const op = "session_service.End"

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
