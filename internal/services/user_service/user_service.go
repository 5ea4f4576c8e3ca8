// Package services (user_service) is the authoritative surface over user
// accounts: authentication, registration, profile edits, admin blocking and
// deletion. It is the only component that accepts credentials.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"agriecom/internal/domain/models"
	"agriecom/internal/lib/logger/sl"
	"agriecom/internal/lib/netdelay"
	"agriecom/internal/lib/validation"
	"agriecom/internal/repository"
	"agriecom/internal/storage"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account blocked")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
)

// SessionStore is what the user service needs from the session layer.
// Blocking or deleting the signed-in user ends their session as a side
// effect, and profile edits refresh it.
type SessionStore interface {
	Current(ctx context.Context) (*models.User, error)
	Start(ctx context.Context, user models.User) error
	End(ctx context.Context) error
}

type UserService struct {
	log      *slog.Logger
	repo     repository.UserRepository
	sessions SessionStore
	delay    netdelay.Delayer
	validate *validator.Validate
	now      func() time.Time
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, sessions SessionStore, delay netdelay.Delayer) *UserService {
	return &UserService{
		log:      log,
		repo:     repo,
		sessions: sessions,
		delay:    delay,
		validate: validation.New(),
		now:      time.Now,
	}
}

// RegisterInput is the registration payload. Field rules are validated
// together; every violation is reported, not just the first.
type RegisterInput struct {
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"required,min=6"`
	Name        string      `json:"name" validate:"required,min=2"`
	Role        models.Role `json:"role" validate:"omitempty,oneof=buyer producer admin"`
	Phone       string      `json:"phone" validate:"omitempty,loosephone"`
	Address     string      `json:"address"`
	FarmName    string      `json:"farmName" validate:"required_if=Role producer"`
	Description string      `json:"description"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "user_service.ListUsers"

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// Authenticate verifies credentials against the stored collection. Email
// matching is case- and whitespace-insensitive; the password is compared
// exactly after a single trim. On success the record's LastLogin is updated,
// persisted, and a session is started for it.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	const op = "user_service.Authenticate"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", models.NormalizeEmail(email)),
	)

	if err := s.delay.Wait(ctx); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	cleanEmail := models.NormalizeEmail(email)
	cleanPassword := strings.TrimSpace(password)

	if cleanEmail == "" || cleanPassword == "" {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	user, err := s.repo.FindByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("login attempt for unknown email")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to look up user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if user.Password != cleanPassword {
		log.Info("login attempt with wrong password")
		return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if user.Blocked {
		log.Warn("login attempt on blocked account", slog.String("user_id", user.ID))
		return models.User{}, fmt.Errorf("%s: %w", op, ErrAccountBlocked)
	}

	now := s.now()
	user.LastLogin = &now

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		log.Error("failed to record last login", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sessions.Start(ctx, updated); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", updated.ID))

	return updated, nil
}

// Register creates a new account and signs it in. The role defaults to buyer
// when unset; a duplicate normalized email fails with ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	const op = "user_service.Register"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", models.NormalizeEmail(input.Email)),
	)

	if err := s.delay.Wait(ctx); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	input.Email = models.NormalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	input.Password = strings.TrimSpace(input.Password)

	if err := validation.Wrap(s.validate.Struct(input)); err != nil {
		log.Info("registration rejected", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleBuyer
	}

	now := s.now()
	user := models.User{
		ID:          models.NewID(now),
		Email:       input.Email,
		Password:    input.Password,
		Name:        input.Name,
		Role:        role,
		Phone:       input.Phone,
		Address:     input.Address,
		FarmName:    input.FarmName,
		Description: input.Description,
		Blocked:     false,
		CreatedAt:   now,
		LastLogin:   nil,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Info("registration with taken email")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		log.Error("failed to save user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sessions.Start(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))

	return user, nil
}

// UpdateProfile merges the set fields of patch over the stored record. Only
// fields present in the patch are validated. ID, Role, Blocked and CreatedAt
// are preserved no matter what the caller sends; if the edited user is the
// active session's, the session is refreshed with the new data.
func (s *UserService) UpdateProfile(ctx context.Context, id string, patch models.UserPatch) (models.User, error) {
	const op = "user_service.UpdateProfile"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", id),
	)

	if err := s.delay.Wait(ctx); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	normalizePatch(&patch)

	if err := validation.Wrap(s.validate.Struct(patch)); err != nil {
		log.Info("profile update rejected", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if patch.Email != nil {
		other, err := s.repo.FindByEmail(ctx, *patch.Email)
		if err == nil && other.ID != id {
			log.Info("profile update with taken email")
			return models.User{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	updated, err := s.repo.Update(ctx, patch.ApplyTo(existing))
	if err != nil {
		log.Error("failed to update user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.refreshSessionIfCurrent(ctx, updated); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("profile updated")

	return updated, nil
}

// SetBlocked flips the blocked flag. Blocking the signed-in user ends their
// session on the spot.
func (s *UserService) SetBlocked(ctx context.Context, id string, blocked bool) (models.User, error) {
	const op = "user_service.SetBlocked"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", id),
		slog.Bool("blocked", blocked),
	)

	if err := s.delay.Wait(ctx); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user.Blocked = blocked

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		log.Error("failed to update blocked flag", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if blocked {
		if err := s.endSessionIfCurrent(ctx, id); err != nil {
			return models.User{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	log.Info("blocked flag updated")

	return updated, nil
}

// SearchUsers matches the query as a case-insensitive substring of name,
// email or farm name. An empty query returns everyone.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	const op = "user_service.SearchUsers"

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users, nil
	}

	matched := []models.User{}
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.FarmName), q) {
			matched = append(matched, u)
		}
	}

	return matched, nil
}

// DeleteUser removes the record outright. The deleted user's session, if
// active, ends with it.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	const op = "user_service.DeleteUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", id),
	)

	if err := s.delay.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		log.Error("failed to delete user", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.endSessionIfCurrent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user deleted")

	return nil
}

func (s *UserService) refreshSessionIfCurrent(ctx context.Context, user models.User) error {
	current, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if current == nil || current.ID != user.ID {
		return nil
	}

	return s.sessions.Start(ctx, user)
}

func (s *UserService) endSessionIfCurrent(ctx context.Context, id string) error {
	current, err := s.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if current == nil || current.ID != id {
		return nil
	}

	return s.sessions.End(ctx)
}

// normalizePatch trims the fields the stored record keeps trimmed, before
// validation sees them.
func normalizePatch(patch *models.UserPatch) {
	if patch.Email != nil {
		e := models.NormalizeEmail(*patch.Email)
		patch.Email = &e
	}
	if patch.Password != nil {
		p := strings.TrimSpace(*patch.Password)
		patch.Password = &p
	}
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		patch.Name = &n
	}
}
