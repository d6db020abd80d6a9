package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/technotes/notes-api/internal/pkg/metrics"
	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/pkg/validation"
)

// PasswordCost is the bcrypt work factor applied to every stored password.
const PasswordCost = 10

type UserService struct {
	users  ports.UserRepository
	notes  ports.NoteRepository
	hasher ports.PasswordHasher
	cache  ports.UsernameCache
	logger zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	notes ports.NoteRepository,
	hasher ports.PasswordHasher,
	cache ports.UsernameCache,
	logger zerolog.Logger,
) *UserService {
	if cache == nil {
		cache = NopUsernameCache{}
	}
	return &UserService{users: users, notes: notes, hasher: hasher, cache: cache, logger: logger}
}

// ListUsers returns every user. Password hashes never leave the domain type's
// JSON encoding.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrNoUsersFound
	}
	return users, nil
}

func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", reject("user", err)
	}

	dup, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	if dup != nil {
		return "", reject("user", domain.ErrDuplicateUsername)
	}

	hash, err := s.hasher.Hash(in.Password, PasswordCost)
	if err != nil {
		return "", fmt.Errorf("create user: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		PasswordHash: hash,
		Roles:        in.Roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", reject("user", err)
	}
	if created == nil {
		return "", domain.ErrInvalidUserData
	}

	metrics.WritesTotal.WithLabelValues("user", "create").Inc()
	s.logger.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return fmt.Sprintf("New user %s created", created.Username), nil
}

func (s *UserService) UpdateUser(ctx context.Context, in ports.UpdateUserInput) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", reject("user", err)
	}

	user, err := s.users.FindByID(ctx, in.ID)
	if err != nil {
		return "", fmt.Errorf("update user: %w", err)
	}
	if user == nil {
		return "", reject("user", domain.ErrUserNotFound)
	}

	// The user may keep its own username.
	dup, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return "", fmt.Errorf("update user: %w", err)
	}
	if dup != nil && dup.ID != in.ID {
		return "", reject("user", domain.ErrDuplicateUsername)
	}

	user.Username = in.Username
	user.Roles = in.Roles
	user.Active = *in.Active
	user.UpdatedAt = time.Now().UTC()
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password, PasswordCost)
		if err != nil {
			return "", fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.users.Save(ctx, user)
	if err != nil {
		return "", reject("user", err)
	}

	s.remember(ctx, updated.ID, updated.Username)
	metrics.WritesTotal.WithLabelValues("user", "update").Inc()
	s.logger.Info().Str("user_id", updated.ID).Str("username", updated.Username).Msg("user updated")
	return fmt.Sprintf("%s updated", updated.Username), nil
}

// DeleteUser removes a user. Users that still own notes are never deleted.
func (s *UserService) DeleteUser(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", reject("user", domain.ErrUserIDRequired)
	}

	note, err := s.notes.FindOneByUser(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	if note != nil {
		return "", reject("user", domain.ErrUserHasNotes)
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}
	if user == nil {
		return "", reject("user", domain.ErrUserNotFound)
	}

	if err := s.users.Delete(ctx, user); err != nil {
		return "", fmt.Errorf("delete user: %w", err)
	}

	s.remember(ctx, user.ID, domain.UnknownUsername)
	metrics.WritesTotal.WithLabelValues("user", "delete").Inc()
	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user deleted")
	return fmt.Sprintf("Username %s with ID %s deleted", user.Username, user.ID), nil
}

// remember overwrites the cached owner name after a committed write, so a
// listing still holding the previous record cannot reinstate it.
func (s *UserService) remember(ctx context.Context, id, username string) {
	if err := s.cache.Set(ctx, id, username); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("failed to refresh username cache")
	}
}
