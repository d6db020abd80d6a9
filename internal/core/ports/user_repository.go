package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Lookups that match nothing return (nil, nil); only faults produce errors.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts the user and returns the stored record with its assigned ID.
	// A unique-index violation on username is reported as domain.ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Save updates an existing user in place.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, user *domain.User) error
}
