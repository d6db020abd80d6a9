package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// CreateUserInput carries the fields for POST /users.
type CreateUserInput struct {
	Username string   `validate:"required"`
	Password string   `validate:"required"`
	Roles    []string `validate:"required,min=1,dive,required"`
}

// UpdateUserInput carries the fields for PATCH /users.
// Active is a pointer so that an absent value is distinguishable from false.
type UpdateUserInput struct {
	ID       string   `validate:"required"`
	Username string   `validate:"required"`
	Roles    []string `validate:"required,min=1,dive,required"`
	Active   *bool    `validate:"required"`
	Password string
}

// UserService defines the user workflow.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (string, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (string, error)
	DeleteUser(ctx context.Context, id string) (string, error)
}
