package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
// Lookups that match nothing return (nil, nil); only faults produce errors.
type NoteRepository interface {
	FindAll(ctx context.Context) ([]*domain.Note, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	FindByTitle(ctx context.Context, title string) (*domain.Note, error)
	// FindOneByUser returns any note owned by userID.
	FindOneByUser(ctx context.Context, userID string) (*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Save(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, note *domain.Note) error
}
