package ports

import (
	"context"

	"github.com/technotes/notes-api/internal/core/domain"
)

// CreateNoteInput carries the fields for POST /notes.
type CreateNoteInput struct {
	User  string `validate:"required"`
	Title string `validate:"required"`
	Text  string `validate:"required"`
}

// UpdateNoteInput carries the fields for PATCH /notes. All fields are replaced.
type UpdateNoteInput struct {
	ID        string `validate:"required"`
	User      string `validate:"required"`
	Title     string `validate:"required"`
	Text      string `validate:"required"`
	Completed *bool  `validate:"required"`
}

// NoteService defines the note workflow.
type NoteService interface {
	ListNotes(ctx context.Context) ([]domain.NoteWithOwner, error)
	CreateNote(ctx context.Context, input CreateNoteInput) (string, error)
	UpdateNote(ctx context.Context, input UpdateNoteInput) (string, error)
	DeleteNote(ctx context.Context, id string) (string, error)
}
