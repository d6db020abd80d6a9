package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/technotes/notes-api/internal/pkg/metrics"
	"github.com/technotes/notes-api/internal/core/domain"
	"github.com/technotes/notes-api/internal/core/ports"
	"github.com/technotes/notes-api/internal/pkg/validation"
)

// ownerLookupLimit bounds concurrent owner lookups while listing notes.
const ownerLookupLimit = 8

type NoteService struct {
	notes  ports.NoteRepository
	users  ports.UserRepository
	cache  ports.UsernameCache
	logger zerolog.Logger
}

func NewNoteService(
	notes ports.NoteRepository,
	users ports.UserRepository,
	cache ports.UsernameCache,
	logger zerolog.Logger,
) *NoteService {
	if cache == nil {
		cache = NopUsernameCache{}
	}
	return &NoteService{notes: notes, users: users, cache: cache, logger: logger}
}

// ListNotes returns every note annotated with its owner's username, in
// stored order. Notes whose owner is gone get domain.UnknownUsername.
func (s *NoteService) ListNotes(ctx context.Context) ([]domain.NoteWithOwner, error) {
	notes, err := s.notes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, domain.ErrNoNotesFound
	}

	out := make([]domain.NoteWithOwner, len(notes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerLookupLimit)
	for i, n := range notes {
		g.Go(func() error {
			username, err := s.ownerName(gctx, n.User)
			if err != nil {
				return err
			}
			out[i] = domain.NoteWithOwner{Note: *n, Username: username}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list notes: resolve owner: %w", err)
	}
	return out, nil
}

// ownerName resolves a username through the cache, falling back to the
// repository. Cache failures are logged and never fail the listing.
func (s *NoteService) ownerName(ctx context.Context, userID string) (string, error) {
	name, ok, err := s.cache.Get(ctx, userID)
	switch {
	case err != nil:
		metrics.UsernameCacheTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("username cache read failed")
	case ok:
		metrics.UsernameCacheTotal.WithLabelValues("hit").Inc()
		return name, nil
	default:
		metrics.UsernameCacheTotal.WithLabelValues("miss").Inc()
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return domain.UnknownUsername, nil
	}

	if err := s.cache.SetIfAbsent(ctx, userID, user.Username); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("username cache write failed")
	}
	return user.Username, nil
}

func (s *NoteService) CreateNote(ctx context.Context, in ports.CreateNoteInput) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", reject("note", err)
	}
	if err := s.ensureOwner(ctx, in.User); err != nil {
		return "", err
	}

	dup, err := s.notes.FindByTitle(ctx, in.Title)
	if err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	if dup != nil {
		return "", reject("note", domain.ErrDuplicateNoteTitle)
	}

	now := time.Now().UTC()
	created, err := s.notes.Create(ctx, &domain.Note{
		User:      in.User,
		Title:     in.Title,
		Text:      in.Text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return "", reject("note", err)
	}
	if created == nil {
		return "", domain.ErrInvalidNoteData
	}

	metrics.WritesTotal.WithLabelValues("note", "create").Inc()
	s.logger.Info().Str("note_id", created.ID).Str("title", created.Title).Msg("note created")
	return fmt.Sprintf("New note %s created", created.Title), nil
}

// UpdateNote replaces user, title, text and completed wholesale.
func (s *NoteService) UpdateNote(ctx context.Context, in ports.UpdateNoteInput) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", reject("note", err)
	}

	note, err := s.notes.FindByID(ctx, in.ID)
	if err != nil {
		return "", fmt.Errorf("update note: %w", err)
	}
	if note == nil {
		return "", reject("note", domain.ErrNoteNotFound)
	}
	if err := s.ensureOwner(ctx, in.User); err != nil {
		return "", err
	}

	dup, err := s.notes.FindByTitle(ctx, in.Title)
	if err != nil {
		return "", fmt.Errorf("update note: %w", err)
	}
	if dup != nil && dup.ID != in.ID {
		return "", reject("note", domain.ErrDuplicateNoteTitle)
	}

	note.User = in.User
	note.Title = in.Title
	note.Text = in.Text
	note.Completed = *in.Completed
	note.UpdatedAt = time.Now().UTC()

	updated, err := s.notes.Save(ctx, note)
	if err != nil {
		return "", reject("note", err)
	}

	metrics.WritesTotal.WithLabelValues("note", "update").Inc()
	s.logger.Info().Str("note_id", updated.ID).Bool("completed", updated.Completed).Msg("note updated")
	return fmt.Sprintf("'%s' updated", updated.Title), nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", reject("note", domain.ErrNoteIDRequired)
	}

	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete note: %w", err)
	}
	if note == nil {
		return "", reject("note", domain.ErrNoteNotFound)
	}

	if err := s.notes.Delete(ctx, note); err != nil {
		return "", fmt.Errorf("delete note: %w", err)
	}

	metrics.WritesTotal.WithLabelValues("note", "delete").Inc()
	s.logger.Info().Str("note_id", note.ID).Str("title", note.Title).Msg("note deleted")
	return fmt.Sprintf("Note '%s' with ID %s deleted", note.Title, note.ID), nil
}

// ensureOwner rejects notes that would reference a user that does not exist.
func (s *NoteService) ensureOwner(ctx context.Context, userID string) error {
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup note owner: %w", err)
	}
	if owner == nil {
		return reject("note", domain.ErrUserNotFound)
	}
	return nil
}
