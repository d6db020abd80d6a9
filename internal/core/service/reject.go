package service

import (
	"context"
	"errors"

	"github.com/technotes/notes-api/internal/pkg/metrics"
	"github.com/technotes/notes-api/internal/core/domain"
)

// reject records a business-rule rejection and returns err unchanged.
// Faults that are not business errors pass through without being counted.
func reject(entity string, err error) error {
	var reason string
	switch {
	case errors.Is(err, domain.ErrValidation):
		reason = "validation"
	case errors.Is(err, domain.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, domain.ErrUserHasNotes):
		reason = "has_notes"
	case errors.Is(err, domain.ErrConflict):
		reason = "duplicate"
	default:
		return err
	}
	metrics.RejectionsTotal.WithLabelValues(entity, reason).Inc()
	return err
}

// NopUsernameCache is used when no cache backend is configured.
type NopUsernameCache struct{}

func (NopUsernameCache) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (NopUsernameCache) Set(context.Context, string, string) error         { return nil }
func (NopUsernameCache) SetIfAbsent(context.Context, string, string) error { return nil }
