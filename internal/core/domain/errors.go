package domain

import "errors"

// Error kinds. The HTTP boundary maps each kind to a status code; the
// concrete *Error carries the message shown to the client.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrPersistence  = errors.New("persistence failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrCORSRejected = errors.New("origin not allowed")
)

// Error is a client-visible business error of a given kind.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind so callers can use errors.Is(err, ErrConflict).
func (e *Error) Unwrap() error { return e.kind }

// ValidationError builds an ErrValidation with a field-describing message.
func ValidationError(msg string) error {
	return newError(ErrValidation, msg)
}

// User workflow errors.
var (
	ErrNoUsersFound       = newError(ErrNotFound, "No users found")
	ErrUserNotFound       = newError(ErrNotFound, "User not found")
	ErrUserIDRequired     = newError(ErrValidation, "User ID required")
	ErrDuplicateUsername  = newError(ErrConflict, "Duplicate username")
	ErrUserHasNotes       = newError(ErrConflict, "User has assigned notes")
	ErrInvalidUserData    = newError(ErrPersistence, "Invalid user data received")
	ErrInvalidCredentials = newError(ErrUnauthorized, "Invalid credentials")
)

// Note workflow errors.
var (
	ErrNoNotesFound       = newError(ErrNotFound, "No notes found")
	ErrNoteNotFound       = newError(ErrNotFound, "Note not found")
	ErrNoteIDRequired     = newError(ErrValidation, "Note ID required")
	ErrDuplicateNoteTitle = newError(ErrConflict, "Duplicate note title")
	ErrInvalidNoteData    = newError(ErrPersistence, "Invalid note data received")
)

// Access errors.
var (
	ErrOriginNotAllowed = newError(ErrCORSRejected, "Not allowed by CORS")
	ErrInsufficientRole = newError(ErrForbidden, "Forbidden")
)
