package ports

import "context"

// UsernameCache remembers user ID → username resolutions for note listings.
//
// Set is for writers that just committed the user record and must win.
// SetIfAbsent is for readers, so a listing that read an older record never
// overwrites a newer name.
type UsernameCache interface {
	Get(ctx context.Context, userID string) (username string, ok bool, err error)
	Set(ctx context.Context, userID, username string) error
	SetIfAbsent(ctx context.Context, userID, username string) error
}
