package domain

import "time"

// UnknownUsername is shown for notes whose owner no longer exists.
const UnknownUsername = "Unknown User"

// Note is a piece of work assigned to a user.
type Note struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteWithOwner is a note annotated with its owner's username.
type NoteWithOwner struct {
	Note
	Username string `json:"username"`
}
