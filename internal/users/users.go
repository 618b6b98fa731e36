package users

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repository lookups that match no user.
var ErrNotFound = errors.New("user not found")

// User represents a registered account that can own files.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the interface for user persistence.
type Repository interface {
	// Create inserts a user and returns it with its assigned id.
	Create(ctx context.Context, username, password string) (*User, error)

	// FindByUsername returns every user with the given username, in store
	// order. Usernames are not unique, so more than one match is possible.
	FindByUsername(ctx context.Context, username string) ([]*User, error)

	// FindUsernameByID returns only the username for the given id.
	// The password is never exposed through this path.
	FindUsernameByID(ctx context.Context, id int64) (string, error)
}
