package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pavel-fokin/nas-files/internal/users"
)

// UserRepository implements users.Repository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and returns it with its assigned id.
func (r *UserRepository) Create(ctx context.Context, username, password string) (*users.User, error) {
	now := time.Now().UTC()

	query := `
	INSERT INTO users (username, password, created_at, updated_at)
	VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, username, password, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted user id: %w", err)
	}

	return &users.User{
		ID:        id,
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// FindByUsername returns every user with the given username, in store order.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) ([]*users.User, error) {
	query := `
	SELECT id, username, password, created_at, updated_at
	FROM users
	WHERE username = ?
	`

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var userList []*users.User
	for rows.Next() {
		var user users.User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Password,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		userList = append(userList, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return userList, nil
}

// FindUsernameByID returns only the username for the given id.
func (r *UserRepository) FindUsernameByID(ctx context.Context, id int64) (string, error) {
	query := `SELECT username FROM users WHERE id = ?`

	var username string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&username)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", users.ErrNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	return username, nil
}
