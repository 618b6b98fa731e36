// Package sqlite implements the user and file repositories on SQLite.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at dbPath and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the necessary tables and indexes.
//
// files.author_id references users.id by convention only. There is no
// foreign key constraint, no existence check on insert, and no cascade on
// user deletion.
func initSchema(db *sql.DB) error {
	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(createUsersQuery); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	createFilesQuery := `
	CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id INTEGER NOT NULL,
		file_name TEXT NOT NULL,
		file_type TEXT NOT NULL,
		file_data BLOB NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(createFilesQuery); err != nil {
		return fmt.Errorf("failed to create files table: %w", err)
	}

	createIndexesQuery := `
	CREATE INDEX IF NOT EXISTS idx_files_author_id ON files(author_id);
	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
	`
	if _, err := db.Exec(createIndexesQuery); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
