package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pavel-fokin/nas-files/internal/files"
)

// FileRepository implements files.Repository using SQLite.
type FileRepository struct {
	db *sql.DB
}

// NewFileRepository creates a new SQLite file repository.
func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create inserts a file record and returns it with its assigned id.
// The author id is stored as given; it is not validated against the users
// table.
func (r *FileRepository) Create(ctx context.Context, file *files.File) (*files.File, error) {
	now := time.Now().UTC()

	query := `
	INSERT INTO files (author_id, file_name, file_type, file_data, description, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		file.AuthorID,
		file.FileName,
		file.FileType,
		file.FileData,
		file.Description,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted file id: %w", err)
	}

	created := *file
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now

	return &created, nil
}

// UpdateDescription sets the description of the file with the given id.
// Matching zero rows is reported as success with zero rows affected.
func (r *FileRepository) UpdateDescription(ctx context.Context, fileID int64, description string) (int64, error) {
	query := `UPDATE files SET description = ?, updated_at = ? WHERE id = ?`
	return r.exec(ctx, query, description, time.Now().UTC(), fileID)
}

// UpdateDescriptionByAuthor is UpdateDescription scoped to files owned by
// authorID.
func (r *FileRepository) UpdateDescriptionByAuthor(ctx context.Context, fileID, authorID int64, description string) (int64, error) {
	query := `UPDATE files SET description = ?, updated_at = ? WHERE id = ? AND author_id = ?`
	return r.exec(ctx, query, description, time.Now().UTC(), fileID, authorID)
}

// Delete removes the file with the given id. Matching zero rows is reported
// as success with zero rows affected.
func (r *FileRepository) Delete(ctx context.Context, fileID int64) (int64, error) {
	query := `DELETE FROM files WHERE id = ?`
	return r.exec(ctx, query, fileID)
}

// DeleteByAuthor is Delete scoped to files owned by authorID.
func (r *FileRepository) DeleteByAuthor(ctx context.Context, fileID, authorID int64) (int64, error) {
	query := `DELETE FROM files WHERE id = ? AND author_id = ?`
	return r.exec(ctx, query, fileID, authorID)
}

// ListByAuthor returns every file owned by authorID, in store order.
func (r *FileRepository) ListByAuthor(ctx context.Context, authorID int64) ([]*files.File, error) {
	query := `
	SELECT id, author_id, file_name, file_type, file_data, description, created_at, updated_at
	FROM files
	WHERE author_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var fileList []*files.File
	for rows.Next() {
		var file files.File
		var description sql.NullString
		err := rows.Scan(
			&file.ID,
			&file.AuthorID,
			&file.FileName,
			&file.FileType,
			&file.FileData,
			&description,
			&file.CreatedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		if description.Valid {
			file.Description = description.String
		}
		fileList = append(fileList, &file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file rows: %w", err)
	}

	return fileList, nil
}

func (r *FileRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}
