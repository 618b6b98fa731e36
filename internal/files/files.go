package files

import (
	"context"
	"time"
)

// File represents a stored binary file and its metadata.
type File struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	FileData    []byte    `json:"-"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repository defines the interface for file persistence.
//
// UpdateDescription and Delete return the number of rows affected. Matching
// zero rows is not an error: the store reports success and callers must not
// infer existence from it.
type Repository interface {
	// Create inserts a file record and returns it with its assigned id.
	Create(ctx context.Context, file *File) (*File, error)

	// UpdateDescription sets the description of the file with the given id.
	UpdateDescription(ctx context.Context, fileID int64, description string) (int64, error)

	// UpdateDescriptionByAuthor is UpdateDescription scoped to files owned
	// by authorID.
	UpdateDescriptionByAuthor(ctx context.Context, fileID, authorID int64, description string) (int64, error)

	// Delete removes the file with the given id.
	Delete(ctx context.Context, fileID int64) (int64, error)

	// DeleteByAuthor is Delete scoped to files owned by authorID.
	DeleteByAuthor(ctx context.Context, fileID, authorID int64) (int64, error)

	// ListByAuthor returns every file owned by authorID, in store order.
	ListByAuthor(ctx context.Context, authorID int64) ([]*File, error)
}
