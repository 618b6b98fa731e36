// Package files implements storage of user-owned binary files: upload,
// description updates, deletion, and per-author listing.
package files

import (
	"context"
	"fmt"

	"github.com/pavel-fokin/nas-files/internal/apperror"
	"github.com/pavel-fokin/nas-files/internal/codec"
)

// Service provides application-level file operations.
//
// With strictOwnership enabled, updates and deletes only touch files owned
// by the requesting author and report not-found when nothing matches.
// Without it, they run unscoped and matching zero rows still succeeds,
// which is the historical behavior.
type Service struct {
	repo            Repository
	strictOwnership bool
}

// NewService creates a new file service.
func NewService(repo Repository, strictOwnership bool) *Service {
	return &Service{
		repo:            repo,
		strictOwnership: strictOwnership,
	}
}

// UploadRequest represents a file upload request.
type UploadRequest struct {
	AuthorID    int64
	FileName    string
	FileType    string
	FileData    []byte
	Description string
}

// Entry is one element of a listing response. FileData carries the file
// content in its encoded text form, never as raw bytes.
type Entry struct {
	ID          int64  `json:"id"`
	FileName    string `json:"file_name"`
	Description string `json:"description"`
	FileData    string `json:"file_data"`
	FileType    string `json:"file_type"`
}

// Upload stores a file and returns its record. The insert is unconditional:
// the author id is recorded as given and is not checked against existing
// users.
func (s *Service) Upload(ctx context.Context, req *UploadRequest) (*File, error) {
	file := &File{
		AuthorID:    req.AuthorID,
		FileName:    req.FileName,
		FileType:    req.FileType,
		FileData:    req.FileData,
		Description: req.Description,
	}

	created, err := s.repo.Create(ctx, file)
	if err != nil {
		return nil, apperror.NewStorage("failed to save file", err)
	}

	return created, nil
}

// UpdateDescription sets a new description on the file with the given id.
func (s *Service) UpdateDescription(ctx context.Context, authorID, fileID int64, description string) error {
	var (
		affected int64
		err      error
	)
	if s.strictOwnership {
		affected, err = s.repo.UpdateDescriptionByAuthor(ctx, fileID, authorID, description)
	} else {
		affected, err = s.repo.UpdateDescription(ctx, fileID, description)
	}
	if err != nil {
		return apperror.NewStorage("failed to update file", err)
	}
	if s.strictOwnership && affected == 0 {
		return apperror.NewNotFound(fmt.Sprintf("no file %d owned by user %d", fileID, authorID))
	}
	return nil
}

// Delete removes the file with the given id.
func (s *Service) Delete(ctx context.Context, authorID, fileID int64) error {
	var (
		affected int64
		err      error
	)
	if s.strictOwnership {
		affected, err = s.repo.DeleteByAuthor(ctx, fileID, authorID)
	} else {
		affected, err = s.repo.Delete(ctx, fileID)
	}
	if err != nil {
		return apperror.NewStorage("failed to delete file", err)
	}
	if s.strictOwnership && affected == 0 {
		return apperror.NewNotFound(fmt.Sprintf("no file %d owned by user %d", fileID, authorID))
	}
	return nil
}

// ListByAuthor returns every file owned by the given author, with file
// content in encoded text form. An author with no files yields an empty
// list, not an error.
func (s *Service) ListByAuthor(ctx context.Context, authorID int64) ([]Entry, error) {
	stored, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperror.NewStorage("failed to list files", err)
	}

	entries := make([]Entry, 0, len(stored))
	for _, file := range stored {
		entries = append(entries, Entry{
			ID:          file.ID,
			FileName:    file.FileName,
			Description: file.Description,
			FileData:    codec.Encode(file.FileData),
			FileType:    file.FileType,
		})
	}

	return entries, nil
}
