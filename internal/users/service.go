// Package users implements the identity side of the service: account
// creation, credential checks, and username lookup for file ownership.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/pavel-fokin/nas-files/internal/apperror"
)

// Service provides application-level user operations.
type Service struct {
	repo     Repository
	verifier CredentialVerifier
}

// NewService creates a new user service.
func NewService(repo Repository, verifier CredentialVerifier) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
	}
}

// CreateUser creates a new user and returns it with its assigned id.
// There is no uniqueness or format validation; creation only fails when the
// store does.
func (s *Service) CreateUser(ctx context.Context, username, password string) (*User, error) {
	stored, err := s.verifier.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare credentials: %w", err)
	}

	user, err := s.repo.Create(ctx, username, stored)
	if err != nil {
		return nil, apperror.NewStorage("failed to create user", err)
	}

	return user, nil
}

// FindByCredentials returns the user matching the given username and
// password, or a not-found error when no credentials match. When duplicate
// usernames exist, the first match in store order wins.
func (s *Service) FindByCredentials(ctx context.Context, username, password string) (*User, error) {
	candidates, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperror.NewStorage("failed to look up user", err)
	}

	for _, user := range candidates {
		if s.verifier.Verify(password, user.Password) {
			return user, nil
		}
	}

	return nil, apperror.NewNotFound("no matching user found")
}

// GetUsername returns the username for the given user id.
func (s *Service) GetUsername(ctx context.Context, id int64) (string, error) {
	username, err := s.repo.FindUsernameByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", apperror.NewNotFound("no matching user found")
		}
		return "", apperror.NewStorage("failed to look up user", err)
	}
	return username, nil
}
