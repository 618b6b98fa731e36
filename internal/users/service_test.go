package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavel-fokin/nas-files/internal/apperror"
)

// fakeRepo is an in-memory users.Repository for isolated service tests.
type fakeRepo struct {
	users  []*User
	nextID int64
	err    error
}

func (f *fakeRepo) Create(_ context.Context, username, password string) (*User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	user := &User{
		ID:        f.nextID,
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) ([]*User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matches []*User
	for _, user := range f.users {
		if user.Username == username {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

func (f *fakeRepo) FindUsernameByID(_ context.Context, id int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for _, user := range f.users {
		if user.ID == id {
			return user.Username, nil
		}
	}
	return "", ErrNotFound
}

func TestCreateUser(t *testing.T) {
	svc := NewService(&fakeRepo{}, PlainVerifier{})

	user, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice", user.Username)

	found, err := svc.FindByCredentials(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestCreateUserAllowsDuplicateUsernames(t *testing.T) {
	svc := NewService(&fakeRepo{}, PlainVerifier{})

	first, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	second, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// The first match in store order wins.
	found, err := svc.FindByCredentials(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestFindByCredentialsNoMatch(t *testing.T) {
	svc := NewService(&fakeRepo{}, PlainVerifier{})

	_, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.FindByCredentials(context.Background(), "alice", "wrong")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))

	_, err = svc.FindByCredentials(context.Background(), "bob", "pw1")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestFindByCredentialsBcrypt(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, BcryptVerifier{})

	user, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	// The stored credential is a hash, not the plaintext.
	assert.NotEqual(t, "pw1", repo.users[0].Password)

	found, err := svc.FindByCredentials(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.FindByCredentials(context.Background(), "alice", "wrong")
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestGetUsername(t *testing.T) {
	svc := NewService(&fakeRepo{}, PlainVerifier{})

	user, err := svc.CreateUser(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	username, err := svc.GetUsername(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = svc.GetUsername(context.Background(), 999)
	assert.True(t, apperror.IsKind(err, apperror.NotFound))
}

func TestStorageFailurePropagates(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("disk full")}, PlainVerifier{})

	_, err := svc.CreateUser(context.Background(), "alice", "pw1")
	assert.True(t, apperror.IsKind(err, apperror.Storage))

	_, err = svc.FindByCredentials(context.Background(), "alice", "pw1")
	assert.True(t, apperror.IsKind(err, apperror.Storage))

	_, err = svc.GetUsername(context.Background(), 1)
	assert.True(t, apperror.IsKind(err, apperror.Storage))
}
