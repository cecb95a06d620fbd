package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/account-service/internal/models"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestUserService_ListUsers_SanitizesAndCaches(t *testing.T) {
	repo := new(UserRepoMock)
	cache := new(CacheMock)
	svc := NewUserService(repo, cache, newNoopLogger())

	stored := []*models.User{
		{
			UID:               "uid-1",
			Email:             "a@b.com",
			PasswordHash:      "$2a$12$hash",
			Role:              models.RoleUser,
			PasswordChangedAt: time.Now(),
		},
	}

	cache.On("Get", usersCacheKey, mock.Anything).Return(false, nil).Once()
	repo.On("ListUsers", mock.Anything).Return(stored, nil).Once()
	cache.On("Set", usersCacheKey, mock.MatchedBy(func(users []*models.User) bool {
		return len(users) == 1 && users[0].PasswordHash == ""
	}), usersCacheTTL).Return(nil).Once()

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
	assert.True(t, users[0].PasswordChangedAt.IsZero())

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestUserService_ListUsers_CacheErrorFallsBack(t *testing.T) {
	repo := new(UserRepoMock)
	cache := new(CacheMock)
	svc := NewUserService(repo, cache, newNoopLogger())

	cache.On("Get", usersCacheKey, mock.Anything).Return(false, errors.New("redis down")).Once()
	repo.On("ListUsers", mock.Anything).Return([]*models.User{}, nil).Once()
	cache.On("Set", usersCacheKey, mock.Anything, usersCacheTTL).Return(errors.New("redis down")).Once()

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	repo.AssertExpectations(t)
}

func TestUserService_ListUsers_StorageError(t *testing.T) {
	repo := new(UserRepoMock)
	svc := NewUserService(repo, nil, newNoopLogger())

	repo.On("ListUsers", mock.Anything).Return(nil, errors.New("db down")).Once()

	users, err := svc.ListUsers(context.Background())
	assert.Error(t, err)
	assert.Nil(t, users)
}

func TestUserService_InvalidateUsersCache(t *testing.T) {
	cache := new(CacheMock)
	svc := NewUserService(new(UserRepoMock), cache, newNoopLogger())

	cache.On("Invalidate", usersCacheKey).Return(nil).Once()
	svc.InvalidateUsersCache()
	cache.AssertExpectations(t)
}
