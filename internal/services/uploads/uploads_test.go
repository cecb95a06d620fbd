package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ImageStoreMock struct {
	mock.Mock
}

func (m *ImageStoreMock) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, r)
	return args.String(0), args.Error(1)
}

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) UpdateProfileImage(ctx context.Context, uid, location string) error {
	args := m.Called(ctx, uid, location)
	return args.Error(0)
}

type ListCacheMock struct {
	mock.Mock
}

func (m *ListCacheMock) InvalidateUsersCache() {
	m.Called()
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestUploadsService_SaveProfileImage(t *testing.T) {
	store := new(ImageStoreMock)
	repo := new(UserRepoMock)
	svc := NewUploadsService(store, repo, nil, newNoopLogger())
	svc.now = func() time.Time { return time.Unix(0, 12345) }

	store.On("Save", mock.Anything, "img-12345.png", "image/png", mock.Anything).
		Return("/uploads/images/img-12345.png", nil).Once()
	repo.On("UpdateProfileImage", mock.Anything, "uid-1", "/uploads/images/img-12345.png").
		Return(nil).Once()

	location, err := svc.SaveProfileImage(context.Background(), "uid-1", "image/png",
		strings.NewReader("fake png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/images/img-12345.png", location)

	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestUploadsService_SaveProfileImage_RejectsNonImages(t *testing.T) {
	svc := NewUploadsService(new(ImageStoreMock), new(UserRepoMock), nil, newNoopLogger())

	tests := []struct {
		name        string
		contentType string
	}{
		{name: "pdf", contentType: "application/pdf"},
		{name: "text", contentType: "text/plain"},
		{name: "empty subtype", contentType: "image/"},
		{name: "empty", contentType: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveProfileImage(context.Background(), "uid-1", tt.contentType,
				strings.NewReader("data"))
			assert.ErrorIs(t, err, ErrNotAnImage)
		})
	}
}

func TestUploadsService_SaveProfileImage_InvalidatesUsersCache(t *testing.T) {
	store := new(ImageStoreMock)
	repo := new(UserRepoMock)
	listCache := new(ListCacheMock)
	svc := NewUploadsService(store, repo, listCache, newNoopLogger())
	svc.now = func() time.Time { return time.Unix(0, 777) }

	store.On("Save", mock.Anything, "img-777.jpeg", "image/jpeg", mock.Anything).
		Return("/uploads/images/img-777.jpeg", nil).Once()
	repo.On("UpdateProfileImage", mock.Anything, "uid-1", "/uploads/images/img-777.jpeg").
		Return(nil).Once()
	listCache.On("InvalidateUsersCache").Return().Once()

	_, err := svc.SaveProfileImage(context.Background(), "uid-1", "image/jpeg",
		strings.NewReader("jpeg bytes"))
	require.NoError(t, err)

	listCache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "images"))
	require.NoError(t, err)

	location, err := store.Save(context.Background(), "img-1.png", "image/png",
		strings.NewReader("png bytes"))
	require.NoError(t, err)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(data))
}
