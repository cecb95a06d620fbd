// Package services реализует загрузку аватаров пользователей.
//
// Файл изображения уходит в настроенное хранилище (локальный диск или S3),
// а его расположение записывается в профиль пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ErrNotAnImage файл не является изображением.
var ErrNotAnImage = errors.New("not an image")

// ImageStore описывает контракт хранилища файлов изображений.
type ImageStore interface {
	// Save записывает содержимое и возвращает расположение файла:
	// путь на диске или URI объекта.
	Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// UserRepository описывает запись расположения аватара в профиль.
type UserRepository interface {
	UpdateProfileImage(ctx context.Context, uid, location string) error
}

// ListCache сбрасывает кэшированный список пользователей после записей,
// меняющих видимые поля профиля.
type ListCache interface {
	InvalidateUsersCache()
}

// UploadsService сохраняет аватар и привязывает его к пользователю.
type UploadsService struct {
	store     ImageStore
	users     UserRepository
	listCache ListCache
	log       *slog.Logger
	now       func() time.Time
}

// NewUploadsService создает новый экземпляр UploadsService.
// listCache может быть nil, если кэш не настроен.
func NewUploadsService(store ImageStore, users UserRepository, listCache ListCache, log *slog.Logger) *UploadsService {
	return &UploadsService{
		store:     store,
		users:     users,
		listCache: listCache,
		log:       log,
		now:       time.Now,
	}
}

// SaveProfileImage проверяет тип файла, сохраняет его под уникальным именем
// и записывает расположение в профиль пользователя.
func (s *UploadsService) SaveProfileImage(ctx context.Context, userUID, contentType string, r io.Reader) (string, error) {
	const op = "uploads.SaveProfileImage"

	ext, ok := imageExtension(contentType)
	if !ok {
		return "", ErrNotAnImage
	}

	filename := fmt.Sprintf("img-%d.%s", s.now().UnixNano(), ext)
	location, err := s.store.Save(ctx, filename, contentType, r)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.users.UpdateProfileImage(ctx, userUID, location); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if s.listCache != nil {
		s.listCache.InvalidateUsersCache()
	}
	return location, nil
}

func imageExtension(contentType string) (string, bool) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", false
	}
	ext := strings.TrimPrefix(contentType, "image/")
	if ext == "" {
		return "", false
	}
	return ext, true
}
