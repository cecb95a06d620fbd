// Package services содержит логику бизнес-уровня для чтения пользователей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
)

// usersCacheKey ключ кэша списка пользователей.
const usersCacheKey = "users:all"

// usersCacheTTL время жизни кэшированного списка.
const usersCacheTTL = time.Minute

// UserRepository описывает чтение пользователей из хранилища.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Cache описывает кэш для списка пользователей.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// UserService отдаёт пользователей, разгружая хранилище кэшем.
// Наружу уходят только санитизированные записи, поэтому кэш
// не содержит хэшей паролей и полей сброса.
type UserService struct {
	users UserRepository
	cache Cache
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, cache Cache, log *slog.Logger) *UserService {
	return &UserService{
		users: users,
		cache: cache,
		log:   log,
	}
}

// ListUsers возвращает всех пользователей в санитизированном виде.
// Промах кэша и его ошибки деградируют в чтение из хранилища.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "user.ListUsers"

	if s.cache != nil {
		var cached []*models.User
		found, err := s.cache.Get(usersCacheKey, &cached)
		if err != nil {
			s.log.Error("users cache read failed", sl.Err(err))
		}
		if found {
			return cached, nil
		}
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]*models.User, 0, len(users))
	for _, u := range users {
		result = append(result, u.Sanitized())
	}

	if s.cache != nil {
		if err := s.cache.Set(usersCacheKey, result, usersCacheTTL); err != nil {
			s.log.Error("users cache write failed", sl.Err(err))
		}
	}
	return result, nil
}

// InvalidateUsersCache сбрасывает кэш списка. Вызывается после записей,
// меняющих видимый снаружи состав или состав полей пользователей.
func (s *UserService) InvalidateUsersCache() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(usersCacheKey); err != nil {
		s.log.Error("users cache invalidation failed", sl.Err(err))
	}
}
