// Package middlewarectx содержит HTTP middleware аутентификации и авторизации.
//
// JWTMiddleware извлекает bearer-токен из заголовка Authorization, проверяет
// его и разрешает владельца через бизнес-уровень. Успешно разрешённый
// пользователь кладётся в контекст запроса уже без хэша пароля и полей сброса.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	authservice "github.com/magabrotheeeer/account-service/internal/services/auth"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для аутентифицированного пользователя в контексте.
const User Key = "user"

// Service описывает интерфейс бизнес-уровня для разрешения токена в пользователя.
type Service interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает аутентифицированного пользователя из контекста.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(User).(*models.User)
	return u, ok
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке
// Authorization и кладёт владельца токена в контекст запроса.
//
// Любой провал проверки завершает запрос кодом 401: следующий обработчик
// не выполняется. Какая именно проверка не прошла, видно только по тексту
// сообщения, предусмотренному для клиента.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("You are not logged in - Please log in to get access"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ResolveToken(r.Context(), tokenStr)
			if err != nil {
				status, msg := authFailure(err)
				log.Error("token resolution failed", sl.Err(err))
				render.Status(r, status)
				render.JSON(w, r, response.Error(msg))
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authFailure транслирует ошибку разрешения токена в HTTP статус и сообщение.
func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, jwt.ErrExpired):
		return http.StatusUnauthorized, "Your session token has expired. Please login again"
	case errors.Is(err, jwt.ErrInvalid):
		return http.StatusUnauthorized, "Invalid token. Please log in"
	case errors.Is(err, authservice.ErrUserGone):
		return http.StatusUnauthorized, "The user belonging to this token does no longer exist"
	case errors.Is(err, authservice.ErrPasswordChanged):
		return http.StatusUnauthorized, "Your password has been changed recently. Please login again"
	default:
		return http.StatusInternalServerError, "internal service error"
	}
}
