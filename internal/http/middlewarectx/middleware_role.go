package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/response"
)

// RequireRoles возвращает middleware, пропускающий только пользователей
// с одной из перечисленных ролей.
//
// Ставится строго после JWTMiddleware. Отсутствие пользователя в контексте —
// нарушение порядка регистрации маршрутов, а не ошибка клиента, поэтому
// отвечаем 500, а не 401.
func RequireRoles(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRoles"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				log.Error("authenticated user missing from request context")
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if _, ok := allowed[user.Role]; !ok {
				log.Error("insufficient permission", slog.String("role", user.Role))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("You do not have permission to access this page"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
