// Package reset реализует HTTP-обработчик смены пароля по секрету сброса.
//
// Секрет приходит в пути запроса, новый пароль с подтверждением в теле.
// После успешной смены пользователь получает свежий сессионный токен.
package reset

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	authservice "github.com/magabrotheeeer/account-service/internal/services/auth"
)

// Request — входные данные для смены пароля.
type Request struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// Service описывает интерфейс бизнес-логики смены пароля по секрету.
type Service interface {
	ResetPassword(ctx context.Context, secret, newPassword string) (string, *models.User, error)
}

// Handler управляет HTTP-запросами на смену пароля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля по секрету сброса
// @Description Проверяет секрет из пути, меняет пароль и возвращает новый токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param token path string true "Секрет сброса из письма"
// @Param request body Request true "Новый пароль"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Секрет недействителен, просрочен или не прошла валидация"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при смене пароля"
// @Router /auth/reset-password/{token} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	secret := chi.URLParam(r, "token")
	if secret == "" {
		log.Error("reset token missing from url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("The token is invalid or expired. Please submit another request"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	token, user, err := h.service.ResetPassword(r.Context(), secret, req.Password)
	if err != nil {
		if errors.Is(err, authservice.ErrResetTokenInvalid) {
			log.Error("reset token invalid or expired")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("The token is invalid or expired. Please submit another request"))
			return
		}
		log.Error("password reset failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to reset password"))
		return
	}

	log.Info("password reset", slog.String("uid", user.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"user":  user,
	}))
}
