// Package uploadphoto реализует HTTP-обработчик загрузки аватара.
//
// Handler принимает multipart-форму с полем photo, проверяет, что файл
// является изображением, и сохраняет его через бизнес-уровень. Расположение
// файла записывается в профиль пользователя из контекста.
package uploadphoto

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/http/response"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	services "github.com/magabrotheeeer/account-service/internal/services/uploads"
)

// maxUploadSize ограничивает размер multipart-формы с аватаром.
const maxUploadSize = 10 << 20

// Service описывает интерфейс бизнес-логики сохранения аватара.
type Service interface {
	SaveProfileImage(ctx context.Context, userUID, contentType string, r io.Reader) (string, error)
}

// Handler управляет HTTP-запросами на загрузку аватара.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Загрузка аватара
// @Description Сохраняет изображение из поля photo и привязывает его к профилю.
// @Tags Users
// @Accept  mpfd
// @Produce  json
// @Param photo formData file true "Файл изображения"
// @Success 200 {object} response.Response "Аватар загружен"
// @Failure 400 {object} response.ErrorResponse "Файл отсутствует или не является изображением"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении файла"
// @Router /users/me/photo [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.uploadphoto"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok || user == nil {
		log.Error("authenticated user missing from request context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("There is no uploaded image"))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		log.Error("photo field missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("There is no uploaded image"))
		return
	}
	defer func() { _ = file.Close() }()

	location, err := h.service.SaveProfileImage(r.Context(), user.UID, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, services.ErrNotAnImage) {
			log.Error("uploaded file is not an image")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Not an image. Please upload only images"))
			return
		}
		log.Error("failed to save profile image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to upload image"))
		return
	}

	log.Info("profile image uploaded", slog.String("uid", user.UID), slog.String("location", location))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":       "Image uploaded successfully",
		"profile_image": location,
	}))
}
