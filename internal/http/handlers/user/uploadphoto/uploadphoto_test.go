package uploadphoto

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/models"
	services "github.com/magabrotheeeer/account-service/internal/services/uploads"
)

// MockService реализует интерфейс uploadphoto.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SaveProfileImage(ctx context.Context, userUID, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, userUID, contentType, r)
	return args.String(0), args.Error(1)
}

// multipartBody собирает multipart-форму с одним файлом в поле photo.
func multipartBody(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="photo"; filename="avatar.png"`)
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(payload)
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestUploadPhotoHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	ctxUser := &models.User{UID: "uid-1", Email: "a@b.com", Role: models.RoleUser}

	tests := []struct {
		name           string
		fileType       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная загрузка",
			fileType: "image/png",
			setupMock: func(m *MockService) {
				m.On("SaveProfileImage", mock.Anything, "uid-1", "image/png", mock.Anything).
					Return("./uploads/images/img-123.png", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `Image uploaded successfully`,
		},
		{
			name:     "файл не является изображением",
			fileType: "application/pdf",
			setupMock: func(m *MockService) {
				m.On("SaveProfileImage", mock.Anything, "uid-1", "application/pdf", mock.Anything).
					Return("", services.ErrNotAnImage)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `Not an image. Please upload only images`,
		},
		{
			name:     "ошибка хранилища файлов",
			fileType: "image/png",
			setupMock: func(m *MockService) {
				m.On("SaveProfileImage", mock.Anything, "uid-1", "image/png", mock.Anything).
					Return("", errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `failed to upload image`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			body, formContentType := multipartBody(t, tt.fileType, []byte("file-bytes"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/users/me/photo", body)
			req.Header.Set("Content-Type", formContentType)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, ctxUser))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}

func TestUploadPhotoHandler_NoFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	ctxUser := &models.User{UID: "uid-1", Role: models.RoleUser}

	mockService := new(MockService)
	handler := New(logger, mockService)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	assert.NoError(t, mw.WriteField("comment", "no photo here"))
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/me/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, ctxUser))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "There is no uploaded image")
	mockService.AssertExpectations(t)
}
