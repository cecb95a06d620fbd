package middlewarectx_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/account-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/models"
	authservice "github.com/magabrotheeeer/account-service/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	resolvedUser := &models.User{UID: "uid-1", Email: "a@b.com", Role: models.RoleUser}

	tests := []struct {
		name           string
		authHeader     string
		mockUser       *models.User
		mockErr        error
		wantStatusCode int
		wantMessage    string
		wantNextCalled bool
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer good-token",
			mockUser:       resolvedUser,
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "You are not logged in - Please log in to get access",
		},
		{
			name:           "malformed header",
			authHeader:     "Token abc",
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "You are not logged in - Please log in to get access",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer bad-token",
			mockErr:        jwt.ErrInvalid,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Invalid token. Please log in",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer old-token",
			mockErr:        jwt.ErrExpired,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Your session token has expired. Please login again",
		},
		{
			name:           "user no longer exists",
			authHeader:     "Bearer orphan-token",
			mockErr:        authservice.ErrUserGone,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "The user belonging to this token does no longer exist",
		},
		{
			name:           "password changed after issuance",
			authHeader:     "Bearer stale-token",
			mockErr:        authservice.ErrPasswordChanged,
			wantStatusCode: http.StatusUnauthorized,
			wantMessage:    "Your password has been changed recently. Please login again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.mockUser != nil || tt.mockErr != nil {
				authMock.On("ResolveToken", mock.Anything, mock.Anything).
					Return(tt.mockUser, tt.mockErr).Once()
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				user, ok := middlewarectx.UserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "uid-1", user.UID)
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.JWTMiddleware(authMock, newNoopLogger())(next)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)

			if tt.wantMessage != "" {
				var got map[string]any
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantMessage, got["message"])
			}
			authMock.AssertExpectations(t)
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name           string
		ctxUser        *models.User
		roles          []string
		wantStatusCode int
		wantNextCalled bool
	}{
		{
			name:           "admin passes admin gate",
			ctxUser:        &models.User{UID: "uid-1", Role: models.RoleAdmin},
			roles:          []string{models.RoleAdmin},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "user rejected from admin gate",
			ctxUser:        &models.User{UID: "uid-2", Role: models.RoleUser},
			roles:          []string{models.RoleAdmin},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "user passes multi-role gate",
			ctxUser:        &models.User{UID: "uid-3", Role: models.RoleUser},
			roles:          []string{models.RoleAdmin, models.RoleUser},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "missing context user is an internal error",
			ctxUser:        nil,
			roles:          []string{models.RoleAdmin},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := middlewarectx.RequireRoles(newNoopLogger(), tt.roles...)(next)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.ctxUser != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.ctxUser))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
		})
	}
}
