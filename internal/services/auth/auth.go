// Package services содержит логику бизнес-уровня для регистрации, входа,
// сброса пароля и проверки сессионных токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/account-service/internal/lib/jwt"
	"github.com/magabrotheeeer/account-service/internal/lib/password"
	"github.com/magabrotheeeer/account-service/internal/lib/resettoken"
	"github.com/magabrotheeeer/account-service/internal/lib/sl"
	"github.com/magabrotheeeer/account-service/internal/models"
	"github.com/magabrotheeeer/account-service/internal/storage/repository"
)

// Ошибки бизнес-уровня. Обработчики транслируют их в HTTP статусы,
// не раскрывая клиенту, какая именно проверка не прошла.
var (
	// ErrEmailTaken email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials неверный email или пароль. Для неизвестного email
	// и неверного пароля ошибка одна и та же.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrUserNotFound пользователь с таким email не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserGone пользователь из валидного токена больше не существует.
	ErrUserGone = errors.New("user no longer exists")
	// ErrPasswordChanged пароль менялся после выпуска токена.
	ErrPasswordChanged = errors.New("password changed after token was issued")
	// ErrResetTokenInvalid секрет сброса не найден или просрочен.
	ErrResetTokenInvalid = errors.New("reset token invalid or expired")
	// ErrMailDelivery письмо со секретом сброса отправить не удалось.
	ErrMailDelivery = errors.New("mail delivery failed")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	GetUserByResetTokenHash(ctx context.Context, hash string, now time.Time) (*models.User, error)
	SetResetToken(ctx context.Context, uid, hash string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, uid string) error
	UpdatePassword(ctx context.Context, uid, passwordHash string) error
}

// Mailer описывает контракт внешней отправки почты.
type Mailer interface {
	Send(to, subject, body string) error
}

// EventPublisher публикует события аккаунтов. Публикация не влияет
// на результат запроса: сбой только логируется.
type EventPublisher interface {
	PublishUserRegistered(user *models.User) error
}

// ListCache сбрасывает кэшированный список пользователей после записей,
// меняющих его состав.
type ListCache interface {
	InvalidateUsersCache()
}

// AuthService отвечает за регистрацию, вход, сброс пароля и проверку токенов.
type AuthService struct {
	users      UserRepository
	jwtMaker   jwt.Maker
	mailer     Mailer
	events     EventPublisher
	listCache  ListCache
	appBaseURL string
	log        *slog.Logger
	now        func() time.Time // источник времени, подменяется в тестах
}

// NewAuthService создает новый экземпляр AuthService.
// events и listCache могут быть nil, если брокер или кэш не настроены.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, mailer Mailer,
	events EventPublisher, listCache ListCache, appBaseURL string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtMaker:   jwtMaker,
		mailer:     mailer,
		events:     events,
		listCache:  listCache,
		appBaseURL: appBaseURL,
		log:        log,
		now:        time.Now,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной
// ролью user, затем выпускает сессионный токен.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Register"

	email = NormalizeEmail(email)

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(uid)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.listCache != nil {
		s.listCache.InvalidateUsersCache()
	}

	if s.events != nil {
		if err := s.events.PublishUserRegistered(created.Sanitized()); err != nil {
			s.log.Error("failed to publish user.registered event", sl.Err(err))
		}
	}

	return token, created.Sanitized(), nil
}

// Login проверяет пароль пользователя и выпускает сессионный токен.
// Неизвестный email и неверный пароль дают одинаковую ошибку.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user.Sanitized(), nil
}

// ForgotPassword генерирует секрет сброса, сохраняет его дайджест и срок
// действия, после чего отправляет секрет на почту пользователя.
//
// Порядок жёсткий: сначала запись в хранилище, затем письмо. Если письмо
// не ушло, поля сброса откатываются до ответа клиенту, чтобы в базе не
// остался живой секрет, которого никто не видел.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.ForgotPassword"

	user, err := s.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	tok, err := resettoken.Generate(s.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.SetResetToken(ctx, user.UID, tok.Hash, tok.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	url := fmt.Sprintf("%s/api/v1/auth/reset-password/%s", strings.TrimRight(s.appBaseURL, "/"), tok.Secret)
	subject := "Your Password Reset Token (valid for 10 min)"
	body := fmt.Sprintf("Forgot your Password? Reset it by visiting the following link: %s", url)

	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		s.log.Error("failed to send reset email, rolling back reset token", sl.Err(err))
		if clearErr := s.users.ClearResetToken(ctx, user.UID); clearErr != nil {
			s.log.Error("failed to roll back reset token", sl.Err(clearErr))
		}
		return ErrMailDelivery
	}
	return nil
}

// ResetPassword проверяет предъявленный секрет, записывает новый пароль
// и выпускает свежий сессионный токен.
//
// Поля сброса обнуляются тем же UPDATE, что и смена пароля.
func (s *AuthService) ResetPassword(ctx context.Context, secret, newPassword string) (string, *models.User, error) {
	const op = "auth.ResetPassword"

	user, err := s.users.GetUserByResetTokenHash(ctx, resettoken.HashSecret(secret), s.now())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrResetTokenInvalid
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePassword(ctx, user.UID, hashed); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.users.GetUserByUID(ctx, user.UID)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, updated.Sanitized(), nil
}

// ResolveToken проверяет сессионный токен и возвращает его владельца.
//
// Ошибки: jwt.ErrExpired, jwt.ErrInvalid, ErrUserGone, ErrPasswordChanged.
// Смена пароля после выпуска токена делает недействительными все ранее
// выпущенные токены без ведения чёрного списка.
func (s *AuthService) ResolveToken(ctx context.Context, tokenStr string) (*models.User, error) {
	const op = "auth.ResolveToken"

	claims, err := s.jwtMaker.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByUID(ctx, claims.UserUID())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserGone
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// iat хранится с точностью до секунды, сравниваем на той же точности
	if user.PasswordChangedAt.Truncate(time.Second).After(claims.IssuedAt.Time) {
		return nil, ErrPasswordChanged
	}

	return user.Sanitized(), nil
}

// NormalizeEmail приводит email к канонической форме хранения.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
