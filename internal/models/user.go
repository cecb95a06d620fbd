// Package models содержит доменную модель пользователя сервиса аккаунтов:
// учётные данные, хэш пароля, поля сброса пароля и служебные временные метки.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей сервиса.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	UID                  string     `json:"uid"`                     // Уникальный идентификатор пользователя
	Name                 string     `json:"name"`                    // Отображаемое имя
	Email                string     `json:"email"`                   // Электронная почта, уникальная, хранится в нижнем регистре
	PasswordHash         string     `json:"-"`                       // Bcrypt-хэш пароля
	PasswordResetToken   *string    `json:"-"`                       // SHA-256 дайджест секрета сброса, если сброс в процессе
	PasswordResetExpires *time.Time `json:"-"`                       // Срок действия секрета сброса
	PasswordChangedAt    time.Time  `json:"-"`                       // Момент последней смены пароля
	Role                 string     `json:"role"`                    // Роль пользователя, admin или user
	ProfileImage         *string    `json:"profile_image,omitempty"` // Путь или URL аватара
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// Sanitized возвращает копию пользователя без хэша пароля, полей сброса
// и внутренних временных меток. Только такая копия уходит наружу:
// в HTTP-ответы и в контекст запроса.
func (u *User) Sanitized() *User {
	c := *u
	c.PasswordHash = ""
	c.PasswordResetToken = nil
	c.PasswordResetExpires = nil
	c.PasswordChangedAt = time.Time{}
	return &c
}
