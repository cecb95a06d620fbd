// Package jwt реализует выпуск и проверку сессионных JWT токенов.
//
// Maker определяет интерфейс для создания и проверки токена, несущего
// идентификатор пользователя (subject), время выпуска и срок действия.
// MakerImpl — конкретная реализация с секретным ключом и TTL.
package jwt

import (
	"errors"
	"time"
)

// Ошибки проверки токена. Обработчики различают только эти два случая:
// истёкший токен и любой иной дефект (повреждён, неверная подпись).
var (
	// ErrExpired токен корректен, но срок его действия истёк.
	ErrExpired = errors.New("token expired")
	// ErrInvalid токен повреждён или подписан другим ключом.
	ErrInvalid = errors.New("invalid token")
)

// Maker описывает интерфейс для выпуска и проверки сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с указанным UID.
	GenerateToken(userUID string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
