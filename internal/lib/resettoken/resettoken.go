// Package resettoken реализует генерацию одноразовых секретов для сброса пароля.
//
// Секрет — криптографически случайные 32 байта в hex-кодировке. Пользователю
// он уходит по почте один раз, в хранилище попадает только его SHA-256 дайджест.
// Дайджест намеренно детерминированный, без соли: поиск пользователя идёт
// по дайджесту предъявленного секрета.
package resettoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// TTL время жизни секрета сброса пароля.
const TTL = 10 * time.Minute

// secretLen длина случайной части секрета в байтах.
const secretLen = 32

// Token содержит секрет сброса и его производные.
// Secret уходит пользователю, Hash и ExpiresAt — в хранилище.
type Token struct {
	Secret    string
	Hash      string
	ExpiresAt time.Time
}

// Generate создает новый секрет сброса пароля со сроком действия now + TTL.
func Generate(now time.Time) (*Token, error) {
	const op = "resettoken.Generate"
	buf := make([]byte, secretLen)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	secret := hex.EncodeToString(buf)
	return &Token{
		Secret:    secret,
		Hash:      HashSecret(secret),
		ExpiresAt: now.Add(TTL),
	}, nil
}

// HashSecret возвращает hex-представление SHA-256 дайджеста секрета.
// Тот же дайджест применяется к предъявленному секрету при поиске пользователя.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
