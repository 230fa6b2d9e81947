// Package jwt реализует генерацию и парсинг токенов сессии
// с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки токенов с username и uid
// пользователя. MakerImpl — конкретная реализация с использованием секретного
// ключа и срока жизни токена.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken создает токен с указанными username и uid пользователя.
	GenerateToken(username, userUID string) (string, error)
	// ParseToken возвращает *SessionClaims с username и uid пользователя.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
