package adminauth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
)

// ErrUnauthorized секрет не совпал или не сконфигурирован
var ErrUnauthorized = errors.New("adminauth: unauthorized")

// Guard проверка общего секрета администратора
type Guard struct {
	digest     [sha256.Size]byte
	configured bool
}

// NewGuard создает проверку; пустой секрет запрещает любой доступ
func NewGuard(secret string) *Guard {
	if secret == "" {
		return &Guard{}
	}
	return &Guard{digest: sha256.Sum256([]byte(secret)), configured: true}
}

// Check сравнивает дайджесты за постоянное время
func (g *Guard) Check(presented string) error {
	if !g.configured {
		return ErrUnauthorized
	}

	got := sha256.Sum256([]byte(presented))
	if subtle.ConstantTimeCompare(got[:], g.digest[:]) != 1 {
		return ErrUnauthorized
	}
	return nil
}
