package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/pkg/apperror"
)

// IssuedToken — выпущенный access токен с временем жизни.
type IssuedToken struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   time.Duration `json:"expires_in"`
}

// TokenManager отвечает за выпуск и проверку JWT. Субъект токена —
// адрес участника: проверку владения адресом выполняет внешний шлюз,
// ядро только связывает запросы с адресом.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// Issue выпускает access токен для адреса.
func (m *TokenManager) Issue(address models.Address) (*IssuedToken, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.accessTTL)

	claims := jwt.MapClaims{
		"sub": string(address),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, time.Time{}, err
	}

	return &IssuedToken{
		AccessToken: signed,
		ExpiresIn:   m.accessTTL,
	}, exp, nil
}

// Parse извлекает адрес из access токена.
func (m *TokenManager) Parse(token string) (models.Address, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.ZeroAddress, apperror.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.ZeroAddress, apperror.ErrUnauthorized
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.ZeroAddress, apperror.ErrUnauthorized
	}

	return models.Address(sub), nil
}
