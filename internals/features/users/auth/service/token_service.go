package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"rentix_backend/internals/configs"
	"rentix_backend/internals/features/users/auth/model"
)

const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateTokenPair emite o par access/refresh do gestor autenticado.
func GenerateTokenPair(manager *model.Manager, now time.Time) (access string, refresh string, err error) {
	access, err = signToken(manager, now, AccessTokenTTL, configs.JWTSecret)
	if err != nil {
		return "", "", err
	}
	refresh, err = signToken(manager, now, RefreshTokenTTL, configs.JWTRefreshSecret)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func signToken(manager *model.Manager, now time.Time, ttl time.Duration, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("segredo JWT não configurado")
	}
	claims := jwt.MapClaims{
		"manager_id": manager.ManagerID.String(),
		"email":      manager.ManagerEmail,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken valida assinatura/expiração e devolve os claims.
func ParseToken(raw string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("método de assinatura inesperado")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token inválido")
	}
	return claims, nil
}
