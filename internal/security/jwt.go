package security

import (
	"TaskManager_API/config"
	"TaskManager_API/internal/apperror"
	"TaskManager_API/internal/model"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "TaskManager_API"

// Claims — полезная нагрузка обоих классов токенов: идентичность пользователя
// плюс стандартные утверждения (exp, iat, iss)
type Claims struct {
	UserUUID string `json:"userId"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет подписанные токены. Access и refresh
// токены подписываются разными секретами и живут разное время; сам сервис
// ничего не сохраняет — запись refresh токена в БД лежит на вызывающем коде
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(cfg *config.JWTConfig) (*TokenService, error) {
	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("неверный формат access_token_ttl: %w", err)
	}

	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("неверный формат refresh_token_ttl: %w", err)
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (service *TokenService) IssueTokenPair(user *model.User) (*model.TokensPair, error) {
	accessToken, err := service.signToken(user.UUID, user.Email, service.accessSecret, service.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи access токена: %w", err)
	}

	refreshToken, err := service.signToken(user.UUID, user.Email, service.refreshSecret, service.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи refresh токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *TokenService) signToken(userUUID string, email string, secretKey []byte, ttl time.Duration) (string, error) {
	claims := Claims{
		UserUUID: userUUID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает каждый токен уникальным даже при выпуске
			// в одну и ту же секунду
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return jwtToken.SignedString(secretKey)
}

// VerifyAccessToken проверяет подпись и срок действия access токена.
// Просроченный и невалидный токены различаются только в логах: клиент
// в обоих случаях получает один и тот же признак "не авторизован"
func (service *TokenService) VerifyAccessToken(jwtTokenStr string) (*Claims, error) {
	claims, err := validateJWT(jwtTokenStr, service.accessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Printf("access токен просрочен: %v", err)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidOrExpiredToken, err)
	}

	return claims, nil
}

func (service *TokenService) VerifyRefreshToken(jwtTokenStr string) (*Claims, error) {
	claims, err := validateJWT(jwtTokenStr, service.refreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Printf("refresh токен просрочен: %v", err)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidRefreshToken, err)
	}

	return claims, nil
}

// RotateAccessToken выпускает новый access токен по действующему refresh
// токену. Сам refresh токен не продлевается и не перевыпускается
func (service *TokenService) RotateAccessToken(refreshToken string) (string, error) {
	claims, err := service.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	accessToken, err := service.signToken(claims.UserUUID, claims.Email, service.accessSecret, service.accessTTL)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи access токена: %w", err)
	}

	return accessToken, nil
}

func validateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil {
		return nil, err
	}
	if jwtToken.Valid == false {
		return nil, fmt.Errorf("невалидный токен")
	}

	return claims, nil
}
