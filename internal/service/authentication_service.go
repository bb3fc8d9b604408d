package service

import (
	"TaskManager_API/internal/apperror"
	"TaskManager_API/internal/model"
	"TaskManager_API/internal/ports"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticationService реализует жизненный цикл сессии:
// Anonymous -> Authenticated (выдана пара токенов) -> Authenticated
// (access обновлен по refresh) -> Revoked (выход из аккаунта)
type AuthenticationService struct {
	UserRepository ports.UserRepositoryInterface
	TokenService   ports.TokenServiceInterface
}

func NewAuthenticationService(userRepository ports.UserRepositoryInterface, tokenService ports.TokenServiceInterface) *AuthenticationService {
	return &AuthenticationService{
		UserRepository: userRepository,
		TokenService:   tokenService,
	}
}

func (service *AuthenticationService) Register(ctx context.Context, name string, email string, password string) (*model.AuthResult, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	user := &model.User{
		UUID:     uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := service.UserRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	tokensPair, err := service.issueAndStoreTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.AuthResult{User: user, Tokens: tokensPair}, nil
}

// Login намеренно возвращает одну и ту же ошибку для несуществующего email
// и для неверного пароля, чтобы по ответу нельзя было перебирать аккаунты
func (service *AuthenticationService) Login(ctx context.Context, email string, password string) (*model.AuthResult, error) {
	user, err := service.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	tokensPair, err := service.issueAndStoreTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.AuthResult{User: user, Tokens: tokensPair}, nil
}

// Refresh выпускает новый access токен по refresh токену. Токен обязан
// совпадать с зеркальной копией на пользователе: refresh, вытесненный более
// поздним входом или выходом из аккаунта, отклоняется до истечения срока
func (service *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := service.TokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := service.UserRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.ErrInvalidRefreshToken
		}
		return "", err
	}

	if user.RefreshToken.Valid == false ||
		subtle.ConstantTimeCompare([]byte(user.RefreshToken.String), []byte(refreshToken)) != 1 {
		return "", apperror.ErrInvalidRefreshToken
	}

	accessToken, err := service.TokenService.RotateAccessToken(refreshToken)
	if err != nil {
		return "", err
	}

	return accessToken, nil
}

// Logout безусловно очищает сохраненный refresh токен. Уже выданные access
// токены продолжают действовать до собственного истечения
func (service *AuthenticationService) Logout(ctx context.Context, userUUID string) error {
	if err := service.UserRepository.ClearRefreshToken(ctx, userUUID); err != nil {
		return fmt.Errorf("не удалось выполнить выход из аккаунта: %w", err)
	}

	return nil
}

func (service *AuthenticationService) Profile(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := service.UserRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// issueAndStoreTokens выпускает пару токенов и перезаписывает refresh токен
// на пользователе. Перезапись отзывает предыдущую сессию: действует политика
// одной активной сессии на пользователя
func (service *AuthenticationService) issueAndStoreTokens(ctx context.Context, user *model.User) (*model.TokensPair, error) {
	tokensPair, err := service.TokenService.IssueTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	if err := service.UserRepository.UpdateRefreshToken(ctx, user.UUID, tokensPair.RefreshToken); err != nil {
		return nil, fmt.Errorf("не удалось сохранить refresh токен: %w", err)
	}

	return tokensPair, nil
}
