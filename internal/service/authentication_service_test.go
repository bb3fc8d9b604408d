package service

import (
	"TaskManager_API/internal/apperror"
	"TaskManager_API/internal/model"
	"TaskManager_API/internal/security"
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userUUID string, refreshToken string) error {
	return m.Called(ctx, userUUID, refreshToken).Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userUUID string) error {
	return m.Called(ctx, userUUID).Error(0)
}

func (m *MockTokenService) IssueTokenPair(user *model.User) (*model.TokensPair, error) {
	args := m.Called(user)
	tokensPair := args.Get(0)
	if tokensPair == nil {
		return nil, args.Error(1)
	}
	return tokensPair.(*model.TokensPair), args.Error(1)
}

func (m *MockTokenService) VerifyAccessToken(token string) (*security.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*security.Claims)
	return claims, args.Error(1)
}

func (m *MockTokenService) VerifyRefreshToken(token string) (*security.Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*security.Claims)
	return claims, args.Error(1)
}

func (m *MockTokenService) RotateAccessToken(refreshToken string) (string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.Error(1)
}

func storedUser(refreshToken string) *model.User {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	user := &model.User{
		UUID:     "user-uuid",
		Name:     "A",
		Email:    "a@x.com",
		Password: string(hashedPassword),
	}
	if refreshToken != "" {
		user.RefreshToken = sql.NullString{String: refreshToken, Valid: true}
	}
	return user
}

// 1
func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	var createdUser *model.User
	mockRepo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) { createdUser = args.Get(1).(*model.User) }).
		Return(nil)
	mockTokenService.On("IssueTokenPair", mock.Anything).
		Return(&model.TokensPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
	mockRepo.On("UpdateRefreshToken", ctx, mock.Anything, "refresh").Return(nil)

	authResult, err := authService.Register(ctx, "A", "a@x.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", authResult.User.Email)
	assert.Equal(t, "access", authResult.Tokens.AccessToken)
	assert.Equal(t, "refresh", authResult.Tokens.RefreshToken)
	assert.NotEmpty(t, createdUser.UUID)
	// пароль сохранен только как bcrypt-хэш
	assert.NotEqual(t, "secret1", createdUser.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdUser.Password), []byte("secret1")))
}

// 2
func TestRegister_DuplicateAccount(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockRepo.On("Create", ctx, mock.Anything).Return(apperror.ErrDuplicateAccount)

	_, err := authService.Register(ctx, "A", "a@x.com", "secret1")
	assert.ErrorIs(t, err, apperror.ErrDuplicateAccount)
	mockTokenService.AssertNotCalled(t, "IssueTokenPair", mock.Anything)
}

// 3
func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockRepo.On("FindByEmail", ctx, "нет@x.com").Return(nil, apperror.ErrNotFound)
	mockRepo.On("FindByEmail", ctx, "a@x.com").Return(storedUser(""), nil)

	_, unknownEmailErr := authService.Login(ctx, "нет@x.com", "secret1")
	_, wrongPasswordErr := authService.Login(ctx, "a@x.com", "неверный")

	assert.ErrorIs(t, unknownEmailErr, apperror.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, apperror.ErrInvalidCredentials)
	// защита от перебора аккаунтов: тексты ошибок неотличимы
	assert.Equal(t, unknownEmailErr.Error(), wrongPasswordErr.Error())
}

// 4
func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	user := storedUser("старый-refresh")
	mockRepo.On("FindByEmail", ctx, "a@x.com").Return(user, nil)
	mockTokenService.On("IssueTokenPair", user).
		Return(&model.TokensPair{AccessToken: "новый-access", RefreshToken: "новый-refresh"}, nil)
	mockRepo.On("UpdateRefreshToken", ctx, "user-uuid", "новый-refresh").Return(nil)

	authResult, err := authService.Login(ctx, "a@x.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, "новый-access", authResult.Tokens.AccessToken)
	// вход перезаписывает сохраненный refresh токен
	mockRepo.AssertCalled(t, "UpdateRefreshToken", ctx, "user-uuid", "новый-refresh")
}

// 5
func TestRefresh_InvalidToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockTokenService.On("VerifyRefreshToken", "плохой-токен").
		Return(nil, fmt.Errorf("%w: подпись не совпала", apperror.ErrInvalidRefreshToken))

	_, err := authService.Refresh(ctx, "плохой-токен")
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
}

// 6
func TestRefresh_UserNoLongerExists(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockTokenService.On("VerifyRefreshToken", "refresh").
		Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	mockRepo.On("FindByUUID", ctx, "user-uuid").Return(nil, apperror.ErrNotFound)

	_, err := authService.Refresh(ctx, "refresh")
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
}

// 7
func TestRefresh_SupersededToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockTokenService.On("VerifyRefreshToken", "вытесненный-refresh").
		Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	mockRepo.On("FindByUUID", ctx, "user-uuid").Return(storedUser("текущий-refresh"), nil)

	_, err := authService.Refresh(ctx, "вытесненный-refresh")
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
	mockTokenService.AssertNotCalled(t, "RotateAccessToken", mock.Anything)
}

// 8
func TestRefresh_ClearedToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockTokenService.On("VerifyRefreshToken", "refresh").
		Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	// после выхода из аккаунта зеркальная копия очищена
	mockRepo.On("FindByUUID", ctx, "user-uuid").Return(storedUser(""), nil)

	_, err := authService.Refresh(ctx, "refresh")
	assert.ErrorIs(t, err, apperror.ErrInvalidRefreshToken)
}

// 9
func TestRefresh_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockTokenService.On("VerifyRefreshToken", "refresh").
		Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	mockRepo.On("FindByUUID", ctx, "user-uuid").Return(storedUser("refresh"), nil)
	mockTokenService.On("RotateAccessToken", "refresh").Return("новый-access", nil)

	accessToken, err := authService.Refresh(ctx, "refresh")

	assert.NoError(t, err)
	assert.Equal(t, "новый-access", accessToken)
}

// 10
func TestLogout_ClearsRefreshToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockRepo.On("ClearRefreshToken", ctx, "user-uuid").Return(nil)

	err := authService.Logout(ctx, "user-uuid")

	assert.NoError(t, err)
	mockRepo.AssertCalled(t, "ClearRefreshToken", ctx, "user-uuid")
}

// 11
func TestProfile_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	mockTokenService := new(MockTokenService)

	authService := NewAuthenticationService(mockRepo, mockTokenService)

	mockRepo.On("FindByUUID", ctx, "удаленный-uuid").Return(nil, apperror.ErrNotFound)

	_, err := authService.Profile(ctx, "удаленный-uuid")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
