package ports

import (
	"TaskManager_API/internal/model"
	"TaskManager_API/internal/security"
	"context"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, userUUID string, refreshToken string) error
	ClearRefreshToken(ctx context.Context, userUUID string) error
}

type TokenServiceInterface interface {
	IssueTokenPair(user *model.User) (*model.TokensPair, error)
	VerifyAccessToken(token string) (*security.Claims, error)
	VerifyRefreshToken(token string) (*security.Claims, error)
	RotateAccessToken(refreshToken string) (string, error)
}

type AuthenticationServiceInterface interface {
	Register(ctx context.Context, name string, email string, password string) (*model.AuthResult, error)
	Login(ctx context.Context, email string, password string) (*model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userUUID string) error
	Profile(ctx context.Context, userUUID string) (*model.User, error)
}
