package model

import (
	"database/sql"
	"time"
)

// User хранит учетные данные пользователя. Поле RefreshToken содержит
// единственный действующий refresh токен (NULL после выхода из аккаунта):
// новый вход перезаписывает его и тем самым отзывает предыдущую сессию.
// Пароль и refresh токен никогда не сериализуются в JSON
type User struct {
	UUID         string         `db:"uuid" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	Password     string         `db:"password" json:"-"`
	RefreshToken sql.NullString `db:"refresh_token" json:"-"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (для получения нового access токена)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}

// AuthResult возвращается регистрацией и входом в аккаунт
// swagger:model
type AuthResult struct {
	User   *User       `json:"user"`
	Tokens *TokensPair `json:"tokens"`
}
