package handler

import (
	"TaskManager_API/internal/response"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// RegisterRequest содержит данные нового пользователя
// swagger:model
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит учетные данные для входа
// swagger:model
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest содержит refresh токен в json формате
// swagger:model
type RefreshTokenRequest struct {
	// Refresh токен
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}

// Validate нормализует поля и возвращает список ошибок валидации
func (request *RegisterRequest) Validate() []response.FieldError {
	var fieldErrors []response.FieldError

	request.Name = strings.TrimSpace(request.Name)
	if nameLength := utf8.RuneCountInString(request.Name); nameLength < 2 || nameLength > 50 {
		fieldErrors = append(fieldErrors, response.FieldError{
			Field:   "name",
			Message: "имя должно содержать от 2 до 50 символов",
		})
	}

	request.Email, fieldErrors = normalizeEmail(request.Email, fieldErrors)

	if len(request.Password) < 6 || len(request.Password) > 100 {
		fieldErrors = append(fieldErrors, response.FieldError{
			Field:   "password",
			Message: "пароль должен содержать от 6 до 100 символов",
		})
	}

	return fieldErrors
}

func (request *LoginRequest) Validate() []response.FieldError {
	var fieldErrors []response.FieldError

	request.Email, fieldErrors = normalizeEmail(request.Email, fieldErrors)

	if request.Password == "" {
		fieldErrors = append(fieldErrors, response.FieldError{
			Field:   "password",
			Message: "пароль обязателен",
		})
	}

	return fieldErrors
}

func (request *RefreshTokenRequest) Validate() []response.FieldError {
	if request.RefreshToken == "" {
		return []response.FieldError{{
			Field:   "refreshToken",
			Message: "refresh токен обязателен",
		}}
	}

	return nil
}

// normalizeEmail приводит email к нижнему регистру без пробелов,
// чтобы уникальность аккаунта не зависела от регистра ввода
func normalizeEmail(email string, fieldErrors []response.FieldError) (string, []response.FieldError) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := mail.ParseAddress(email); err != nil {
		fieldErrors = append(fieldErrors, response.FieldError{
			Field:   "email",
			Message: "неверный формат email",
		})
	}

	return email, fieldErrors
}
