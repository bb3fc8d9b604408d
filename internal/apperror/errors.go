package apperror

import (
	"errors"
	"net/http"
)

// Закрытый набор ошибок приложения. Хендлеры сводят любую ошибку сервиса
// к HTTP-статусу через Status и к безопасному для клиента тексту через Message.
var (
	ErrDuplicateAccount      = errors.New("пользователь с таким email уже существует")
	ErrInvalidCredentials    = errors.New("неверный email или пароль")
	ErrMissingToken          = errors.New("отсутствует или неверный заголовок Authorization")
	ErrInvalidOrExpiredToken = errors.New("невалидный или просроченный токен")
	ErrInvalidRefreshToken   = errors.New("невалидный refresh токен")
	ErrNotFound              = errors.New("пользователь не найден")
)

var known = []error{
	ErrDuplicateAccount,
	ErrInvalidCredentials,
	ErrMissingToken,
	ErrInvalidOrExpiredToken,
	ErrInvalidRefreshToken,
	ErrNotFound,
}

func Status(err error) int {
	switch {
	case errors.Is(err, ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidOrExpiredToken),
		errors.Is(err, ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message возвращает текст ошибки без деталей, которыми она была обернута.
// Для неклассифицированных ошибок текст не раскрывается
func Message(err error) string {
	for _, knownErr := range known {
		if errors.Is(err, knownErr) {
			return knownErr.Error()
		}
	}
	return "внутренняя ошибка сервера"
}
