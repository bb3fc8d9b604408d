package security

import (
	"TaskManager_API/internal/apperror"
	"TaskManager_API/internal/response"
	"context"
	"log"
	"net/http"
	"strings"
)

type claimsContextKey struct{}

// NewContext кладет проверенные claims в контекст запроса
func NewContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext достает идентичность, добавленную JWTMiddleware.
// Хендлеры за middleware доверяют ей без повторной проверки токена
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok && claims != nil
}

// JWTMiddleware — единственная точка авторизации защищенных маршрутов:
// извлекает bearer токен, проверяет его и прикрепляет claims к контексту
func JWTMiddleware(tokenService *TokenService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(tokenService, next))
	}
}

func handleAuthentication(tokenService *TokenService, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if strings.HasPrefix(authorizationHeader, "Bearer ") == false {
			response.Error(writer, http.StatusUnauthorized, apperror.ErrMissingToken.Error(), nil)
			return
		}

		jwtTokenStr := strings.TrimPrefix(authorizationHeader, "Bearer ")
		if jwtTokenStr == "" {
			response.Error(writer, http.StatusUnauthorized, apperror.ErrMissingToken.Error(), nil)
			return
		}

		claims, err := tokenService.VerifyAccessToken(jwtTokenStr)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			response.Error(writer, http.StatusUnauthorized, apperror.ErrInvalidOrExpiredToken.Error(), nil)
			return
		}

		next.ServeHTTP(writer, request.WithContext(NewContext(request.Context(), claims)))
	}
}
