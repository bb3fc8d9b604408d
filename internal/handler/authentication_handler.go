package handler

import (
	"TaskManager_API/internal/apperror"
	"TaskManager_API/internal/ports"
	"TaskManager_API/internal/response"
	"TaskManager_API/internal/security"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

type AuthenticationHandler struct {
	AuthenticationService ports.AuthenticationServiceInterface
}

// RefreshTokenResponse содержит новый access токен
// swagger:model
type RefreshTokenResponse struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationServiceInterface) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Register регистрирует нового пользователя
// @Summary Регистрация
// @Description Создает пользователя, выдает пару JWT-токенов и сохраняет refresh-токен в БД. Пример запроса: POST /api/v1/auth/register с телом {"name": "A", "email": "a@x.com", "password": "secret1"}
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Данные нового пользователя"
// @Success 201 {object} response.APIResponse "пользователь и пара токенов"
// @Failure 400 {object} response.APIResponse "ошибки валидации"
// @Failure 409 {object} response.APIResponse "email уже занят"
// @Router /auth/register [post]
func (handler *AuthenticationHandler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	var registerRequest RegisterRequest
	if err := json.NewDecoder(request.Body).Decode(&registerRequest); err != nil {
		log.Printf("неверный json: %v", err)
		response.Error(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}

	if fieldErrors := registerRequest.Validate(); len(fieldErrors) > 0 {
		response.Error(writer, http.StatusBadRequest, "невалидные данные запроса", fieldErrors)
		return
	}

	authResult, err := handler.AuthenticationService.Register(ctx, registerRequest.Name, registerRequest.Email, registerRequest.Password)
	if err != nil {
		handler.writeServiceError(writer, "ошибка регистрации", err)
		return
	}

	response.Success(writer, http.StatusCreated, "пользователь успешно зарегистрирован", authResult)
}

// Login выполняет вход в аккаунт
// @Summary Вход
// @Description Проверяет учетные данные и выдает новую пару токенов. Новый вход перезаписывает refresh-токен предыдущей сессии. Пример запроса: POST /api/v1/auth/login с телом {"email": "a@x.com", "password": "secret1"}
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Учетные данные"
// @Success 200 {object} response.APIResponse "пользователь и пара токенов"
// @Failure 400 {object} response.APIResponse "ошибки валидации"
// @Failure 401 {object} response.APIResponse "неверный email или пароль"
// @Router /auth/login [post]
func (handler *AuthenticationHandler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	var loginRequest LoginRequest
	if err := json.NewDecoder(request.Body).Decode(&loginRequest); err != nil {
		log.Printf("неверный json: %v", err)
		response.Error(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}

	if fieldErrors := loginRequest.Validate(); len(fieldErrors) > 0 {
		response.Error(writer, http.StatusBadRequest, "невалидные данные запроса", fieldErrors)
		return
	}

	authResult, err := handler.AuthenticationService.Login(ctx, loginRequest.Email, loginRequest.Password)
	if err != nil {
		handler.writeServiceError(writer, "ошибка входа", err)
		return
	}

	response.Success(writer, http.StatusOK, "вход выполнен успешно", authResult)
}

// Refresh обновляет access токен
// @Summary Обновление access токена
// @Description Выпускает новый access-токен по действующему refresh-токену. Пример запроса: POST /api/v1/auth/refresh с телом {"refreshToken": "<refresh_token>"}
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh токен"
// @Success 200 {object} response.APIResponse "новый access токен"
// @Failure 401 {object} response.APIResponse "невалидный refresh токен"
// @Router /auth/refresh [post]
func (handler *AuthenticationHandler) Refresh(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	var refreshTokenRequest RefreshTokenRequest
	if err := json.NewDecoder(request.Body).Decode(&refreshTokenRequest); err != nil {
		log.Printf("неверный json: %v", err)
		response.Error(writer, http.StatusBadRequest, "неверный json", nil)
		return
	}

	if fieldErrors := refreshTokenRequest.Validate(); len(fieldErrors) > 0 {
		response.Error(writer, http.StatusBadRequest, "невалидные данные запроса", fieldErrors)
		return
	}

	accessToken, err := handler.AuthenticationService.Refresh(ctx, refreshTokenRequest.RefreshToken)
	if err != nil {
		handler.writeServiceError(writer, "не удалось обновить токен", err)
		return
	}

	response.Success(writer, http.StatusOK, "токен успешно обновлен", &RefreshTokenResponse{AccessToken: accessToken})
}

// Logout выполняет выход из аккаунта
// @Summary Выход из аккаунта
// @Description Инвалидирует refresh-токен текущего пользователя. Пример запроса: POST /api/v1/auth/logout с заголовком Authorization: Bearer <access_token>
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} response.APIResponse "успешный выход"
// @Failure 401 {object} response.APIResponse "пользователь не авторизован"
// @Security ApiKeyAuth
// @Router /auth/logout [post]
func (handler *AuthenticationHandler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	claims, ok := security.ClaimsFromContext(ctx)
	if ok == false {
		response.Error(writer, http.StatusUnauthorized, apperror.ErrMissingToken.Error(), nil)
		return
	}

	if err := handler.AuthenticationService.Logout(ctx, claims.UserUUID); err != nil {
		handler.writeServiceError(writer, "ошибка выхода из аккаунта", err)
		return
	}

	response.Success(writer, http.StatusOK, "выполнен выход из аккаунта", nil)
}

// Profile возвращает профиль текущего пользователя
// @Summary Профиль пользователя
// @Description Возвращает пользователя без секретных полей. Пример запроса: GET /api/v1/auth/profile с заголовком Authorization: Bearer <access_token>
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} response.APIResponse "профиль пользователя"
// @Failure 401 {object} response.APIResponse "пользователь не авторизован"
// @Failure 404 {object} response.APIResponse "пользователь не найден"
// @Security ApiKeyAuth
// @Router /auth/profile [get]
func (handler *AuthenticationHandler) Profile(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	claims, ok := security.ClaimsFromContext(ctx)
	if ok == false {
		response.Error(writer, http.StatusUnauthorized, apperror.ErrMissingToken.Error(), nil)
		return
	}

	user, err := handler.AuthenticationService.Profile(ctx, claims.UserUUID)
	if err != nil {
		handler.writeServiceError(writer, "ошибка получения профиля", err)
		return
	}

	response.Success(writer, http.StatusOK, "профиль успешно получен", user)
}

// writeServiceError сводит ошибку сервиса к конверту ответа. Детали
// неклассифицированных ошибок не попадают к клиенту, только в лог
func (handler *AuthenticationHandler) writeServiceError(writer http.ResponseWriter, logPrefix string, err error) {
	statusCode := apperror.Status(err)
	if statusCode == http.StatusInternalServerError {
		log.Printf("%s: %v", logPrefix, err)
	}
	response.Error(writer, statusCode, apperror.Message(err), nil)
}
