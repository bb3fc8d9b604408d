package handler

import (
	"TaskManager_API/internal/response"
	"net/http"
	"time"
)

// HealthResponse содержит сведения о состоянии сервиса
// swagger:model
type HealthResponse struct {
	Uptime      string `json:"uptime"`
	Environment string `json:"environment"`
}

// BannerResponse содержит сведения об API
// swagger:model
type BannerResponse struct {
	Version       string `json:"version"`
	Documentation string `json:"documentation"`
}

// Health возвращает хендлер проверки состояния сервиса
// @Summary Проверка состояния
// @Tags Service
// @Produce json
// @Success 200 {object} response.APIResponse "сервис работает"
// @Router /health [get]
func Health(startedAt time.Time, environment string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		response.Success(writer, http.StatusOK, "сервис работает", &HealthResponse{
			Uptime:      time.Since(startedAt).String(),
			Environment: environment,
		})
	}
}

// Banner возвращает хендлер корневого маршрута с описанием API
func Banner(version string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		response.Success(writer, http.StatusOK, "API аутентификации менеджера задач", &BannerResponse{
			Version:       version,
			Documentation: "/api/docs",
		})
	}
}
