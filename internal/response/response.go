package response

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// APIResponse — единый конверт всех ответов сервиса
// swagger:model
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// FieldError описывает ошибку валидации одного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func Success(writer http.ResponseWriter, statusCode int, message string, data interface{}) {
	write(writer, statusCode, &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func Error(writer http.ResponseWriter, statusCode int, message string, errDetail interface{}) {
	write(writer, statusCode, &APIResponse{
		Success:   false,
		Message:   message,
		Error:     errDetail,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func write(writer http.ResponseWriter, statusCode int, apiResponse *APIResponse) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if err := json.NewEncoder(writer).Encode(apiResponse); err != nil {
		log.Printf("ошибка записи ответа: %v", err)
	}
}
