package server

import (
	"TaskManager_API/config"
	"TaskManager_API/internal"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

// LoadConfig читает config.yaml и накладывает поверх него значения из .env,
// чтобы секреты и строка подключения не хранились в конфигурационном файле
func LoadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil {
		log.Println(".env не найден, используются значения из config.yaml")
	}

	if value := os.Getenv("SERVER_ADDRESS"); value != "" {
		cfg.Server.Address = value
	}
	if value := os.Getenv("DATABASE_DRIVER"); value != "" {
		cfg.Database.Driver = value
	}
	if value := os.Getenv("DATABASE_CONNECTION_URL"); value != "" {
		cfg.Database.ConnectionString = value
	}
	if value := os.Getenv("JWT_ACCESS_SECRET"); value != "" {
		cfg.JWT.AccessSecret = value
	}
	if value := os.Getenv("JWT_REFRESH_SECRET"); value != "" {
		cfg.JWT.RefreshSecret = value
	}

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("не заданы секреты JWT_ACCESS_SECRET / JWT_REFRESH_SECRET")
	}

	return cfg, nil
}

func SetupDatabase(cfg *config.Config) (*internal.Database, error) {
	database, err := internal.NewDatabaseConnection(cfg.Database.Driver, cfg.Database.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения: %w", err)
	}
	return database, nil
}

func SetupServer(cfg *config.Config) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	return server, router
}
