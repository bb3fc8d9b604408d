package main

import (
	"TaskManager_API/config"
	"TaskManager_API/config/server"
	"TaskManager_API/internal/handler"
	"TaskManager_API/internal/repository"
	"TaskManager_API/internal/security"
	"TaskManager_API/internal/service"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	_ "github.com/lib/pq"
)

const version = "1.0.0"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("не удалось загрузить конфигурацию: %v", err)
	}

	database, err := server.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("не удалось подключиться к БД: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(ctx); err != nil {
		log.Fatalf("не удалось применить миграции: %v", err)
	}

	tokenService, err := security.NewTokenService(&cfg.JWT)
	if err != nil {
		log.Fatalf("не удалось создать сервис токенов: %v", err)
	}

	userRepository := repository.NewUserRepository(database)
	authenticationService := service.NewAuthenticationService(userRepository, tokenService)
	authenticationHandler := handler.NewAuthenticationHandler(authenticationService)

	httpServer, router := server.SetupServer(cfg)
	setupRoutes(router, cfg, tokenService, authenticationHandler)

	runServer(ctx, httpServer)
}

func setupRoutes(router *chi.Mux, cfg *config.Config, tokenService *security.TokenService, authenticationHandler *handler.AuthenticationHandler) {
	rateLimitWindow, err := time.ParseDuration(cfg.RateLimit.Window)
	if err != nil {
		log.Fatalf("неверный формат rate_limit.window: %v", err)
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	startedAt := time.Now()
	router.Get("/health", handler.Health(startedAt, cfg.Server.Environment))
	router.Get("/", handler.Banner(version))

	router.Route(cfg.Server.BasePath, func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit.RequestLimit, rateLimitWindow))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authenticationHandler.Register)
			r.Post("/login", authenticationHandler.Login)
			r.Post("/refresh", authenticationHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(security.JWTMiddleware(tokenService))
				r.Post("/logout", authenticationHandler.Logout)
				r.Get("/profile", authenticationHandler.Profile)
			})
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
