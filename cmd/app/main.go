package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Junaid083/SprintSync/internal/config"
	"github.com/Junaid083/SprintSync/internal/handler"
	"github.com/Junaid083/SprintSync/internal/repo"
	"github.com/Junaid083/SprintSync/internal/service"
	"github.com/Junaid083/SprintSync/internal/token"
	"github.com/Junaid083/SprintSync/internal/worker"
)

func main() {
	godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()

	// The pool is constructed here and passed down explicitly; nothing
	// below holds a global connection.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	var cache *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("Invalid REDIS_URL", zap.Error(err))
		}
		cache = redis.NewClient(opt)
		defer cache.Close()
	}

	tokens := token.NewService(cfg.JWTSecret)

	taskRepo := repo.NewTaskRepo(pool)
	accountRepo := repo.NewAccountRepo(pool)

	taskService := service.NewTaskService(taskRepo)
	authService := service.NewAuthService(accountRepo, tokens)
	suggestService := service.NewSuggestService(cfg.OpenAIAPIKey, cache, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	suggestHandler := handler.NewSuggestHandler(suggestService, logger)
	authMW := handler.NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Mount("/", handler.NewRouter(authHandler, taskHandler, suggestHandler, authMW))

	sweeper := worker.NewSweeper(pool, logger, cfg.SweepInterval)
	sweeper.Start(context.Background())

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
