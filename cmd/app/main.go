package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-crud-api/internal/config"
	"github.com/BuzzLyutic/task-crud-api/internal/handler"
	"github.com/BuzzLyutic/task-crud-api/internal/repo"
	"github.com/BuzzLyutic/task-crud-api/internal/server"
	"github.com/BuzzLyutic/task-crud-api/internal/service"
)

func main() {
	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем логгер
	logger := newLogger(cfg)
	defer logger.Sync()

	// Подключаем хранилище
	store, closeStore, err := repo.Open(context.Background(), repo.OpenOptions{
		Kind:        cfg.Storage,
		DatabaseURL: cfg.DatabaseURL,
		AutoMigrate: cfg.AutoMigrate,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err)) // Fatal потому что дальнейшая работа теряет смысл
	}
	defer closeStore()

	taskService := service.NewTaskService(store)
	taskHandler := handler.NewTaskHandler(taskService, logger, handler.Options{
		MaxLimit: cfg.MaxPageLimit,
		Debug:    cfg.IsDevelopment(),
	})
	systemHandler := handler.NewSystemHandler(cfg.Env, cfg.IsDevelopment())

	r := server.NewRouter(taskHandler, systemHandler, logger, server.Options{
		AccessLog:      cfg.IsDevelopment(),
		AllowedOrigins: []string{cfg.FrontendURL},
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	srv := http.Server{ // Создаем сервер
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Env),
			zap.String("storage", cfg.Storage),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
		return
	}
	logger.Info("Server stopped successfully!")
}

func newLogger(cfg config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
