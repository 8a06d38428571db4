// Command seed replaces all stored tasks with a fixed sample set.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-crud-api/internal/config"
	"github.com/BuzzLyutic/task-crud-api/internal/repo"
	"github.com/BuzzLyutic/task-crud-api/internal/seed"
	"github.com/BuzzLyutic/task-crud-api/internal/service"
)

func main() {
	cfg := config.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Seeding failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	store, closeStore, err := repo.Open(ctx, repo.OpenOptions{
		Kind:        cfg.Storage,
		DatabaseURL: cfg.DatabaseURL,
		AutoMigrate: cfg.AutoMigrate,
	}, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	created, err := seed.Run(ctx, store, time.Now())
	if err != nil {
		return err
	}
	logger.Info("Sample tasks created", zap.Int("count", len(created)))

	stats, err := service.NewTaskService(store).Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Status distribution:")
	for _, s := range stats.StatusStats {
		fmt.Printf("  %s: %d tasks\n", s.Status, s.Count)
	}
	fmt.Println("Priority distribution:")
	for _, p := range stats.PriorityStats {
		fmt.Printf("  %s: %d tasks\n", p.Priority, p.Count)
	}
	return nil
}
