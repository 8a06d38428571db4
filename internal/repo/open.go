package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	KindPostgres = "postgres"
	KindMemory   = "memory"
)

type OpenOptions struct {
	Kind        string // postgres | memory
	DatabaseURL string
	AutoMigrate bool
}

// Open returns the configured store and a function that releases it.
func Open(ctx context.Context, opts OpenOptions, logger *zap.Logger) (TaskRepository, func(), error) {
	switch opts.Kind {
	case KindMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return NewMemoryRepo(), func() {}, nil
	case KindPostgres, "":
	default:
		return nil, nil, errors.Errorf("unknown storage %q", opts.Kind)
	}

	pool, err := pgxpool.New(ctx, opts.DatabaseURL) // Создаем пул соединений к БД
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := pool.Ping(ctx); err != nil { // Пытаемся пингануть БД
		pool.Close()
		return nil, nil, errors.Wrap(err, "failed to ping database")
	}
	logger.Info("Successfully connected to the Database!")

	if opts.AutoMigrate {
		if err := Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	return NewTaskRepo(pool), pool.Close, nil
}
