package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/household-backend/internal/adapter/feed"
	postgres "github.com/heartmarshall/household-backend/internal/adapter/postgres"
	activityrepo "github.com/heartmarshall/household-backend/internal/adapter/postgres/activity"
	"github.com/heartmarshall/household-backend/internal/adapter/postgres/category"
	itemrepo "github.com/heartmarshall/household-backend/internal/adapter/postgres/item"
	recurringrepo "github.com/heartmarshall/household-backend/internal/adapter/postgres/recurring"
	"github.com/heartmarshall/household-backend/internal/adapter/redis"
	"github.com/heartmarshall/household-backend/internal/config"
	"github.com/heartmarshall/household-backend/internal/domain"
	"github.com/heartmarshall/household-backend/internal/service/activity"
	"github.com/heartmarshall/household-backend/internal/service/item"
	"github.com/heartmarshall/household-backend/internal/service/offline"
	"github.com/heartmarshall/household-backend/internal/service/recurring"
	"github.com/heartmarshall/household-backend/pkg/clock"
)

// Core holds the services shared by the server and the one-shot commands.
// The caller must run Dispatcher and call Close when done.
type Core struct {
	Pool       *pgxpool.Pool
	Dispatcher *feed.Dispatcher

	Items      *item.Service
	Recurring  *recurring.Service
	Activities *activity.Service
	Offline    *offline.Service

	// RedisPing is nil when realtime publishing is disabled.
	RedisPing func(ctx context.Context) error

	closers []func() error
}

// NewCore connects to the database (and Redis, when configured) and wires
// repositories, the activity dispatcher and the domain services.
func NewCore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Core, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	c := &Core{Pool: pool}
	c.closers = append(c.closers, func() error { pool.Close(); return nil })

	activities := activityrepo.New(pool)
	sinks := []feed.Sink{activities}

	if cfg.Redis.Enabled() {
		client, closeClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.closers = append(c.closers, closeClient)
		c.RedisPing = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		sinks = append(sinks, redis.NewPublisher(client, cfg.Redis.Channel))
		logger.Info("realtime activity publishing enabled", slog.String("channel", cfg.Redis.Channel))
	}

	defaultCategory, err := resolveDefaultCategory(ctx, cfg.Catalog, category.New(pool), logger)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Dispatcher = feed.NewDispatcher(logger, cfg.Activity.BufferSize, sinks...)

	tx := postgres.NewTxManager(pool)
	items := itemrepo.New(pool)
	clk := clock.System{}

	c.Items = item.NewService(logger, items, c.Dispatcher, tx, clk, item.Options{
		DefaultCategoryID:     defaultCategory,
		SuggestMinQueryLength: cfg.Suggestions.MinQueryLength,
		SuggestMaxResults:     cfg.Suggestions.MaxResults,
	})
	c.Recurring = recurring.NewService(logger, recurringrepo.New(pool), items, c.Dispatcher, tx, clk, cfg.Recurring.Location)
	c.Activities = activity.NewService(logger, activities, cfg.Activity.PageSize)
	c.Offline = offline.NewService(logger, c.Items, tx, cfg.Sync.MaxBatchSize)

	return c, nil
}

// Close releases connections in reverse order of acquisition.
func (c *Core) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
	c.closers = nil
}

type categoryResolver interface {
	IDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
}

// resolveDefaultCategory returns the category assigned to items created
// without one. A configured id wins over the slug. A missing slug category
// is not fatal: such items stay uncategorised.
func resolveDefaultCategory(ctx context.Context, cfg config.CatalogConfig, categories categoryResolver, logger *slog.Logger) (uuid.UUID, error) {
	if id, ok := cfg.DefaultCategoryUUID(); ok {
		return id, nil
	}
	if cfg.DefaultCategorySlug == "" {
		return uuid.Nil, nil
	}

	id, err := categories.IDBySlug(ctx, cfg.DefaultCategorySlug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Warn("default category not found, new items stay uncategorised",
			slog.String("slug", cfg.DefaultCategorySlug))
		return uuid.Nil, nil
	case err != nil:
		return uuid.Nil, fmt.Errorf("resolve default category: %w", err)
	}
	return id, nil
}
