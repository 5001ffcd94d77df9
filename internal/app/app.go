package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/household-backend/internal/auth"
	"github.com/heartmarshall/household-backend/internal/config"
	"github.com/heartmarshall/household-backend/internal/transport/middleware"
	"github.com/heartmarshall/household-backend/internal/transport/rest"
)

// Run is the HTTP server entry point. It loads configuration, wires the
// services and serves the API until ctx is cancelled, then shuts down the
// server and drains pending activity events.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("recurring_timezone", cfg.Recurring.Timezone),
	)

	core, err := NewCore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer core.Close()

	health := rest.NewHealthHandler(core.Pool, BuildVersion())
	if core.RedisPing != nil {
		health.AddComponent("redis", rest.PingFunc(core.RedisPing))
	}

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	handler := newRouter(routerDeps{
		Health:     health,
		Items:      rest.NewItemHandler(core.Items, logger),
		Recurring:  rest.NewRecurringHandler(core.Recurring, logger),
		Sync:       rest.NewSyncHandler(core.Offline, logger),
		Activities: rest.NewActivityHandler(core.Activities, logger),
		SyncLimit:  limiter.Limit(cfg.RateLimit.SyncPerMinute),
		Middleware: []middleware.Middleware{
			middleware.RequestID,
			middleware.Logger(logger),
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS),
			middleware.Auth(tokens),
		},
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// The dispatcher outlives the request context so that events committed
	// by in-flight requests are still delivered during shutdown.
	g.Go(func() error {
		return core.Dispatcher.Run(context.WithoutCancel(ctx))
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		return errors.Join(
			srv.Shutdown(shutdownCtx),
			core.Dispatcher.Shutdown(shutdownCtx),
		)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("stopped")
	return nil
}
