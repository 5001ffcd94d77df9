// Command recurring creates today's to-buy copies of scheduled inventory
// items. It is intended to be invoked once a day by an external cron job;
// running it again on the same day creates nothing new.
//
// Exit codes: 0 = success, 1 = error or some schedules could not be processed.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/household-backend/internal/app"
	"github.com/heartmarshall/household-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	os.Exit(run(ctx, cfg, logger))
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) int {
	core, err := app.NewCore(ctx, cfg, logger)
	if err != nil {
		logger.Error("init", slog.String("error", err.Error()))
		return 1
	}
	defer core.Close()

	go core.Dispatcher.Run(context.WithoutCancel(ctx)) //nolint:errcheck

	res, err := core.Recurring.RunDailyCheck(ctx)

	if shutdownErr := core.Dispatcher.Shutdown(ctx); shutdownErr != nil {
		logger.Warn("activity delivery incomplete", slog.String("error", shutdownErr.Error()))
	}

	if err != nil {
		logger.Error("recurring check failed", slog.String("error", err.Error()))
		return 1
	}

	if res.Failed > 0 {
		logger.Error("some schedules were not processed",
			slog.String("date", res.Date.Format(time.DateOnly)),
			slog.Int("failed", res.Failed),
		)
		return 1
	}
	return 0
}
