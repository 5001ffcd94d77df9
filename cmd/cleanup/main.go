// Command cleanup permanently removes items that have sat in the trash longer
// than the retention period. Run it from cron; the server never purges on its
// own.
//
//	cleanup [-retention-days N]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/household-backend/internal/app"
	"github.com/heartmarshall/household-backend/internal/config"
)

const runTimeout = 5 * time.Minute

func main() {
	retentionDays := flag.Int("retention-days", 0, "override trash.retention_days from config (0 = use config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *retentionDays < 0 {
		log.Fatalf("retention-days must be >= 0, got %d", *retentionDays)
	}
	if *retentionDays > 0 {
		cfg.Trash.RetentionDays = *retentionDays
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
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

	started := time.Now()
	purged, err := core.Items.PurgeTrash(ctx, cfg.Trash.Retention())
	if err != nil {
		logger.Error("trash purge failed",
			slog.String("error", err.Error()),
			slog.Int("retention_days", cfg.Trash.RetentionDays),
		)
		return 1
	}

	logger.Info("trash purged",
		slog.Int64("purged", purged),
		slog.Int("retention_days", cfg.Trash.RetentionDays),
		slog.Duration("took", time.Since(started)),
	)
	return 0
}
