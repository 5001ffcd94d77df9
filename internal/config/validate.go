package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // recurring.timezone must resolve in minimal images

	"github.com/google/uuid"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if c.Sync.MaxBatchSize <= 0 {
		return fmt.Errorf("sync.max_batch_size must be > 0 (got %d)", c.Sync.MaxBatchSize)
	}

	if err := c.Recurring.validate(); err != nil {
		return fmt.Errorf("recurring: %w", err)
	}

	if c.Trash.RetentionDays <= 0 {
		return fmt.Errorf("trash.retention_days must be > 0 (got %d)", c.Trash.RetentionDays)
	}

	if err := c.Catalog.validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	if c.Suggestions.MinQueryLength < 0 {
		return fmt.Errorf("suggestions.min_query_length must be >= 0 (got %d)", c.Suggestions.MinQueryLength)
	}
	if c.Suggestions.MaxResults <= 0 {
		return fmt.Errorf("suggestions.max_results must be > 0 (got %d)", c.Suggestions.MaxResults)
	}

	if c.Activity.BufferSize <= 0 {
		return fmt.Errorf("activity.buffer_size must be > 0 (got %d)", c.Activity.BufferSize)
	}
	if c.Activity.PageSize <= 0 || c.Activity.PageSize > 200 {
		return fmt.Errorf("activity.page_size must be in 1..200 (got %d)", c.Activity.PageSize)
	}

	if c.Redis.Enabled() && strings.TrimSpace(c.Redis.Channel) == "" {
		return fmt.Errorf("redis.channel is required when redis.addr is set")
	}

	if c.RateLimit.SyncPerMinute < 0 {
		return fmt.Errorf("rate_limit.sync_per_minute must be >= 0, 0 disables it (got %d)", c.RateLimit.SyncPerMinute)
	}

	return nil
}

func (l LogConfig) validate() error {
	if !slices.Contains(validLogLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("unknown level %q", l.Level)
	}
	if !slices.Contains(validLogFormats, strings.ToLower(l.Format)) {
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}

func (r *RecurringConfig) validate() error {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", r.Timezone, err)
	}
	r.Location = loc
	return nil
}

func (c CatalogConfig) validate() error {
	if c.DefaultCategoryID != "" {
		if _, err := uuid.Parse(c.DefaultCategoryID); err != nil {
			return fmt.Errorf("default_category_id %q is not a uuid", c.DefaultCategoryID)
		}
		return nil
	}
	if strings.TrimSpace(c.DefaultCategorySlug) == "" {
		return fmt.Errorf("default_category_slug or default_category_id is required")
	}
	return nil
}
