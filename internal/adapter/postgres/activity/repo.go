// Package activity implements the Activity repository using PostgreSQL.
// It provides append-only operations for the household activity feed.
package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/household-backend/internal/adapter/postgres"
	"github.com/heartmarshall/household-backend/internal/domain"
)

// Repo provides activity feed persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new activity event.
func (r *Repo) Create(ctx context.Context, evt domain.ActivityEvent) error {
	var metadata []byte
	if len(evt.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(evt.Metadata); err != nil {
			return fmt.Errorf("activity marshal metadata: %w", err)
		}
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`INSERT INTO activities (id, kind, actor_id, subject_id, subject_name, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		evt.ID, string(evt.Kind), evt.ActorID, evt.SubjectID, evt.SubjectName, metadata, evt.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "activity", evt.ID)
	}
	return nil
}

// Consume satisfies the dispatcher sink contract.
func (r *Repo) Consume(ctx context.Context, evt domain.ActivityEvent) error {
	return r.Create(ctx, evt)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns activity events ordered by created_at DESC with pagination.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.ActivityEvent, error) {
	sql, args, err := postgres.Builder().
		Select("id", "kind", "actor_id", "subject_id", "subject_name", "metadata", "created_at").
		From("activities").
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list activities query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("scan activities: %w", err)
	}
	return events, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEvent(row pgx.CollectableRow) (domain.ActivityEvent, error) {
	var (
		evt      domain.ActivityEvent
		kind     string
		metadata []byte
	)
	if err := row.Scan(&evt.ID, &kind, &evt.ActorID, &evt.SubjectID, &evt.SubjectName, &metadata, &evt.CreatedAt); err != nil {
		return domain.ActivityEvent{}, err
	}
	evt.Kind = domain.ActivityKind(kind)

	// metadata: JSONB -> map[string]any
	if len(metadata) > 0 {
		evt.Metadata = make(map[string]any)
		if err := json.Unmarshal(metadata, &evt.Metadata); err != nil {
			return domain.ActivityEvent{}, fmt.Errorf("activity %s unmarshal metadata: %w", evt.ID, err)
		}
	}
	return evt, nil
}
