// Package recurring implements the RecurringSchedule repository using PostgreSQL.
package recurring

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/household-backend/internal/adapter/postgres"
	"github.com/heartmarshall/household-backend/internal/domain"
)

var dayColumns = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var mondayFirst = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

var scheduleColumns = append(append([]string{"item_id"}, dayColumns...), "last_triggered_at", "created_at", "updated_at")

var sourceColumns = []string{
	"i.id", "i.name", "i.quantity", "i.category_id", "i.list_type", "i.deleted_from", "i.deleted_at",
	"i.recurring_source_id", "i.created_by", "i.moved_at", "i.created_at", "i.updated_at",
}

// Repo provides recurring schedule persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new recurring schedule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert creates the schedule for s.ItemID or replaces its weekdays.
// last_triggered_at survives a replace, so editing a schedule never makes it
// fire twice on the same day.
func (r *Repo) Upsert(ctx context.Context, s domain.RecurringSchedule) (*domain.RecurringSchedule, error) {
	values := []any{s.ItemID}
	for _, d := range mondayFirst {
		values = append(values, s.Days.Has(d))
	}

	updates := make([]string, 0, len(dayColumns)+1)
	for _, c := range dayColumns {
		updates = append(updates, c+" = EXCLUDED."+c)
	}
	updates = append(updates, "updated_at = now()")

	query := postgres.Builder().
		Insert("recurring_schedules").
		Columns(append([]string{"item_id"}, dayColumns...)...).
		Values(values...).
		Suffix("ON CONFLICT (item_id) DO UPDATE SET " + strings.Join(updates, ", ") +
			" RETURNING " + strings.Join(scheduleColumns, ", "))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert schedule query: %w", err)
	}

	var rec scheduleRecord
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(rec.dest()...); err != nil {
		return nil, postgres.MapError(err, "recurring_schedule", s.ItemID)
	}
	return rec.toDomain(), nil
}

// Delete removes the schedule of itemID and reports whether one existed.
func (r *Repo) Delete(ctx context.Context, itemID uuid.UUID) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`DELETE FROM recurring_schedules WHERE item_id = $1`, itemID)
	if err != nil {
		return false, postgres.MapError(err, "recurring_schedule", itemID)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkTriggered records day as the last firing date. It only succeeds when
// the schedule has not fired on day yet, so two concurrent runs cannot both
// claim the same firing: the loser gets domain.ErrConflict.
func (r *Repo) MarkTriggered(ctx context.Context, itemID uuid.UUID, day time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx,
		`UPDATE recurring_schedules
		    SET last_triggered_at = $2::date, updated_at = now()
		  WHERE item_id = $1
		    AND (last_triggered_at IS NULL OR last_triggered_at <> $2::date)`,
		itemID, day,
	)
	if err != nil {
		return postgres.MapError(err, "recurring_schedule", itemID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recurring_schedule %s already triggered on %s: %w",
			itemID, day.Format(time.DateOnly), domain.ErrConflict)
	}
	return nil
}

// GetByItemID returns the schedule owned by itemID.
func (r *Repo) GetByItemID(ctx context.Context, itemID uuid.UUID) (*domain.RecurringSchedule, error) {
	sql, args, err := postgres.Builder().
		Select(scheduleColumns...).
		From("recurring_schedules").
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get schedule query: %w", err)
	}

	var rec scheduleRecord
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(rec.dest()...); err != nil {
		return nil, postgres.MapError(err, "recurring_schedule", itemID)
	}
	return rec.toDomain(), nil
}

// ListWithSource returns every schedule joined with its owning item, ordered
// by item name. Owners in any list are included; callers decide which fire.
func (r *Repo) ListWithSource(ctx context.Context) ([]domain.RecurringEntry, error) {
	cols := make([]string, 0, len(scheduleColumns)+len(sourceColumns))
	for _, c := range scheduleColumns {
		cols = append(cols, "rs."+c)
	}
	cols = append(cols, sourceColumns...)

	sql, args, err := postgres.Builder().
		Select(cols...).
		From("recurring_schedules rs").
		Join("items i ON i.id = rs.item_id").
		OrderBy("lower(i.name)", "i.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list schedules query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list recurring schedules: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RecurringEntry, error) {
		var (
			sched scheduleRecord
			src   sourceRecord
		)
		if err := row.Scan(append(sched.dest(), src.dest()...)...); err != nil {
			return domain.RecurringEntry{}, err
		}
		item, err := src.toDomain()
		if err != nil {
			return domain.RecurringEntry{}, err
		}
		return domain.RecurringEntry{Schedule: *sched.toDomain(), Source: *item}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan recurring schedules: %w", err)
	}

	return entries, nil
}
