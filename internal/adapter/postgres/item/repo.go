// Package item implements the Item repository using PostgreSQL.
// Queries are composed with squirrel; every method runs on the transaction
// carried by ctx when there is one.
package item

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/household-backend/internal/adapter/postgres"
	"github.com/heartmarshall/household-backend/internal/domain"
)

const table = "items"

var columns = []string{
	"id", "name", "quantity", "category_id", "list_type", "deleted_from", "deleted_at",
	"recurring_source_id", "created_by", "moved_at", "created_at", "updated_at",
}

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new item and returns the persisted row.
// A duplicate id yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	list, deletedFrom, deletedAt := domain.PlacementColumns(item.Placement)

	query := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(
			item.ID, item.Name, item.Quantity, item.CategoryID, string(list), listPtrToText(deletedFrom), deletedAt,
			item.RecurringSourceID, item.CreatedBy, item.MovedAt, item.CreatedAt, item.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.queryOne(ctx, query, item.ID)
}

// Update applies the non-nil fields of changes to an active item.
// An empty quantity clears it. Trashed or missing items yield domain.ErrNotFound.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, changes domain.ItemChanges) (*domain.Item, error) {
	query := postgres.Builder().
		Update(table).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(columns, ", "))

	if changes.Name != nil {
		query = query.Set("name", *changes.Name)
	}
	if changes.Quantity != nil {
		if *changes.Quantity == "" {
			query = query.Set("quantity", nil)
		} else {
			query = query.Set("quantity", *changes.Quantity)
		}
	}
	if changes.CategoryID != nil {
		query = query.Set("category_id", *changes.CategoryID)
	}

	return r.queryOne(ctx, query, id)
}

// Move puts an active item on another active list and stamps moved_at.
func (r *Repo) Move(ctx context.Context, id uuid.UUID, to domain.Active, movedAt time.Time) (*domain.Item, error) {
	query := postgres.Builder().
		Update(table).
		Set("list_type", string(to.In)).
		Set("moved_at", movedAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.queryOne(ctx, query, id)
}

// Trash soft-deletes an active item. List, origin and deletion time change in
// a single statement, so the row never breaks the trash invariant.
func (r *Repo) Trash(ctx context.Context, id uuid.UUID, to domain.Trashed) (*domain.Item, error) {
	query := postgres.Builder().
		Update(table).
		Set("list_type", string(domain.ListTrash)).
		Set("deleted_from", string(to.From)).
		Set("deleted_at", to.At).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.queryOne(ctx, query, id)
}

// Restore brings a trashed item back onto an active list.
func (r *Repo) Restore(ctx context.Context, id uuid.UUID, to domain.Active) (*domain.Item, error) {
	query := postgres.Builder().
		Update(table).
		Set("list_type", string(to.In)).
		Set("deleted_from", nil).
		Set("deleted_at", nil).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NOT NULL").
		Suffix("RETURNING " + strings.Join(columns, ", "))

	return r.queryOne(ctx, query, id)
}

// HardDelete physically removes an item regardless of its list.
func (r *Repo) HardDelete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// PurgeTrashedBefore hard-deletes trashed items whose deleted_at is older
// than threshold and returns how many were removed.
func (r *Repo) PurgeTrashedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM items WHERE list_type = 'trash' AND deleted_at < $1`,
		threshold,
	)
	if err != nil {
		return 0, fmt.Errorf("purge trashed items: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an item by id, including trashed ones.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id})

	return r.queryOne(ctx, query, id)
}

// FindInventoryDuplicate returns the oldest inventory item whose name equals
// name case-insensitively, ignoring excludeID. Returns domain.ErrNotFound
// when there is none.
func (r *Repo) FindInventoryDuplicate(ctx context.Context, name string, excludeID uuid.UUID) (*domain.Item, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"list_type": string(domain.ListInventory)}).
		Where("lower(name) = lower(?)", domain.NormalizeName(name)).
		Where(sq.NotEq{"id": excludeID}).
		OrderBy("created_at ASC").
		Limit(1)

	return r.queryOne(ctx, query, excludeID)
}

// List returns items matching filter, each with its recurring schedule.
// Trash is ordered by deletion time, other lists by creation time, newest first.
func (r *Repo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	cols := make([]string, 0, len(columns)+len(scheduleColumns))
	for _, c := range columns {
		cols = append(cols, "i."+c)
	}
	cols = append(cols, scheduleColumns...)

	query := postgres.Builder().
		Select(cols...).
		From(table + " i").
		LeftJoin("recurring_schedules rs ON rs.item_id = i.id")

	switch {
	case filter.List == nil:
		query = query.Where("i.deleted_at IS NULL").OrderBy("i.created_at DESC")
	case *filter.List == domain.ListTrash:
		query = query.Where(sq.Eq{"i.list_type": string(domain.ListTrash)}).OrderBy("i.deleted_at DESC")
	default:
		query = query.Where(sq.Eq{"i.list_type": string(*filter.List)}).OrderBy("i.created_at DESC")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var (
			rec   itemRecord
			sched scheduleRecord
		)
		dest := append(rec.dest(), sched.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		item.Schedule = sched.toDomain(item.ID)
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

// Suggest returns distinct non-trashed item names containing query, ranked
// inventory first, then to-buy, then quick-buy.
func (r *Repo) Suggest(ctx context.Context, query string, limit int) ([]domain.Suggestion, error) {
	rank := "CASE list_type WHEN 'inventory' THEN 0 WHEN 'to_buy' THEN 1 ELSE 2 END"

	// The inner select keeps the default placeholder format; the outer
	// builder renumbers everything as $n.
	inner := sq.Select(
		"DISTINCT ON (lower(name)) name", "category_id", "quantity", "list_type", rank+" AS rank",
	).
		From(table).
		Where("deleted_at IS NULL").
		Where(sq.ILike{"name": "%" + escapeLike(query) + "%"}).
		OrderBy("lower(name)", "rank", "updated_at DESC")

	outer := postgres.Builder().
		Select("name", "category_id", "quantity", "list_type").
		FromSelect(inner, "s").
		OrderBy("rank", "name").
		Limit(uint64(limit))

	sql, args, err := outer.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build suggest query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("suggest items: %w", err)
	}
	defer rows.Close()

	var out []domain.Suggestion
	for rows.Next() {
		var (
			s    domain.Suggestion
			list string
		)
		if err := rows.Scan(&s.Name, &s.CategoryID, &s.Quantity, &list); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		s.List = domain.ListType(list)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("suggest items: %w", err)
	}

	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type builder interface {
	ToSql() (string, []any, error)
}

func (r *Repo) queryOne(ctx context.Context, query builder, id uuid.UUID) (*domain.Item, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item query: %w", err)
	}

	var rec itemRecord
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...)
	if err := row.Scan(rec.dest()...); err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	return rec.toDomain()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func listPtrToText(l *domain.ListType) *string {
	if l == nil {
		return nil
	}
	s := string(*l)
	return &s
}
