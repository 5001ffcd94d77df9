package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/household-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueName returns prefix with a random suffix, so parallel tests never
// trip over each other's inventory duplicates.
func UniqueName(prefix string) string {
	return prefix + " " + uniqueSuffix()
}

// DefaultCategoryID returns the id of the "other" category seeded by migrations.
func DefaultCategoryID(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(), `SELECT id FROM categories WHERE slug = 'other'`).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: DefaultCategoryID: %v", err)
	}
	return id
}

// SeedItem inserts an active item on list and returns it.
func SeedItem(t *testing.T, pool *pgxpool.Pool, name string, list domain.ListType) domain.Item {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.Item{
		ID:        uuid.New(),
		Name:      name,
		Placement: domain.Active{In: list},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO items (id, name, list_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.Name, string(list), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert: %v", err)
	}

	return item
}

// SeedTrashedItem inserts an item that is already in the trash.
func SeedTrashedItem(t *testing.T, pool *pgxpool.Pool, name string, from domain.ListType, deletedAt time.Time) domain.Item {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	deletedAt = deletedAt.UTC().Truncate(time.Microsecond)
	item := domain.Item{
		ID:        uuid.New(),
		Name:      name,
		Placement: domain.Trashed{From: from, At: deletedAt},
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO items (id, name, list_type, deleted_from, deleted_at, created_at, updated_at)
		 VALUES ($1, $2, 'trash', $3, $4, $5, $6)`,
		item.ID, item.Name, string(from), deletedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTrashedItem insert: %v", err)
	}

	return item
}

// SeedSchedule attaches a weekday schedule to itemID.
func SeedSchedule(t *testing.T, pool *pgxpool.Pool, itemID uuid.UUID, days ...time.Weekday) domain.RecurringSchedule {
	t.Helper()

	set := domain.NewWeekdaySet(days...)
	_, err := pool.Exec(context.Background(),
		`INSERT INTO recurring_schedules (item_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		itemID,
		set.Has(time.Monday), set.Has(time.Tuesday), set.Has(time.Wednesday), set.Has(time.Thursday),
		set.Has(time.Friday), set.Has(time.Saturday), set.Has(time.Sunday),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSchedule insert: %v", err)
	}

	return domain.RecurringSchedule{ItemID: itemID, Days: set}
}
