package item_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/household-backend/internal/adapter/postgres/item"
	"github.com/heartmarshall/household-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/household-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*item.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return item.New(pool), pool
}

func ptr[T any](v T) *T { return &v }

func buildItem(name string, list domain.ListType) *domain.Item {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Item{
		ID:        uuid.New(),
		Name:      name,
		Placement: domain.Active{In: list},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ---------------------------------------------------------------------------
// Create / GetByID
// ---------------------------------------------------------------------------

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	categoryID := testhelper.DefaultCategoryID(t, pool)
	in := buildItem(testhelper.UniqueName("Milch"), domain.ListToBuy)
	in.Quantity = ptr("2 l")
	in.CategoryID = &categoryID
	in.CreatedBy = ptr(uuid.New())

	got, err := repo.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, in.ID, got.ID)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, "2 l", *got.Quantity)
	assert.Equal(t, categoryID, *got.CategoryID)
	assert.Equal(t, domain.Active{In: domain.ListToBuy}, got.Placement)
	assert.Nil(t, got.RecurringSourceID)

	fetched, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Name, fetched.Name)
}

func TestRepo_Create_DuplicateID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	in := buildItem(testhelper.UniqueName("Brot"), domain.ListQuickBuy)
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	_, err = repo.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetByID_IncludesTrashed(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	seeded := testhelper.SeedTrashedItem(t, pool, testhelper.UniqueName("Alt"), domain.ListInventory, time.Now())

	got, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.True(t, got.IsTrashed())
	assert.Equal(t, domain.ListInventory, *got.DeletedFrom())
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestRepo_Update_Partial(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	in := buildItem(testhelper.UniqueName("Eier"), domain.ListToBuy)
	in.Quantity = ptr("6")
	_, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Update(ctx, in.ID, domain.ItemChanges{Quantity: ptr("10")})
	require.NoError(t, err)
	assert.Equal(t, in.Name, got.Name, "name must stay untouched")
	assert.Equal(t, "10", *got.Quantity)
	assert.True(t, got.UpdatedAt.After(in.UpdatedAt) || got.UpdatedAt.Equal(in.UpdatedAt))

	got, err = repo.Update(ctx, in.ID, domain.ItemChanges{Quantity: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, got.Quantity, "empty quantity clears the column")
}

func TestRepo_Update_TrashedIsNotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	seeded := testhelper.SeedTrashedItem(t, pool, testhelper.UniqueName("Weg"), domain.ListToBuy, time.Now())

	_, err := repo.Update(context.Background(), seeded.ID, domain.ItemChanges{Name: ptr("Neu")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Move / Trash / Restore / HardDelete
// ---------------------------------------------------------------------------

func TestRepo_TrashAndRestore_RoundTrip(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedItem(t, pool, testhelper.UniqueName("Kaffee"), domain.ListInventory)
	at := time.Now().UTC().Truncate(time.Microsecond)

	trashed, err := repo.Trash(ctx, seeded.ID, domain.Trashed{From: domain.ListInventory, At: at})
	require.NoError(t, err)
	assert.Equal(t, domain.ListTrash, trashed.List())
	require.NotNil(t, trashed.DeletedAt())
	assert.True(t, at.Equal(*trashed.DeletedAt()))

	// Trashing twice finds no active row.
	_, err = repo.Trash(ctx, seeded.ID, domain.Trashed{From: domain.ListInventory, At: at})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	restored, err := repo.Restore(ctx, seeded.ID, domain.Active{In: domain.ListInventory})
	require.NoError(t, err)
	assert.Equal(t, domain.Active{In: domain.ListInventory}, restored.Placement)
	assert.Nil(t, restored.DeletedAt())
	assert.Nil(t, restored.DeletedFrom())

	// Restoring an active item finds no trashed row.
	_, err = repo.Restore(ctx, seeded.ID, domain.Active{In: domain.ListInventory})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Move_StampsMovedAt(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	seeded := testhelper.SeedItem(t, pool, testhelper.UniqueName("Tee"), domain.ListQuickBuy)
	movedAt := time.Now().UTC().Truncate(time.Microsecond)

	got, err := repo.Move(context.Background(), seeded.ID, domain.Active{In: domain.ListToBuy}, movedAt)
	require.NoError(t, err)
	assert.Equal(t, domain.ListToBuy, got.List())
	require.NotNil(t, got.MovedAt)
	assert.True(t, movedAt.Equal(*got.MovedAt))
}

func TestRepo_Move_TrashedIsNotFound(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	seeded := testhelper.SeedTrashedItem(t, pool, testhelper.UniqueName("Reis"), domain.ListToBuy, time.Now())

	_, err := repo.Move(context.Background(), seeded.ID, domain.Active{In: domain.ListInventory}, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_HardDelete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedItem(t, pool, testhelper.UniqueName("Salz"), domain.ListToBuy)

	require.NoError(t, repo.HardDelete(ctx, seeded.ID))

	_, err := repo.GetByID(ctx, seeded.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.HardDelete(ctx, seeded.ID), domain.ErrNotFound)
}

func TestRepo_HardDelete_CascadesSchedule(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedItem(t, pool, testhelper.UniqueName("Wasser"), domain.ListInventory)
	testhelper.SeedSchedule(t, pool, seeded.ID, time.Monday)

	require.NoError(t, repo.HardDelete(ctx, seeded.ID))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM recurring_schedules WHERE item_id = $1`, seeded.ID).Scan(&count))
	assert.Zero(t, count)
}

// ---------------------------------------------------------------------------
// FindInventoryDuplicate
// ---------------------------------------------------------------------------

func TestRepo_FindInventoryDuplicate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	name := testhelper.UniqueName("Hafermilch")
	existing := testhelper.SeedItem(t, pool, name, domain.ListInventory)
	moving := testhelper.SeedItem(t, pool, name, domain.ListToBuy)

	t.Run("case insensitive match", func(t *testing.T) {
		got, err := repo.FindInventoryDuplicate(ctx, "  "+strings.ToUpper(name)+" ", moving.ID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, got.ID)
	})

	t.Run("excludes own id", func(t *testing.T) {
		_, err := repo.FindInventoryDuplicate(ctx, name, existing.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ignores trashed inventory", func(t *testing.T) {
		trashedName := testhelper.UniqueName("Senf")
		testhelper.SeedTrashedItem(t, pool, trashedName, domain.ListInventory, time.Now())
		_, err := repo.FindInventoryDuplicate(ctx, trashedName, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// ---------------------------------------------------------------------------
// List / Suggest / Purge
// ---------------------------------------------------------------------------

func TestRepo_List_ByListWithSchedule(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	scheduled := testhelper.SeedItem(t, pool, testhelper.UniqueName("Brot"), domain.ListInventory)
	testhelper.SeedSchedule(t, pool, scheduled.ID, time.Monday, time.Thursday)

	list := domain.ListInventory
	items, err := repo.List(ctx, domain.ItemFilter{List: &list})
	require.NoError(t, err)

	var found *domain.Item
	for i := range items {
		assert.Equal(t, domain.ListInventory, items[i].List())
		if items[i].ID == scheduled.ID {
			found = &items[i]
		}
	}
	require.NotNil(t, found)
	require.NotNil(t, found.Schedule)
	assert.Equal(t, domain.NewWeekdaySet(time.Monday, time.Thursday), found.Schedule.Days)
}

func TestRepo_List_TrashNewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	now := time.Now().UTC()
	older := testhelper.SeedTrashedItem(t, pool, testhelper.UniqueName("A"), domain.ListToBuy, now.Add(-2*time.Hour))
	newer := testhelper.SeedTrashedItem(t, pool, testhelper.UniqueName("B"), domain.ListToBuy, now.Add(-time.Hour))

	list := domain.ListTrash
	items, err := repo.List(context.Background(), domain.ItemFilter{List: &list})
	require.NoError(t, err)

	pos := map[uuid.UUID]int{}
	for i, it := range items {
		pos[it.ID] = i
	}
	assert.Less(t, pos[newer.ID], pos[older.ID])
}

func TestRepo_Suggest_RanksInventoryFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	marker := uuid.New().String()[:8]
	testhelper.SeedItem(t, pool, "Quick "+marker, domain.ListQuickBuy)
	testhelper.SeedItem(t, pool, "Buy "+marker, domain.ListToBuy)
	testhelper.SeedItem(t, pool, "Inv "+marker, domain.ListInventory)
	testhelper.SeedItem(t, pool, "inv "+marker, domain.ListToBuy) // same name, lower rank
	testhelper.SeedTrashedItem(t, pool, "Gone "+marker, domain.ListToBuy, time.Now())

	got, err := repo.Suggest(ctx, marker, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.ListInventory, got[0].List)
	assert.Equal(t, domain.ListToBuy, got[1].List)
	assert.Equal(t, domain.ListQuickBuy, got[2].List)

	limited, err := repo.Suggest(ctx, marker, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRepo_Suggest_EscapesWildcards(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	got, err := repo.Suggest(context.Background(), "%_no-such-item_%", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepo_PurgeTrashedBefore(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	old := testhelper.SeedTrashedItem(t, pool, testhelper.UniqueName("Alt"), domain.ListToBuy, time.Now().AddDate(0, 0, -40))
	fresh := testhelper.SeedTrashedItem(t, pool, testhelper.UniqueName("Neu"), domain.ListToBuy, time.Now())

	deleted, err := repo.PurgeTrashedBefore(ctx, time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	_, err = repo.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, fresh.ID)
	assert.NoError(t, err)
}
