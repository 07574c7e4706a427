package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactbook/engine/internal/models"
	"github.com/contactbook/engine/internal/testutil"
	appErr "github.com/contactbook/engine/pkg/errors"
)

func seedContact(t *testing.T, repo ContactRepository, owner uuid.UUID, name, category string, at time.Time) models.Contact {
	t.Helper()
	c := models.Contact{
		UserID:    owner,
		Name:      name,
		Category:  category,
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, repo.Create(context.Background(), &c))
	return c
}

func TestContactRepository_CreateAndGetOwned(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()
	alice := testutil.NewUser(t, db, "alice@example.com")
	mallory := testutil.NewUser(t, db, "mallory@example.com")

	c := models.Contact{
		UserID:   alice.ID,
		Name:     "Bob",
		Phones:   []models.Phone{{Number: "555-0100", Label: "work"}, {Number: "555-0101", Label: "mobile"}},
		Category: "Work",
	}
	require.NoError(t, repo.Create(ctx, &c))
	require.NotEqual(t, uuid.Nil, c.ID)
	require.False(t, c.CreatedAt.IsZero())
	require.Equal(t, c.CreatedAt, c.UpdatedAt)

	var got models.Contact
	require.NoError(t, repo.GetOwned(ctx, alice.ID, c.ID, &got))
	assert.Equal(t, "Bob", got.Name)
	assert.Equal(t, []models.Phone{{Number: "555-0100", Label: "work"}, {Number: "555-0101", Label: "mobile"}}, []models.Phone(got.Phones))
	assert.NotNil(t, got.Emails)
	assert.Empty(t, got.Emails)
	assert.Nil(t, got.ProfilePicture)

	err := repo.GetOwned(ctx, mallory.ID, c.ID, &got)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestContactRepository_NameExistsFold(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()
	alice := testutil.NewUser(t, db, "alice@example.com")
	bob := testutil.NewUser(t, db, "bob@example.com")
	seedContact(t, repo, alice.ID, "Alice Smith", "General", time.Now())

	for _, name := range []string{"Alice Smith", "alice smith", "ALICE SMITH"} {
		ok, err := repo.NameExistsFold(ctx, alice.ID, name)
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
	for _, name := range []string{"Alice", "Alice Smith Jr", "%"} {
		ok, err := repo.NameExistsFold(ctx, alice.ID, name)
		require.NoError(t, err)
		assert.False(t, ok, name)
	}

	ok, err := repo.NameExistsFold(ctx, bob.ID, "alice smith")
	require.NoError(t, err)
	assert.False(t, ok, "other owners' contacts must not count")
}

func TestContactRepository_ListFilterAndSort(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()
	owner := testutil.NewUser(t, db, "owner@example.com")
	other := testutil.NewUser(t, db, "other@example.com")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedContact(t, repo, owner.ID, "Charlie", "Work", base)
	seedContact(t, repo, owner.ID, "alfred", "Family", base.Add(time.Minute))
	seedContact(t, repo, owner.ID, "Bernard", "Work", base.Add(2*time.Minute))
	seedContact(t, repo, owner.ID, "100%_real", "General", base.Add(3*time.Minute))
	seedContact(t, repo, other.ID, "Charlotte", "Work", base)

	names := func(cs []models.Contact) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Name
		}
		return out
	}

	t.Run("sort by name ascending", func(t *testing.T) {
		got, err := repo.List(ctx, owner.ID, ContactFilter{SortBy: SortByName})
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_real", "Bernard", "Charlie", "alfred"}, names(got))
	})

	t.Run("sort by created_at descending", func(t *testing.T) {
		got, err := repo.List(ctx, owner.ID, ContactFilter{SortBy: SortByCreatedAt})
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_real", "Bernard", "alfred", "Charlie"}, names(got))
	})

	t.Run("search is case-insensitive substring", func(t *testing.T) {
		got, err := repo.List(ctx, owner.ID, ContactFilter{Search: "AR", SortBy: SortByName})
		require.NoError(t, err)
		assert.Equal(t, []string{"Bernard", "Charlie"}, names(got))
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		got, err := repo.List(ctx, owner.ID, ContactFilter{Search: "%_", SortBy: SortByName})
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_real"}, names(got))

		got, err = repo.List(ctx, owner.ID, ContactFilter{Search: "_", SortBy: SortByName})
		require.NoError(t, err)
		assert.Equal(t, []string{"100%_real"}, names(got))
	})

	t.Run("category and search are conjunctive", func(t *testing.T) {
		got, err := repo.List(ctx, owner.ID, ContactFilter{Search: "char", Category: "Work", SortBy: SortByName})
		require.NoError(t, err)
		assert.Equal(t, []string{"Charlie"}, names(got))

		got, err = repo.List(ctx, owner.ID, ContactFilter{Search: "char", Category: "Family", SortBy: SortByName})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestContactRepository_UpdateOwned(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()
	owner := testutil.NewUser(t, db, "owner@example.com")
	intruder := testutil.NewUser(t, db, "intruder@example.com")

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := seedContact(t, repo, owner.ID, "Dana", "Friends", created)

	c.Notes = "met at conference"
	c.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, repo.UpdateOwned(ctx, owner.ID, &c))

	var got models.Contact
	require.NoError(t, repo.GetOwned(ctx, owner.ID, c.ID, &got))
	assert.Equal(t, "met at conference", got.Notes)
	assert.True(t, got.UpdatedAt.Equal(created.Add(time.Hour)))
	assert.True(t, got.CreatedAt.Equal(created))

	hijack := got
	hijack.Name = "Stolen"
	err := repo.UpdateOwned(ctx, intruder.ID, &hijack)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	require.NoError(t, repo.GetOwned(ctx, owner.ID, c.ID, &got))
	assert.Equal(t, "Dana", got.Name)
}

func TestContactRepository_DeleteOwned(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()
	owner := testutil.NewUser(t, db, "owner@example.com")
	intruder := testutil.NewUser(t, db, "intruder@example.com")
	c := seedContact(t, repo, owner.ID, "Eve", "General", time.Now())

	err := repo.DeleteOwned(ctx, intruder.ID, c.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	require.NoError(t, repo.DeleteOwned(ctx, owner.ID, c.ID))

	err = repo.DeleteOwned(ctx, owner.ID, c.ID)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestContactRepository_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	ctx := context.Background()
	owner := testutil.NewUser(t, db, "owner@example.com")
	other := testutil.NewUser(t, db, "other@example.com")
	now := time.Now()
	seedContact(t, repo, owner.ID, "A", "Work", now)
	seedContact(t, repo, owner.ID, "B", "Work", now)
	seedContact(t, repo, owner.ID, "C", "Deleted Category", now)
	seedContact(t, repo, other.ID, "D", "Work", now)

	total, err := repo.CountByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	rows, err := repo.CountByCategory(ctx, owner.ID)
	require.NoError(t, err)
	got := map[string]int64{}
	for _, r := range rows {
		got[r.Category] = r.Count
	}
	assert.Equal(t, map[string]int64{"Work": 2, "Deleted Category": 1}, got)
}

func TestContactRepository_ListForExportOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewContactRepository(db)
	owner := testutil.NewUser(t, db, "owner@example.com")
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	seedContact(t, repo, owner.ID, "Zed", "General", base)
	seedContact(t, repo, owner.ID, "Amy", "General", base.Add(time.Second))

	got, err := repo.ListForExport(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Zed", got[0].Name)
	assert.Equal(t, "Amy", got[1].Name)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
