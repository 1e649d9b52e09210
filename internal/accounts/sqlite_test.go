package accounts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/moneta-app/moneta/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE accounts (
  id            TEXT PRIMARY KEY,
  email         TEXT NOT NULL UNIQUE,
  first_name    TEXT NOT NULL,
  last_name     TEXT NOT NULL,
  phone         TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  is_active     INTEGER NOT NULL DEFAULT 0,
  created_at    TIMESTAMP NOT NULL,
  updated_at    TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func mustCreate(t *testing.T, r *SQLiteRepository, email string) *Account {
	t.Helper()
	a, err := r.Create(context.Background(), &Account{
		Email:        email,
		FirstName:    "Jane",
		LastName:     "Doe",
		Phone:        "555-0100",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return a
}

func countActive(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE is_active = 1`).Scan(&n))
	return n
}

func TestCreate_AssignsIDAndStartsInactive(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	a := mustCreate(t, r, "jane@x.com")
	require.NotEmpty(t, a.ID)
	require.False(t, a.IsActive, "new accounts start inactive")
	require.False(t, a.CreatedAt.IsZero())

	got, err := r.FindByEmail(context.Background(), "jane@x.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	mustCreate(t, r, "jane@x.com")
	_, err := r.Create(context.Background(), &Account{
		Email: "jane@x.com", FirstName: "J", LastName: "D", PasswordHash: "h",
	})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestFindByEmail_CaseSensitive(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	mustCreate(t, r, "jane@x.com")
	_, err := r.FindByEmail(context.Background(), "Jane@X.com")
	require.ErrorIs(t, err, common.ErrNotFound, "lookup is byte-exact")
}

func TestActivate_SingleActiveInvariant(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := mustCreate(t, r, "a@x.com")
	b := mustCreate(t, r, "b@x.com")

	require.NoError(t, r.Activate(ctx, a.ID))
	require.Equal(t, 1, countActive(t, db))

	require.NoError(t, r.Activate(ctx, b.ID))
	require.Equal(t, 1, countActive(t, db), "activating b must deactivate a")

	active, err := r.FindActive(ctx)
	require.NoError(t, err)
	require.Equal(t, b.ID, active.ID)
}

func TestActivate_ReActivatingCurrent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := mustCreate(t, r, "a@x.com")
	require.NoError(t, r.Activate(ctx, a.ID))
	require.NoError(t, r.Activate(ctx, a.ID))
	require.Equal(t, 1, countActive(t, db))
}

func TestActivate_UnknownIDKeepsPreviousActive(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := mustCreate(t, r, "a@x.com")
	require.NoError(t, r.Activate(ctx, a.ID))

	err := r.Activate(ctx, "missing-id")
	require.ErrorIs(t, err, common.ErrNotFound)

	// the failed activation rolls back; a stays active
	active, err := r.FindActive(ctx)
	require.NoError(t, err)
	require.Equal(t, a.ID, active.ID)
}

func TestDeactivateAll(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	a := mustCreate(t, r, "a@x.com")
	require.NoError(t, r.Activate(ctx, a.ID))

	require.NoError(t, r.DeactivateAll(ctx))
	require.Equal(t, 0, countActive(t, db))

	// idempotent on an already-clean table
	require.NoError(t, r.DeactivateAll(ctx))

	_, err := r.FindActive(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a := mustCreate(t, r, "a@x.com")

	first := "Janet"
	require.NoError(t, r.UpdateProfile(ctx, a.ID, ProfileUpdate{FirstName: &first}))

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Janet", got.FirstName)
	require.Equal(t, "Doe", got.LastName, "untouched fields keep their values")
	require.Equal(t, "555-0100", got.Phone)
}

func TestUpdateProfile_NoFieldsIsNoop(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	a := mustCreate(t, r, "a@x.com")
	require.NoError(t, r.UpdateProfile(context.Background(), a.ID, ProfileUpdate{}))
}

func TestUpdateProfile_UnknownID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	first := "X"
	err := r.UpdateProfile(context.Background(), "missing", ProfileUpdate{FirstName: &first})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	a := mustCreate(t, r, "a@x.com")
	require.NoError(t, r.Delete(ctx, a.ID))

	_, err := r.FindByID(ctx, a.ID)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.ErrorIs(t, r.Delete(ctx, a.ID), common.ErrNotFound)
}
