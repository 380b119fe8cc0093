package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.SessionTokenKey, []byte("T1")))

	v, err := r.Get(ctx, common.SessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("T1"), v)
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.SessionTokenKey, []byte("old")))
	require.NoError(t, r.Set(ctx, common.SessionTokenKey, []byte("new")))

	v, err := r.Get(ctx, common.SessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestHas(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	ok, err := r.Has(ctx, common.SessionTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, common.SessionTokenKey, []byte("T1")))

	ok, err = r.Has(ctx, common.SessionTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelete_SeveralKeys_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, common.SessionInfoKey, []byte(`{"token":"T1"}`)))
	require.NoError(t, r.Set(ctx, common.SessionTokenKey, []byte("T1")))
	require.NoError(t, r.Set(ctx, "other", []byte("keep")))

	require.NoError(t, r.Delete(ctx, common.SessionInfoKey, common.SessionTokenKey))
	require.NoError(t, r.Delete(ctx, common.SessionInfoKey))
	require.NoError(t, r.Delete(ctx))

	for _, k := range []string{common.SessionInfoKey, common.SessionTokenKey} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v, k)
	}
	v, err := r.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), v)
}

func TestSet_InsideTransaction_RollsBack(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		require.NoError(t, repo.Set(ctx, common.SessionTokenKey, []byte("T1")))
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	ok, err := NewSQLiteRepository(db).Has(ctx, common.SessionTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	_, err = r.Has(ctx, "k")
	require.ErrorContains(t, err, "failed to check metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata")
}
