package repository

import (
	"context"
	"testing"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client), mr
}

func TestTxUnitOfWork_EvictsUserAfterCommit(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	c, mr := newTestCache(t)
	ctx := context.Background()

	user := &models.User{Email: "gone@example.com", Password: "digest"}
	require.NoError(t, NewRepositories(db, c).Users.Create(ctx, user))
	key := cache.UserKey(user.ID)

	err := NewTxUnitOfWork(db, c).Do(ctx, func(repos Repositories) error {
		if err := repos.Users.Delete(ctx, user.ID); err != nil {
			return err
		}
		// a reader outside the transaction refills the entry before commit
		require.NoError(t, mr.Set(key, `{"id":1,"email":"gone@example.com"}`))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))
}

func TestTxUnitOfWork_FlushesAfterCommit(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, NewRepositories(db, c).Users.Create(ctx, &models.User{Email: "a@example.com", Password: "digest"}))

	err := NewTxUnitOfWork(db, c).Do(ctx, func(repos Repositories) error {
		if _, err := repos.Users.DeleteAll(ctx); err != nil {
			return err
		}
		require.NoError(t, mr.Set(cache.UserKey(7), "{}"))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.UserKey(7)))
}
