package repository

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"
	"quill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func seedAuthorWithPosts(t *testing.T, repos Repositories) (*models.User, []*models.Post) {
	t.Helper()
	ctx := context.Background()

	author := &models.User{Email: "john@example.com", Name: strPtr("John"), Password: "digest"}
	require.NoError(t, repos.Users.Create(ctx, author))

	posts := []*models.Post{
		{Title: "First", Content: strPtr("one"), Published: true, AuthorID: author.ID},
		{Title: "Draft", AuthorID: author.ID},
	}
	for _, p := range posts {
		require.NoError(t, repos.Posts.Create(ctx, p))
	}
	return author, posts
}

func TestPostRepository_ListFilter(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repos := NewRepositories(db, nil)
	ctx := context.Background()
	_, posts := seedAuthorWithPosts(t, repos)

	all, err := repos.Posts.List(ctx, PostFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, posts[0].ID, all[0].ID)
	require.NotNil(t, all[0].Author)
	assert.Equal(t, "john@example.com", all[0].Author.Email)

	published := true
	onlyPublished, err := repos.Posts.List(ctx, PostFilter{Published: &published})
	require.NoError(t, err)
	require.Len(t, onlyPublished, 1)
	assert.Equal(t, "First", onlyPublished[0].Title)

	unpublished := false
	drafts, err := repos.Posts.List(ctx, PostFilter{Published: &unpublished})
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Draft", drafts[0].Title)
}

func TestPostRepository_GetDetail(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repos := NewRepositories(db, nil)
	ctx := context.Background()
	author, posts := seedAuthorWithPosts(t, repos)

	detail, err := repos.Posts.GetDetail(ctx, posts[1].ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Comments)
	assert.Empty(t, detail.Comments)

	c := &models.Comment{Content: "nice", PostID: posts[1].ID, AuthorID: author.ID}
	require.NoError(t, repos.Comments.Create(ctx, c))
	require.NotNil(t, c.Author)
	require.NotNil(t, c.Post)
	assert.Equal(t, "Draft", c.Post.Title)

	detail, err = repos.Posts.GetDetail(ctx, posts[1].ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "nice", detail.Comments[0].Content)

	_, err = repos.Posts.GetDetail(ctx, 999)
	assert.True(t, models.IsNotFound(err, "Post"))
}

func TestPostRepository_UpdateTouchesOnlyGivenFields(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repos := NewRepositories(db, nil)
	ctx := context.Background()
	_, posts := seedAuthorWithPosts(t, repos)

	updated, err := repos.Posts.Update(ctx, posts[0].ID, map[string]any{"title": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.Content)
	assert.Equal(t, "one", *updated.Content)
	assert.True(t, updated.Published)

	unchanged, err := repos.Posts.Update(ctx, posts[0].ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", unchanged.Title)

	_, err = repos.Posts.Update(ctx, 999, map[string]any{"title": "x"})
	assert.True(t, models.IsNotFound(err, "Post"))
}

func TestPostRepository_IDsAndDeleteByAuthor(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repos := NewRepositories(db, nil)
	ctx := context.Background()
	author, posts := seedAuthorWithPosts(t, repos)

	ids, err := repos.Posts.IDsByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{posts[0].ID, posts[1].ID}, ids)

	n, err := repos.Posts.DeleteByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ids, err = repos.Posts.IDsByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUserRepository_SQLiteUniqueEmail(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repos := NewRepositories(db, nil)
	ctx := context.Background()
	author, _ := seedAuthorWithPosts(t, repos)

	err := repos.Users.Create(ctx, &models.User{Email: "john@example.com", Password: "other"})
	assert.ErrorIs(t, err, models.ErrEmailExists)

	other := &models.User{Email: "jane@example.com", Password: "digest"}
	require.NoError(t, repos.Users.Create(ctx, other))
	_, err = repos.Users.Update(ctx, other.ID, map[string]any{"email": author.Email})
	assert.ErrorIs(t, err, models.ErrEmailExists)

	stored, err := repos.Users.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", stored.Email)
}

func TestUnitOfWork_TransactionalRollsBack(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	base := NewRepositories(db, nil)
	ctx := context.Background()
	author, _ := seedAuthorWithPosts(t, base)

	uow := NewTxUnitOfWork(db, nil)
	assert.True(t, uow.Atomic())

	boom := errors.New("boom")
	err := uow.Do(ctx, func(repos Repositories) error {
		if _, err := repos.Posts.DeleteByAuthor(ctx, author.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ids, err := base.Posts.IDsByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestUnitOfWork_SequentialKeepsCompletedSteps(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	base := NewRepositories(db, nil)
	ctx := context.Background()
	author, _ := seedAuthorWithPosts(t, base)

	uow := NewSequentialUnitOfWork(base)
	assert.False(t, uow.Atomic())

	err := uow.Do(ctx, func(repos Repositories) error {
		if _, err := repos.Posts.DeleteByAuthor(ctx, author.ID); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	assert.Error(t, err)

	ids, err := base.Posts.IDsByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
