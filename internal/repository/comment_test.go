package repository

import (
	"context"
	"regexp"
	"testing"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_DeleteByPostIDs_Empty(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	n, err := repo.DeleteByPostIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	// no statement is issued
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteByPostIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE post_id IN ($1,$2)`)).
		WithArgs(1, 3).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	n, err := repo.DeleteByPostIDs(context.Background(), []uint{1, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_DeleteByAuthor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE author_id = $1`)).
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := repo.DeleteByAuthor(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comments" WHERE "comments"."id" = $1`)).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 8)
	assert.True(t, models.IsNotFound(err, "Comment"))
	assert.Equal(t, "Comment not found", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
