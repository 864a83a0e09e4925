package sqlite_test

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptions_Integration(t *testing.T) {
	repo := newTestDB(t)
	ctx := t.Context()

	created, err := repo.Subscribe(ctx, 42, "alice")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Subscribe(ctx, 42, "alice")
	require.NoError(t, err)
	assert.False(t, created, "second subscription of the same chat")

	created, err = repo.Subscribe(ctx, -7, "")
	require.NoError(t, err)
	assert.True(t, created)

	chats, err := repo.SubscribedChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{-7, 42}, chats)

	removed, err := repo.Unsubscribe(ctx, 42)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Unsubscribe(ctx, 42)
	require.NoError(t, err)
	assert.False(t, removed)

	chats, err = repo.SubscribedChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{-7}, chats)
}

func TestSubscriptions_NoChats(t *testing.T) {
	repo := newTestDB(t)

	chats, err := repo.SubscribedChats(t.Context())
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestSubscriptions_Failures(t *testing.T) {
	t.Run("subscribe exec", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectExec("INSERT INTO subscriptions").
			WithArgs(int64(42), "alice").
			WillReturnError(assert.AnError)

		_, err := repo.Subscribe(t.Context(), 42, "alice")

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "repository.sqlite.Subscribe")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("subscribe affected rows", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectExec("INSERT INTO subscriptions").
			WillReturnResult(sqlmock.NewErrorResult(assert.AnError))

		_, err := repo.Subscribe(t.Context(), 42, "alice")

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to read affected rows")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unsubscribe exec", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectExec("DELETE FROM subscriptions").
			WithArgs(int64(42)).
			WillReturnError(assert.AnError)

		_, err := repo.Unsubscribe(t.Context(), 42)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "repository.sqlite.Unsubscribe")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list query", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT chat_id FROM subscriptions").WillReturnError(assert.AnError)

		_, err := repo.SubscribedChats(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list scan", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		mock.ExpectQuery("SELECT chat_id FROM subscriptions").
			WillReturnRows(sqlmock.NewRows([]string{"chat_id"}).AddRow("not-a-number"))

		_, err := repo.SubscribedChats(t.Context())

		require.ErrorContains(t, err, "failed to scan chat_id")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list rows", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		rowErr := errors.New("connection reset")
		mock.ExpectQuery("SELECT chat_id FROM subscriptions").
			WillReturnRows(sqlmock.NewRows([]string{"chat_id"}).AddRow(int64(1)).RowError(0, rowErr))

		_, err := repo.SubscribedChats(t.Context())

		require.ErrorIs(t, err, rowErr)
		require.ErrorContains(t, err, "rows iteration error")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
