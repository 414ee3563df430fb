package db

import (
	"context"
	"errors"
	"testing"

	"github.com/mercantile-labs/wishlists-backend/pkg/config"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSQLiteClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), config.DBConfig{
		DSN:    "file::memory:?cache=shared",
		Driver: "sqlite",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.DBConfig{}, nil)
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	client := newSQLiteClient(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestWithTxCommits(t *testing.T) {
	client := newSQLiteClient(t)
	require.NoError(t, client.Exec(context.Background(), `CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)`).Error)

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO things (id, name) VALUES (1, 'kept')`).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, client.Raw(context.Background(), `SELECT COUNT(*) FROM things`).Scan(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := newSQLiteClient(t)
	require.NoError(t, client.Exec(context.Background(), `CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)`).Error)

	boom := errors.New("boom")
	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO things (id, name) VALUES (1, 'dropped')`).Error; err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, client.Raw(context.Background(), `SELECT COUNT(*) FROM things`).Scan(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, IsUniqueViolation(nil, ""))
	require.True(t, IsUniqueViolation(errors.New("duplicate key value violates unique constraint \"wishlist_items_pkey\""), ""))
	require.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: wishlist_items.wishlist_id, wishlist_items.product_id"), ""))
	require.True(t, IsUniqueViolation(errors.New("duplicate key value violates unique constraint \"wishlist_items_pkey\""), "wishlist_items_pkey"))
	require.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
}
