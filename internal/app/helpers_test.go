package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func swapNewPool(t *testing.T, fn func(context.Context, string) (*pgxpool.Pool, error)) {
	t.Helper()
	orig := newPool
	newPool = fn
	t.Cleanup(func() { newPool = orig })
}

func TestConnectDbWithRetry_SucceedsAfterFailure(t *testing.T) {
	stubPool := &pgxpool.Pool{}
	attempts := 0
	swapNewPool(t, func(_ context.Context, dsn string) (*pgxpool.Pool, error) {
		require.Equal(t, "postgres://u:p@h:5432/db", dsn)
		attempts++
		if attempts == 1 {
			return nil, errors.New("connection refused")
		}
		return stubPool, nil
	})

	pool, err := connectDbWithRetry(context.Background(), "postgres://u:p@h:5432/db", 3, time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, stubPool, pool)
	require.Equal(t, 2, attempts)
}

func TestConnectDbWithRetry_FailsAfterBudget(t *testing.T) {
	sentinel := errors.New("connection refused")
	attempts := 0
	swapNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		attempts++
		return nil, sentinel
	})

	_, err := connectDbWithRetry(context.Background(), "dsn", 2, time.Millisecond)
	require.ErrorIs(t, err, sentinel)
	require.Contains(t, err.Error(), "after 2 attempts")
	require.Equal(t, 2, attempts)
}

func TestConnectDbWithRetry_StopsOnContextCancel(t *testing.T) {
	swapNewPool(t, func(context.Context, string) (*pgxpool.Pool, error) {
		return nil, errors.New("connection refused")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := connectDbWithRetry(ctx, "dsn", 5, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
}
