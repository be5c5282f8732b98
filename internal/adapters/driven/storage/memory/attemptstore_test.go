package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

func TestAttemptStore_CreateOpensInProgress(t *testing.T) {
	store := NewAttemptStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "adzuna", "go developer")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	attempts, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, domain.AttemptInProgress, attempts[0].Status)
	assert.Equal(t, "adzuna", attempts[0].Provider)
	assert.Nil(t, attempts[0].CompletedAt)
}

func TestAttemptStore_CloseRecordsOutcome(t *testing.T) {
	store := NewAttemptStore()
	ctx := context.Background()

	id, err := store.Create(ctx, "remotive", "sre")
	require.NoError(t, err)

	require.NoError(t, store.Close(ctx, id, domain.AttemptSuccess, 12, 9, ""))

	attempts, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, domain.AttemptSuccess, attempts[0].Status)
	assert.Equal(t, 12, attempts[0].Found)
	assert.Equal(t, 9, attempts[0].Saved)
	assert.NotNil(t, attempts[0].CompletedAt)
}

func TestAttemptStore_CloseUnknownAttempt(t *testing.T) {
	store := NewAttemptStore()

	err := store.Close(context.Background(), "missing", domain.AttemptFailure, 0, 0, "boom")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttemptStore_ListNewestFirstWithLimit(t *testing.T) {
	store := NewAttemptStore()
	ctx := context.Background()

	_, err := store.Create(ctx, "adzuna", "first")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = store.Create(ctx, "adzuna", "second")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = store.Create(ctx, "adzuna", "third")
	require.NoError(t, err)

	attempts, err := store.List(ctx, 2)

	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "third", attempts[0].Query)
	assert.Equal(t, "second", attempts[1].Query)
}
