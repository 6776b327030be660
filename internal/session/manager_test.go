package session

import (
	"context"
	"testing"
	"time"

	"github.com/listkeeper-dev/listkeeper/internal/apperrors"
	"github.com/listkeeper-dev/listkeeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(ttl time.Duration) (*Manager, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(store.NewMemory().Sessions(), ttl)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestCreateAndGet(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	ctx := context.Background()

	sess, err := m.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, uint(42), sess.UserID)

	got, err := m.Get(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)
	assert.Equal(t, uint(42), got.UserID)
}

func TestTokensAreUnique(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		sess, err := m.Create(ctx, 1)
		require.NoError(t, err)
		assert.False(t, seen[sess.Token])
		seen[sess.Token] = true
	}
}

func TestGetUnknownToken(t *testing.T) {
	m, _ := newTestManager(time.Hour)

	_, err := m.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, apperrors.ErrAuth)

	_, err = m.Get(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestExpiryIsFixedNotSliding(t *testing.T) {
	m, now := newTestManager(time.Hour)
	ctx := context.Background()

	sess, err := m.Create(ctx, 1)
	require.NoError(t, err)

	// Repeated reads must not extend the lifetime.
	*now = now.Add(30 * time.Minute)
	_, err = m.Get(ctx, sess.Token)
	require.NoError(t, err)

	*now = now.Add(30 * time.Minute)
	_, err = m.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, apperrors.ErrAuth)

	// The expired row is dropped, so a second read fails the same way.
	_, err = m.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, _ := newTestManager(time.Hour)
	ctx := context.Background()

	sess, err := m.Create(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, sess.Token))
	require.NoError(t, m.Destroy(ctx, sess.Token))
	require.NoError(t, m.Destroy(ctx, ""))

	_, err = m.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}

func TestPurgeExpired(t *testing.T) {
	m, now := newTestManager(time.Hour)
	ctx := context.Background()

	live, err := m.Create(ctx, 1)
	require.NoError(t, err)

	*now = now.Add(-2 * time.Hour)
	expired, err := m.Create(ctx, 2)
	require.NoError(t, err)
	*now = now.Add(2 * time.Hour)

	purged, err := m.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = m.Get(ctx, live.Token)
	assert.NoError(t, err)

	_, err = m.Get(ctx, expired.Token)
	assert.ErrorIs(t, err, apperrors.ErrAuth)
}
