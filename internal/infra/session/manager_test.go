package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/pairhealth/pkg/coerce"
	apperrors "github.com/yanqian/pairhealth/pkg/errors"
	"github.com/yanqian/pairhealth/pkg/logger"
)

type failingStore struct {
	*MemoryStore
	removeErr error
}

func (f *failingStore) Remove(ctx context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.MemoryStore.Remove(ctx, key)
}

func TestManagerLoginLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), logger.Discard())

	require.False(t, m.LoggedIn(ctx))
	token, err := m.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)

	require.NoError(t, m.SaveLogin(ctx, "tok", coerce.Object{"nickname": "kai"}))
	require.True(t, m.LoggedIn(ctx))

	profile, ok, err := m.Profile(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "kai", profile["nickname"])

	require.NoError(t, m.Clear(ctx))
	require.False(t, m.LoggedIn(ctx))
	_, ok, err = m.Profile(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManagerSaveLoginRequiresToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), logger.Discard())
	err := m.SaveLogin(context.Background(), "", nil)
	require.True(t, apperrors.IsCode(err, "invalid_token"))
}

func TestManagerClearReportsStoreFailure(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), removeErr: errors.New("disk full")}
	m := NewManager(store, logger.Discard())
	err := m.Clear(context.Background())
	require.True(t, apperrors.IsCode(err, "session_clear_failed"))
	require.ErrorContains(t, err, "disk full")
}

func TestManagerProfileIgnoresGarbage(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), KeyUserInfo, []byte("not json")))
	m := NewManager(store, logger.Discard())
	_, ok, err := m.Profile(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestManagerClaims(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("backend-only-key"))
	require.NoError(t, err)

	m := NewManager(NewMemoryStore(), logger.Discard())
	m.now = func() time.Time { return now }
	require.NoError(t, m.SaveLogin(ctx, signed, nil))

	claims, err := m.Claims(ctx)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.False(t, claims.Expired)

	m.now = func() time.Time { return now.Add(2 * time.Hour) }
	claims, err = m.Claims(ctx)
	require.NoError(t, err)
	require.True(t, claims.Expired)
}

func TestManagerClaimsOpaqueToken(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), logger.Discard())
	require.NoError(t, m.SaveLogin(ctx, "opaque-token", nil))
	claims, err := m.Claims(ctx)
	require.NoError(t, err)
	require.Equal(t, Claims{}, claims)
}
