package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/testutil"
)

func testSession() domainauth.Session {
	return domainauth.Session{
		User: &domainauth.User{
			ID:       "usr-1",
			Email:    "admin@tillflow.test",
			FullName: "Test Admin",
			Role:     domainauth.RoleAdmin,
			Verified: true,
		},
		Token: "bearer-abc",
	}
}

func TestNewSessionRepo_Validation(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	_, err := NewSessionRepo(nil, SessionRepoOptions{Scope: "s1"})
	assert.Error(t, err)

	_, err = NewSessionRepo(client, SessionRepoOptions{})
	assert.Error(t, err)
}

func TestSessionRepo_SaveLoadClear(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	repo, err := NewSessionRepo(client, SessionRepoOptions{Scope: "s1"})
	require.NoError(t, err)

	ctx := context.Background()

	// Empty scope loads nothing.
	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := testSession()
	require.NoError(t, repo.Save(ctx, want))

	got, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Token, got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, want.User.Email, got.User.Email)
	assert.Equal(t, domainauth.RoleAdmin, got.User.Role)

	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionRepo_ScopesAreIsolated(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	first, err := NewSessionRepo(client, SessionRepoOptions{Scope: "browser-1"})
	require.NoError(t, err)
	second, err := NewSessionRepo(client, SessionRepoOptions{Scope: "browser-2"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, first.Save(ctx, testSession()))

	_, ok, err := second.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "scopes must not share records")
}

func TestSessionRepo_TTLExpiresRecord(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	defer func() { _ = client.Close() }()

	repo, err := NewSessionRepo(client, SessionRepoOptions{Scope: "short", TTL: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, testSession()))

	time.Sleep(120 * time.Millisecond)

	_, ok, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
