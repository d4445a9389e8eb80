package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-relay/testing/suite"
)

func testSessionRepository(ctx context.Context, t *testing.T, repo SessionRepository) {
	t.Run("Bind_Then_Get", func(t *testing.T) {
		// Given: a connection bound to a session
		require.NoError(t, repo.Bind(ctx, "conn-1", "session-1"))

		// When: GetByConnection is called
		sessionID, err := repo.GetByConnection(ctx, "conn-1")

		// Then: the bound session is returned
		require.NoError(t, err)
		assert.Equal(t, "session-1", sessionID)
	})

	t.Run("Bind_Overwrites", func(t *testing.T) {
		require.NoError(t, repo.Bind(ctx, "conn-2", "session-a"))
		require.NoError(t, repo.Bind(ctx, "conn-2", "session-b"))

		sessionID, err := repo.GetByConnection(ctx, "conn-2")

		require.NoError(t, err)
		assert.Equal(t, "session-b", sessionID)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		sessionID, err := repo.GetByConnection(ctx, "unknown")

		require.ErrorIs(t, err, ErrSessionNotFound)
		assert.Empty(t, sessionID)
	})

	t.Run("Delete", func(t *testing.T) {
		// Given: a bound connection
		require.NoError(t, repo.Bind(ctx, "conn-3", "session-3"))

		// When: the binding is deleted
		require.NoError(t, repo.DeleteByConnection(ctx, "conn-3"))

		// Then: it is gone and a second delete reports it
		_, err := repo.GetByConnection(ctx, "conn-3")
		require.ErrorIs(t, err, ErrSessionNotFound)
		require.ErrorIs(t, repo.DeleteByConnection(ctx, "conn-3"), ErrSessionNotFound)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	testSessionRepository(context.Background(), t, NewMemorySessionRepository())
}

func TestRedisSessionRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx, st := suite.New(t)

	testSessionRepository(ctx, t, NewRedisSessionRepository(st.Storage))

	t.Run("Bindings expire", func(t *testing.T) {
		require.NoError(t, NewRedisSessionRepository(st.Storage).Bind(ctx, "conn-ttl", "session-ttl"))

		ttl, err := st.Storage.TTL(ctx, "session:conn-ttl").Result()

		require.NoError(t, err)
		assert.Positive(t, ttl)
		assert.LessOrEqual(t, ttl, sessionTTL)
	})
}
