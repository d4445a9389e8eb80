package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-relay/internal/apperror"
	"github.com/rocketscienceinc/connectfour-relay/internal/entity"
	"github.com/rocketscienceinc/connectfour-relay/internal/repository"
)

func TestDirectory(t *testing.T) {
	host := &entity.Player{ConnectionID: "c1", Name: "Alice"}

	t.Run("Create stores a waiting game", func(t *testing.T) {
		directory := NewDirectory()

		game, err := directory.Create("G", host)
		require.NoError(t, err)

		stored, ok := directory.Get("G")
		require.True(t, ok)
		assert.Same(t, game, stored)
		assert.True(t, stored.IsWaiting())
		assert.Same(t, host, stored.Host())
	})

	t.Run("Create refuses a taken id", func(t *testing.T) {
		directory := NewDirectory()
		_, err := directory.Create("G", host)
		require.NoError(t, err)

		_, err = directory.Create("G", &entity.Player{ConnectionID: "c2", Name: "Bob"})

		require.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
		stored, _ := directory.Get("G")
		assert.Same(t, host, stored.Host())
	})

	t.Run("FindByConnection and Delete", func(t *testing.T) {
		directory := NewDirectory()
		_, _ = directory.Create("G1", host)
		_, _ = directory.Create("G2", &entity.Player{ConnectionID: "c2", Name: "Bob"})

		found := directory.FindByConnection("c1")
		require.Len(t, found, 1)
		assert.Equal(t, "G1", found[0].ID)

		directory.Delete("G1")
		directory.Delete("missing")

		assert.Empty(t, directory.FindByConnection("c1"))
		assert.Equal(t, 1, directory.Len())
	})
}

func TestSessionRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("Lookup without a binding is empty", func(t *testing.T) {
		registry := NewSessionRegistry(repository.NewMemorySessionRepository(), &fakeIDs{})

		sessionID, err := registry.Lookup(ctx, "c1")

		require.NoError(t, err)
		assert.Empty(t, sessionID)
	})

	t.Run("Init generates only when nothing was supplied", func(t *testing.T) {
		registry := NewSessionRegistry(repository.NewMemorySessionRepository(), &fakeIDs{})

		generated, created, err := registry.Init(ctx, "c1", "")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "session-1", generated)

		supplied, created, err := registry.Init(ctx, "c2", "mine")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "mine", supplied)

		sessionID, err := registry.Lookup(ctx, "c2")
		require.NoError(t, err)
		assert.Equal(t, "mine", sessionID)
	})

	t.Run("Forget tolerates unknown connections", func(t *testing.T) {
		registry := NewSessionRegistry(repository.NewMemorySessionRepository(), &fakeIDs{})

		require.NoError(t, registry.Forget(ctx, "nobody"))
	})
}
