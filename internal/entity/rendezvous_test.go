package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRendezvous(t *testing.T) {
	t.Run("Completes once every participant acknowledged", func(t *testing.T) {
		// Given: a barrier over two connections
		barrier := NewRendezvous("c1", "c2")

		// When: both acknowledge
		first := barrier.Acknowledge("c2")
		assert.False(t, barrier.Complete())
		second := barrier.Acknowledge("c1")

		// Then: the barrier is complete
		assert.True(t, first)
		assert.True(t, second)
		assert.True(t, barrier.Complete())
		assert.Equal(t, []string{"c1", "c2"}, barrier.Participants())
	})

	t.Run("Ignores strangers and duplicates", func(t *testing.T) {
		barrier := NewRendezvous("c1", "c2")

		assert.True(t, barrier.Acknowledge("c1"))
		assert.False(t, barrier.Acknowledge("c1"))
		assert.False(t, barrier.Acknowledge("c3"))
		assert.Equal(t, 1, barrier.Pending())
		assert.False(t, barrier.Complete())
	})
}
