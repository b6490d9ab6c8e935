package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageGuardAllowsUpToLimit(t *testing.T) {
	g := NewPageGuard(3)

	for i := 0; i < 3; i++ {
		assert.True(t, g.Next(), "iteration %d should be allowed", i)
	}
	assert.False(t, g.Next(), "iteration past the limit must trip the guard")
	require.Error(t, g.Err())
	assert.Equal(t, 3, g.Current())
}

func TestPageGuardNoErrorBeforeTripping(t *testing.T) {
	g := NewPageGuard(5)
	g.Next()
	g.Next()
	assert.NoError(t, g.Err())
}

func TestPageGuardDefaultLimit(t *testing.T) {
	g := NewPageGuard(0)
	for i := 0; i < DefaultPageLimit; i++ {
		require.True(t, g.Next())
	}
	assert.False(t, g.Next())
}
