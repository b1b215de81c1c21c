package ledger

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestControllers(t *testing.T) {
	c := NewControllers(bob)
	require.True(t, c.IsController(bob))
	require.False(t, c.IsController(alice))

	require.True(t, c.Add(alice))
	require.False(t, c.Add(alice))
	require.Equal(t, []common.Address{bob, alice}, c.List())

	require.True(t, c.Remove(bob))
	require.False(t, c.Remove(bob))
	require.Equal(t, 1, c.Len())
}
