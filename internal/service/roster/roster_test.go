package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorAdmitsIncreasingSequence(t *testing.T) {
	var c Cursor

	require.True(t, c.Admit(1))
	require.True(t, c.Admit(2))
	require.True(t, c.Admit(5))
	require.Equal(t, uint64(5), c.Last())
}

func TestCursorDropsStaleAndDuplicate(t *testing.T) {
	var c Cursor

	require.True(t, c.Admit(3))
	require.False(t, c.Admit(3), "duplicate delivery")
	require.False(t, c.Admit(2), "out of order delivery")
	require.True(t, c.Admit(4))
	require.Equal(t, uint64(4), c.Last())
}

func TestCursorGapsAreAdmitted(t *testing.T) {
	var c Cursor

	require.True(t, c.Admit(10))
	require.False(t, c.Admit(1))
	require.True(t, c.Admit(100))
}
