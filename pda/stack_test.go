package pda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack_TopAndLen(t *testing.T) {
	s := NewStack("0", "1", "2")
	require.Equal(t, "2", s.Top())
	require.Equal(t, 3, s.Len())
	require.False(t, s.Empty())
}

func TestStack_EmptyStack(t *testing.T) {
	var s Stack
	require.True(t, s.Empty())
	require.Equal(t, "", s.Top())
	require.Equal(t, s, s.Pop())
}

func TestStack_Pop(t *testing.T) {
	s := NewStack("0", "1")
	popped := s.Pop()
	require.Equal(t, "0", popped.Top())
	require.Equal(t, 1, popped.Len())
	// original is unmodified
	require.Equal(t, "1", s.Top())
}

func TestStack_Replace(t *testing.T) {
	s := NewStack("0")
	r := s.Replace("A", "B")
	require.Equal(t, []string{"0"}, s.Elements()) // unchanged
	require.Equal(t, []string{"B", "A"}, r.Elements())
	require.Equal(t, "A", r.Top())
}

func TestStack_ReplaceWithNoSymbolsIsPop(t *testing.T) {
	s := NewStack("0", "1")
	require.Equal(t, s.Pop().Elements(), s.Replace().Elements())
}
