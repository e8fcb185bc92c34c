package tm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTape_ReadWrite(t *testing.T) {
	tp := NewTape([]string{"0", "1"}, ".")
	require.Equal(t, "0", tp.Read())

	w := tp.Write("x")
	require.Equal(t, "x", w.Read())
	require.Equal(t, "0", tp.Read()) // original unmodified
}

func TestTape_MoveExtendsWithBlank(t *testing.T) {
	tp := NewTape([]string{"0"}, ".")
	right := tp.Move(Right)
	require.Equal(t, ".", right.Read())
	require.Equal(t, 1, right.Position())

	left := tp.Move(Left)
	require.Equal(t, ".", left.Read())
	require.Equal(t, 0, left.Position())
	require.Equal(t, 2, left.Len())
}

func TestTape_Stay(t *testing.T) {
	tp := NewTape([]string{"0", "1"}, ".")
	same := tp.Move(Stay)
	require.Equal(t, tp.Position(), same.Position())
}

func TestTape_String(t *testing.T) {
	tp := NewTape([]string{"a", "b", "c"}, ".")
	require.Equal(t, "abc", tp.String())
}
