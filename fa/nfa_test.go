package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNFA_AcceptsInput_WithEpsilon(t *testing.T) {
	n, err := NewNFA(
		[]string{"q0", "q1", "q2"},
		[]string{"a", "b"},
		map[string]map[string][]string{
			"q0": {"": {"q1"}},
			"q1": {"a": {"q1"}, "b": {"q2"}},
		},
		"q0",
		[]string{"q2"},
	)
	require.NoError(t, err)
	require.True(t, n.AcceptsInput("aaab"))
	require.True(t, n.AcceptsInput("b"))
	require.False(t, n.AcceptsInput("a"))
}

func TestNFA_ToDFA(t *testing.T) {
	n, err := NewNFA(
		[]string{"q0", "q1"},
		[]string{"a"},
		map[string]map[string][]string{
			"q0": {"a": {"q0", "q1"}},
		},
		"q0",
		[]string{"q1"},
	)
	require.NoError(t, err)
	d := n.ToDFA()
	require.True(t, d.AcceptsInput("a"))
	require.True(t, d.AcceptsInput("aaa"))
	require.False(t, d.AcceptsInput(""))
}

func TestNFA_Union(t *testing.T) {
	a, err := FromStringLiteral([]string{"a", "b"}, "a")
	require.NoError(t, err)
	b, err := FromStringLiteral([]string{"a", "b"}, "b")
	require.NoError(t, err)

	u, err := Union(a, b)
	require.NoError(t, err)
	require.True(t, u.AcceptsInput("a"))
	require.True(t, u.AcceptsInput("b"))
	require.False(t, u.AcceptsInput("ab"))
}

func TestNFA_Concatenate(t *testing.T) {
	a, err := FromStringLiteral([]string{"a", "b"}, "a")
	require.NoError(t, err)
	b, err := FromStringLiteral([]string{"a", "b"}, "b")
	require.NoError(t, err)

	c, err := Concatenate(a, b)
	require.NoError(t, err)
	require.True(t, c.AcceptsInput("ab"))
	require.False(t, c.AcceptsInput("ba"))
}

func TestNFA_KleeneStarAndOption(t *testing.T) {
	a, err := FromStringLiteral([]string{"a"}, "a")
	require.NoError(t, err)

	star, err := KleeneStar(a)
	require.NoError(t, err)
	require.True(t, star.AcceptsInput(""))
	require.True(t, star.AcceptsInput("aaaa"))

	opt, err := Option(a)
	require.NoError(t, err)
	require.True(t, opt.AcceptsInput(""))
	require.True(t, opt.AcceptsInput("a"))
	require.False(t, opt.AcceptsInput("aa"))
}

func TestNFA_Reverse(t *testing.T) {
	a, err := FromStringLiteral([]string{"a", "b"}, "ab")
	require.NoError(t, err)
	r, err := Reverse(a)
	require.NoError(t, err)
	require.True(t, r.AcceptsInput("ba"))
	require.False(t, r.AcceptsInput("ab"))
}

func TestNFA_FromSymbol(t *testing.T) {
	n, err := FromSymbol([]string{"0", "1"}, "1")
	require.NoError(t, err)
	require.True(t, n.AcceptsInput("1"))
	require.False(t, n.AcceptsInput("0"))
	require.False(t, n.AcceptsInput(""))
}

func TestNFA_Intersection(t *testing.T) {
	symbols := []string{"0", "1"}
	a, err := FromStringLiteral(symbols, "01")
	require.NoError(t, err)
	b, err := FromStringLiteral(symbols, "01")
	require.NoError(t, err)

	inter, err := Intersection(a, b)
	require.NoError(t, err)
	require.True(t, inter.AcceptsInput("01"))
	require.False(t, inter.AcceptsInput(""))
}

func TestNFA_EditDistance(t *testing.T) {
	n, err := EditDistance([]string{"a", "b"}, "ab", 1, true, true, true)
	require.NoError(t, err)
	require.True(t, n.AcceptsInput("ab"))
	require.True(t, n.AcceptsInput("b"))   // deletion
	require.True(t, n.AcceptsInput("aab")) // insertion
	require.True(t, n.AcceptsInput("bb"))  // substitution
	require.False(t, n.AcceptsInput("ba"))
}

func TestNFA_Equal(t *testing.T) {
	a, err := FromStringLiteral([]string{"a"}, "a")
	require.NoError(t, err)
	b, err := NewNFA(
		[]string{"p0", "p1", "p2"},
		[]string{"a"},
		map[string]map[string][]string{
			"p0": {"": {"p1"}},
			"p1": {"a": {"p2"}},
		},
		"p0",
		[]string{"p2"},
	)
	require.NoError(t, err)

	eq, err := a.Equal(b)
	require.NoError(t, err)
	require.True(t, eq)
}

func TestNFA_EliminateLambda(t *testing.T) {
	n, err := NewNFA(
		[]string{"q0", "q1"},
		[]string{"a"},
		map[string]map[string][]string{
			"q0": {"": {"q1"}},
			"q1": {"a": {"q1"}},
		},
		"q0",
		[]string{"q1"},
	)
	require.NoError(t, err)

	free, err := n.EliminateLambda()
	require.NoError(t, err)
	eq, err := n.Equal(free)
	require.NoError(t, err)
	require.True(t, eq)
}
