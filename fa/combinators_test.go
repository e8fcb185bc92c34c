package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func twoSymbolDFAs(t *testing.T) (a, b *DFA) {
	t.Helper()
	var err error
	a, err = OfLength([]string{"0", "1"}, 1, 2, nil)
	require.NoError(t, err)
	b, err = FromPrefix([]string{"0", "1"}, "0")
	require.NoError(t, err)
	return a, b
}

func TestDFA_Complement(t *testing.T) {
	a, _ := twoSymbolDFAs(t)
	c := a.Complement()
	require.True(t, c.AcceptsInput(""))
	require.False(t, c.AcceptsInput("0"))
}

func TestDFA_Union(t *testing.T) {
	a, b := twoSymbolDFAs(t)
	u, err := a.Union(b)
	require.NoError(t, err)
	require.True(t, u.AcceptsInput("0"))     // in a
	require.True(t, u.AcceptsInput("0111"))  // in b but not a
	require.False(t, u.AcceptsInput("1111")) // neither
}

func TestDFA_Intersection(t *testing.T) {
	a, b := twoSymbolDFAs(t)
	i, err := a.Intersection(b)
	require.NoError(t, err)
	require.True(t, i.AcceptsInput("0"))
	require.True(t, i.AcceptsInput("01"))
	require.False(t, i.AcceptsInput("0111"))
	require.False(t, i.AcceptsInput("1"))
}

func TestDFA_Difference(t *testing.T) {
	a, b := twoSymbolDFAs(t)
	d, err := a.Difference(b)
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("1"))  // in a, not b
	require.False(t, d.AcceptsInput("0")) // in both
}

func TestDFA_SymmetricDifference(t *testing.T) {
	a, b := twoSymbolDFAs(t)
	d, err := a.SymmetricDifference(b)
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("1"))     // a only
	require.True(t, d.AcceptsInput("0111"))  // b only
	require.False(t, d.AcceptsInput("0"))    // both
	require.False(t, d.AcceptsInput("1111")) // neither
}

func TestDFA_IsSubsetOf(t *testing.T) {
	symbols := []string{"0", "1"}
	sub, err := FromFiniteLanguage(symbols, []string{"0", "1"})
	require.NoError(t, err)
	super, err := OfLength(symbols, 1, 1, nil)
	require.NoError(t, err)

	ok, err := sub.IsSubsetOf(super)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = super.IsSubsetOf(sub)
	require.NoError(t, err)
	require.True(t, ok) // same language here, so both directions hold
}

func TestDFA_IsDisjointWith(t *testing.T) {
	symbols := []string{"0", "1"}
	zeros, err := FromFiniteLanguage(symbols, []string{"0"})
	require.NoError(t, err)
	ones, err := FromFiniteLanguage(symbols, []string{"1"})
	require.NoError(t, err)

	ok, err := zeros.IsDisjointWith(ones)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestDFA_MismatchedAlphabetsError(t *testing.T) {
	a, err := OfLength([]string{"0", "1"}, 0, -1, nil)
	require.NoError(t, err)
	b, err := OfLength([]string{"a", "b"}, 0, -1, nil)
	require.NoError(t, err)
	_, err = a.Union(b)
	require.Error(t, err)
}

func TestDFA_ToPartialAndToComplete(t *testing.T) {
	d, err := NewDFA(
		[]string{"q0", "q1"},
		[]string{"0", "1"},
		map[string]map[string]string{
			"q0": {"0": "q1"},
		},
		"q0",
		[]string{"q1"},
		AllowPartial(),
	)
	require.NoError(t, err)

	complete := d.ToComplete("trap")
	require.False(t, complete.IsPartial())
	require.True(t, complete.AcceptsInput("0"))
	require.False(t, complete.AcceptsInput("1"))

	partial := complete.ToPartial()
	require.True(t, partial.IsPartial())
}
