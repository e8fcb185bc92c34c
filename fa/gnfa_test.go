package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToRegexFromDFA_NonEmptyLanguage(t *testing.T) {
	d := oddOnesDFA(t)
	r, ok := ToRegexFromDFA(d)
	require.True(t, ok)
	require.NotEmpty(t, r)
}

func TestToRegexFromDFA_SingletonLanguage(t *testing.T) {
	d, err := FromFiniteLanguage([]string{"a", "b"}, []string{"ab"})
	require.NoError(t, err)
	r, ok := ToRegexFromDFA(d)
	require.True(t, ok)
	require.NotEmpty(t, r)
}

func TestToRegexFromDFA_EmptyLanguage(t *testing.T) {
	empty, err := EmptyLanguage([]string{"0", "1"})
	require.NoError(t, err)
	_, ok := ToRegexFromDFA(empty)
	require.False(t, ok)
}

func TestToRegexFromNFA(t *testing.T) {
	n, err := FromStringLiteral([]string{"a", "b"}, "ab")
	require.NoError(t, err)
	r, ok := ToRegexFromNFA(n)
	require.True(t, ok)
	require.NotEmpty(t, r)
}
