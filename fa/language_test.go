package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDFA_IsEmpty(t *testing.T) {
	d := oddOnesDFA(t)
	require.False(t, d.IsEmpty())

	empty, err := NewDFA(
		[]string{"q0"},
		[]string{"0"},
		map[string]map[string]string{"q0": {"0": "q0"}},
		"q0",
		nil,
	)
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
}

func TestDFA_IsFinite(t *testing.T) {
	d := oddOnesDFA(t)
	require.False(t, d.IsFinite())

	fin, err := OfLength([]string{"0", "1"}, 1, 3, nil)
	require.NoError(t, err)
	require.True(t, fin.IsFinite())
}

func TestDFA_MinMaxWordLength(t *testing.T) {
	fin, err := OfLength([]string{"0", "1"}, 2, 4, nil)
	require.NoError(t, err)

	min, ok := fin.MinWordLength()
	require.True(t, ok)
	require.Equal(t, 2, min)

	max, ok := fin.MaxWordLength()
	require.True(t, ok)
	require.Equal(t, 4, max)
}

func TestDFA_MinWordLength_EmptyLanguage(t *testing.T) {
	empty, err := NewDFA(
		[]string{"q0"},
		[]string{"0"},
		map[string]map[string]string{"q0": {"0": "q0"}},
		"q0",
		nil,
	)
	require.NoError(t, err)
	_, ok := empty.MinWordLength()
	require.False(t, ok)
}
