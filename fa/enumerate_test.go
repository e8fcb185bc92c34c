package fa

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDFA_CountWordsOfLength(t *testing.T) {
	d, err := OfLength([]string{"0", "1"}, 0, -1, nil)
	require.NoError(t, err)

	require.Zero(t, d.CountWordsOfLength(0).Cmp(big.NewInt(1)))
	require.Zero(t, d.CountWordsOfLength(1).Cmp(big.NewInt(2)))
	require.Zero(t, d.CountWordsOfLength(3).Cmp(big.NewInt(8)))
}

func TestDFA_WordsOfLength(t *testing.T) {
	d, err := OfLength([]string{"0", "1"}, 0, -1, nil)
	require.NoError(t, err)

	words := d.WordsOfLength(2)
	require.ElementsMatch(t, []string{"00", "01", "10", "11"}, words)
}

func TestDFA_Cardinality(t *testing.T) {
	fin, err := OfLength([]string{"0", "1"}, 0, 2, nil)
	require.NoError(t, err)

	card, err := fin.Cardinality()
	require.NoError(t, err)
	require.Zero(t, card.Cmp(big.NewInt(7))) // "" + 2 + 4

	infinite, err := OfLength([]string{"0", "1"}, 0, -1, nil)
	require.NoError(t, err)
	_, err = infinite.Cardinality()
	require.Error(t, err)
}

func TestDFA_Iterate(t *testing.T) {
	fin, err := OfLength([]string{"0", "1"}, 0, 2, nil)
	require.NoError(t, err)

	all := fin.Iterate(2)
	require.Len(t, all, 7)
	require.Contains(t, all, "")
	require.Contains(t, all, "11")
}

func TestDFA_RandomWord(t *testing.T) {
	fin, err := OfLength([]string{"0", "1"}, 2, 2, nil)
	require.NoError(t, err)

	w, err := fin.RandomWord(2, func(n int64) int64 { return 0 })
	require.NoError(t, err)
	require.True(t, fin.AcceptsInput(w))
	require.Len(t, w, 2)
}
