package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDFA_Successor_WalksLexicographicOrder(t *testing.T) {
	d, err := OfLength([]string{"0", "1"}, 0, 3, nil)
	require.NoError(t, err)

	var words []string
	var cur *string
	for i := 0; i < 20; i++ {
		w, ok := d.Successor(cur, true)
		if !ok {
			break
		}
		words = append(words, w)
		cur = &w
	}

	for _, w := range words {
		require.True(t, d.AcceptsInput(w))
	}
	for i := 1; i < len(words); i++ {
		require.True(t, lexLess(words[i-1], words[i]))
	}
	card, err := d.Cardinality()
	require.NoError(t, err)
	require.Equal(t, int(card.Int64()), len(words))
}

func TestDFA_Predecessor_FromNilIsGreatest(t *testing.T) {
	d, err := OfLength([]string{"0", "1"}, 0, 2, nil)
	require.NoError(t, err)

	greatest, ok, err := d.Predecessor(nil, true)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, d.AcceptsInput(greatest))
}

func TestDFA_Predecessor_RequiresFinite(t *testing.T) {
	d := oddOnesDFA(t)
	_, _, err := d.Predecessor(nil, true)
	require.Error(t, err)
}

func TestDFA_Successor_NonStrictReturnsSelfIfAccepted(t *testing.T) {
	d, err := OfLength([]string{"0", "1"}, 0, 2, nil)
	require.NoError(t, err)
	w := "0"
	got, ok := d.Successor(&w, false)
	require.True(t, ok)
	require.Equal(t, "0", got)
}

func lexLess(a, b string) bool {
	return a < b
}
