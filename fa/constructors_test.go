package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromPrefix(t *testing.T) {
	d, err := FromPrefix([]string{"a", "b"}, "ab")
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("ab"))
	require.True(t, d.AcceptsInput("abba"))
	require.False(t, d.AcceptsInput("ba"))
	require.False(t, d.AcceptsInput("a"))
}

func TestFromSuffix(t *testing.T) {
	d, err := FromSuffix([]string{"a", "b"}, "ab")
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("ab"))
	require.True(t, d.AcceptsInput("baab"))
	require.False(t, d.AcceptsInput("ba"))
}

func TestFromSubstring(t *testing.T) {
	d, err := FromSubstring([]string{"a", "b"}, "ab")
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("bbabbb"))
	require.False(t, d.AcceptsInput("ba"))
}

func TestFromSubsequence(t *testing.T) {
	d, err := FromSubsequence([]string{"a", "b", "c"}, "abc")
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("aabbcc"))
	require.False(t, d.AcceptsInput("acb"))
}

func TestFromSubstrings(t *testing.T) {
	d, err := FromSubstrings([]string{"a", "b"}, []string{"aa", "bb"})
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("abaa"))
	require.True(t, d.AcceptsInput("bbab"))
	require.False(t, d.AcceptsInput("abab"))
}

func TestOfLength(t *testing.T) {
	d, err := OfLength([]string{"0", "1"}, 1, 2, nil)
	require.NoError(t, err)
	require.False(t, d.AcceptsInput(""))
	require.True(t, d.AcceptsInput("0"))
	require.True(t, d.AcceptsInput("01"))
	require.False(t, d.AcceptsInput("010"))
}

func TestOfLength_Unbounded(t *testing.T) {
	d, err := OfLength([]string{"0", "1"}, 2, -1, nil)
	require.NoError(t, err)
	require.False(t, d.AcceptsInput("0"))
	require.True(t, d.AcceptsInput("00"))
	require.True(t, d.AcceptsInput("0000000"))
}

func TestCountMod(t *testing.T) {
	// accepts strings whose count of 1s mod 2 is 1.
	d, err := CountMod([]string{"0", "1"}, 2, []int{1}, []string{"1"})
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("1"))
	require.True(t, d.AcceptsInput("0111"))
	require.False(t, d.AcceptsInput(""))
	require.False(t, d.AcceptsInput("11"))
}

func TestUniversalAndEmptyLanguage(t *testing.T) {
	u, err := UniversalLanguage([]string{"0", "1"})
	require.NoError(t, err)
	require.True(t, u.AcceptsInput(""))
	require.True(t, u.AcceptsInput("0101010101"))

	e, err := EmptyLanguage([]string{"0", "1"})
	require.NoError(t, err)
	require.True(t, e.IsEmpty())
}

func TestNthFromStart(t *testing.T) {
	d, err := NthFromStart([]string{"0", "1"}, "1", 2)
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("011")) // 2nd symbol is '1'
	require.False(t, d.AcceptsInput("00"))
}

func TestNthFromEnd(t *testing.T) {
	d, err := NthFromEnd([]string{"0", "1"}, "1", 1)
	require.NoError(t, err)
	require.True(t, d.AcceptsInput("01"))
	require.False(t, d.AcceptsInput("00"))
	require.False(t, d.AcceptsInput(""))
}

func TestFromFiniteLanguage(t *testing.T) {
	words := []string{"a", "ab", "abc", "b"}
	d, err := FromFiniteLanguage([]string{"a", "b", "c"}, words)
	require.NoError(t, err)
	for _, w := range words {
		require.Truef(t, d.AcceptsInput(w), "word %q", w)
	}
	require.False(t, d.AcceptsInput("c"))
	require.False(t, d.AcceptsInput("abcd"))

	card, err := d.Cardinality()
	require.NoError(t, err)
	require.Zero(t, card.Int64()-int64(len(words)))
}
