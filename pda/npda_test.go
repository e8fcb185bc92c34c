package pda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// palindromeNPDA is the spec example, built on
// original_source/tests/test_pda.py's shared NPDA fixture: it accepts
// palindromes over {a,b} by final state. q0 guesses where the second half
// begins (nondeterministically switching to q1 after pushing, or treating
// the current symbol as the unmatched center), q1 pops a matching symbol
// per input symbol, and an epsilon move to q2 once the stack bottom '#'
// resurfaces accepts.
func palindromeNPDA(t *testing.T) *NPDA {
	t.Helper()
	n, err := NewNPDA(
		[]string{"q0", "q1", "q2"},
		[]string{"a", "b"},
		[]string{"A", "B", "#"},
		map[string]map[string]map[string][]Transition{
			"q0": {
				"": {
					"#": {{State: "q2", Push: []string{"#"}}},
				},
				"a": {
					"#": {
						{State: "q0", Push: []string{"A", "#"}},
						{State: "q1", Push: []string{"#"}},
					},
					"A": {
						{State: "q0", Push: []string{"A", "A"}},
						{State: "q1", Push: nil},
						{State: "q1", Push: []string{"A"}},
					},
					"B": {
						{State: "q0", Push: []string{"A", "B"}},
						{State: "q1", Push: []string{"B"}},
					},
				},
				"b": {
					"#": {
						{State: "q0", Push: []string{"B", "#"}},
						{State: "q1", Push: []string{"#"}},
					},
					"A": {
						{State: "q0", Push: []string{"B", "A"}},
						{State: "q1", Push: []string{"A"}},
					},
					"B": {
						{State: "q0", Push: []string{"B", "B"}},
						{State: "q1", Push: nil},
						{State: "q1", Push: []string{"B"}},
					},
				},
			},
			"q1": {
				"": {"#": {{State: "q2", Push: []string{"#"}}}},
				"a": {"A": {{State: "q1", Push: nil}}},
				"b": {"B": {{State: "q1", Push: nil}}},
			},
		},
		"q0",
		"#",
		[]string{"q2"},
		FinalState,
	)
	require.NoError(t, err)
	return n
}

func TestNPDA_AcceptsPalindromes(t *testing.T) {
	n := palindromeNPDA(t)

	accept := []string{"", "a", "b", "aa", "bb", "aba", "abba", "abaaba"}
	reject := []string{"ab", "abab", "aab", "abb"}

	for _, w := range accept {
		ok, err := n.AcceptsInput(w)
		require.NoError(t, err)
		require.Truef(t, ok, "expected %q accepted", w)
	}
	for _, w := range reject {
		ok, err := n.AcceptsInput(w)
		require.NoError(t, err)
		require.Falsef(t, ok, "expected %q rejected", w)
	}
}

func TestNPDA_Stepwise(t *testing.T) {
	n := palindromeNPDA(t)
	w := n.Stepwise("aa")

	var accepted bool
	for {
		_, done, err := w.Next()
		require.NoError(t, err)
		if done {
			accepted = true
			break
		}
	}
	require.True(t, accepted)
}

func TestNPDA_RejectsUnknownSymbol(t *testing.T) {
	n := palindromeNPDA(t)
	ok, err := n.AcceptsInput("c")
	require.NoError(t, err)
	require.False(t, ok)
}
