package tm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// containsDoubleZeroNTM nondeterministically guesses the start of a "00"
// substring: at every '0' it both continues scanning and forks a branch
// that commits to this being the first zero of the pair, accepting if the
// very next symbol confirms the guess.
func containsDoubleZeroNTM(t *testing.T) *NTM {
	t.Helper()
	n, err := NewNTM(
		[]string{"q0", "q1", "qaccept"},
		[]string{"0", "1"},
		[]string{"0", "1", "."},
		map[string]map[string][][3]string{
			"q0": {
				"0": {{"q0", "0", "R"}, {"q1", "0", "R"}},
				"1": {{"q0", "1", "R"}},
			},
			"q1": {
				"0": {{"qaccept", "0", "R"}},
				"1": {{"q0", "1", "R"}},
			},
		},
		"q0",
		".",
		[]string{"qaccept"},
	)
	require.NoError(t, err)
	return n
}

func TestNTM_AcceptsContainsDoubleZero(t *testing.T) {
	n := containsDoubleZeroNTM(t)

	accept := []string{"00", "100", "0100", "1001"}
	reject := []string{"", "0", "1", "0101", "1010101"}

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

func TestNTM_Stepwise(t *testing.T) {
	n := containsDoubleZeroNTM(t)
	w := n.Stepwise("00")

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

func TestNTM_New_RejectsFinalStateWithTransitions(t *testing.T) {
	_, err := NewNTM(
		[]string{"q0"},
		[]string{"0"},
		[]string{"0", "."},
		map[string]map[string][][3]string{
			"q0": {"0": {{"q0", "0", "R"}}},
		},
		"q0",
		".",
		[]string{"q0"},
	)
	require.Error(t, err)
}
