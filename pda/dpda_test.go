package pda

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// anBnDPDA is the spec example, ported directly from
// original_source/tests/test_pda.py's shared DPDA fixture: it accepts
// aⁿbⁿ for n ≥ 1 by final state. q0 (first 'a') and q1 (each further 'a')
// push a '1' marker on top of the initial stack symbol '0'; q1 and then q2
// pop one '1' per 'b'; once every '1' has been popped and '0' resurfaces,
// an epsilon move from q2 to q3 accepts.
func anBnDPDA(t *testing.T) *DPDA {
	t.Helper()
	d, err := NewDPDA(
		[]string{"q0", "q1", "q2", "q3"},
		[]string{"a", "b"},
		[]string{"0", "1"},
		map[string]map[string]map[string]Transition{
			"q0": {
				"a": {"0": {State: "q1", Push: []string{"1", "0"}}},
			},
			"q1": {
				"a": {"1": {State: "q1", Push: []string{"1", "1"}}},
				"b": {"1": {State: "q2", Push: nil}},
			},
			"q2": {
				"b": {"1": {State: "q2", Push: nil}},
				"":  {"0": {State: "q3", Push: []string{"0"}}},
			},
		},
		"q0",
		"0",
		[]string{"q3"},
		FinalState,
	)
	require.NoError(t, err)
	return d
}

func TestDPDA_AcceptsAnBn(t *testing.T) {
	d := anBnDPDA(t)

	accept := []string{"ab", "aabb", "aaabbb"}
	reject := []string{"", "a", "b", "aab", "abb", "ba", "aabbb"}

	for _, w := range accept {
		ok, err := d.AcceptsInput(w)
		require.NoError(t, err)
		require.Truef(t, ok, "expected %q accepted", w)
	}
	for _, w := range reject {
		ok, err := d.AcceptsInput(w)
		require.NoError(t, err)
		require.Falsef(t, ok, "expected %q rejected", w)
	}
}

func TestDPDA_Stepwise(t *testing.T) {
	d := anBnDPDA(t)
	w := d.Stepwise("ab")

	var last Configuration
	var accepted bool
	for {
		cfg, done, err := w.Next()
		require.NoError(t, err)
		last = cfg
		if done {
			accepted = true
			break
		}
	}
	require.True(t, accepted)
	require.Equal(t, "q3", last.State)
}

func TestDPDA_New_RejectsNondeterminism(t *testing.T) {
	_, err := NewDPDA(
		[]string{"q0"},
		[]string{"a"},
		[]string{"0"},
		map[string]map[string]map[string]Transition{
			"q0": {
				"a": {"0": {State: "q0", Push: []string{"0"}}},
				"":  {"0": {State: "q0", Push: []string{"0"}}},
			},
		},
		"q0",
		"0",
		nil,
		EmptyStack,
	)
	require.Error(t, err)
}

func TestDPDA_RejectsUnknownSymbol(t *testing.T) {
	d := anBnDPDA(t)
	ok, err := d.AcceptsInput("01")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDPDA_EmptyStackMode(t *testing.T) {
	d, err := NewDPDA(
		[]string{"q0"},
		nil,
		[]string{"0"},
		map[string]map[string]map[string]Transition{
			"q0": {"": {"0": {State: "q0", Push: nil}}},
		},
		"q0",
		"0",
		nil,
		EmptyStack,
	)
	require.NoError(t, err)

	ok, err := d.AcceptsInput("")
	require.NoError(t, err)
	require.True(t, ok)
}
