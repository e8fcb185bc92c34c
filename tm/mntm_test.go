package tm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scanForAMNTM copies tape 0's symbols onto tape 1 as it scans rightward,
// accepting as soon as an 'a' is read on tape 0 (exercising two
// independently-moving tapes driven by one transition per read pair).
func scanForAMNTM(t *testing.T) *MNTM {
	t.Helper()
	m, err := NewMNTM(
		[]string{"q0", "qaccept"},
		[]string{"a", "b"},
		[]string{"a", "b", "."},
		2,
		map[string]map[string][]mntmResult{
			"q0": {
				readKey([]string{"a", "."}): {
					{state: "qaccept", moves: []tapeMove{{symbol: "a", direction: Stay}, {symbol: "a", direction: Right}}},
				},
				readKey([]string{"b", "."}): {
					{state: "q0", moves: []tapeMove{{symbol: "b", direction: Right}, {symbol: "b", direction: Right}}},
				},
			},
		},
		"q0",
		".",
		[]string{"qaccept"},
	)
	require.NoError(t, err)
	return m
}

func TestMNTM_AcceptsWhenAFound(t *testing.T) {
	m := scanForAMNTM(t)

	accept := []string{"a", "ba", "bba"}
	reject := []string{"", "b", "bb", "bbb"}

	for _, w := range accept {
		ok, err := m.AcceptsInput(w)
		require.NoError(t, err)
		require.Truef(t, ok, "expected %q accepted", w)
	}
	for _, w := range reject {
		ok, err := m.AcceptsInput(w)
		require.NoError(t, err)
		require.Falsef(t, ok, "expected %q rejected", w)
	}
}

func TestMNTM_Stepwise(t *testing.T) {
	m := scanForAMNTM(t)
	w := m.Stepwise("ba")

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

func TestMNTM_SimulateAsNTM_Builds(t *testing.T) {
	m := scanForAMNTM(t)
	n, err := m.SimulateAsNTM()
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestMNTM_SimulateAsNTM_MatchesMNTM(t *testing.T) {
	m := scanForAMNTM(t)
	n, err := m.SimulateAsNTM()
	require.NoError(t, err)

	inputs := []string{"a", "ba", "bba", "", "b", "bb", "bbb"}
	for _, w := range inputs {
		want, err := m.AcceptsInput(w)
		require.NoError(t, err)

		got, err := n.AcceptsInput(m.InitialEncoding(w))
		require.NoError(t, err)

		require.Equalf(t, want, got, "simulated NTM disagreed with MNTM on %q", w)
	}
}

func TestMNTM_InitialEncoding_MarksBothTapeHeads(t *testing.T) {
	m := scanForAMNTM(t)
	heads := decodeVirtualHeads(m.InitialEncoding("ba"))
	require.Equal(t, []string{"b", "."}, heads)
}

func TestMNTM_New_RejectsWrongMoveCount(t *testing.T) {
	_, err := NewMNTM(
		[]string{"q0"},
		[]string{"a"},
		[]string{"a", "."},
		2,
		map[string]map[string][]mntmResult{
			"q0": {
				readKey([]string{"a", "."}): {
					{state: "q0", moves: []tapeMove{{symbol: "a", direction: Right}}}, // only 1 move for 2 tapes
				},
			},
		},
		"q0",
		".",
		nil,
	)
	require.Error(t, err)
}
