package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// oddOnesDFA builds the spec example: accepts binary strings that end in a
// run of 1s of odd length. states={q0,q1,q2}, initial q0, final={q1}.
func oddOnesDFA(t *testing.T) *DFA {
	t.Helper()
	d, err := NewDFA(
		[]string{"q0", "q1", "q2"},
		[]string{"0", "1"},
		map[string]map[string]string{
			"q0": {"0": "q0", "1": "q1"},
			"q1": {"0": "q2", "1": "q0"},
			"q2": {"0": "q2", "1": "q1"},
		},
		"q0",
		[]string{"q1"},
	)
	require.NoError(t, err)
	return d
}

func TestDFA_AcceptsInput(t *testing.T) {
	d := oddOnesDFA(t)

	for _, w := range []string{"0111", "1", "11101"} {
		require.Truef(t, d.AcceptsInput(w), "expected %q to be accepted", w)
	}
	for _, w := range []string{"", "110", "1111"} {
		require.Falsef(t, d.AcceptsInput(w), "expected %q to be rejected", w)
	}
}

func TestDFA_ReadInput(t *testing.T) {
	d := oddOnesDFA(t)

	require.NoError(t, d.ReadInput("1"))
	err := d.ReadInput("110")
	require.Error(t, err)
}

func TestDFA_New_RejectsUnknownInitialState(t *testing.T) {
	_, err := NewDFA(
		[]string{"q0"},
		[]string{"0"},
		map[string]map[string]string{"q0": {"0": "q0"}},
		"nope",
		nil,
	)
	require.Error(t, err)
}

func TestDFA_New_RejectsMissingTransition(t *testing.T) {
	_, err := NewDFA(
		[]string{"q0", "q1"},
		[]string{"0", "1"},
		map[string]map[string]string{
			"q0": {"0": "q0"},
		},
		"q0",
		[]string{"q1"},
	)
	require.Error(t, err)
}

func TestDFA_New_AllowPartial(t *testing.T) {
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
	require.True(t, d.IsPartial())
	require.False(t, d.AcceptsInput("1"))
}

func TestDFA_Walk(t *testing.T) {
	d := oddOnesDFA(t)
	states, trapped := d.Walk("11")
	require.False(t, trapped)
	require.Equal(t, []string{"q0", "q1", "q0"}, states)
}

func TestDFA_Copy(t *testing.T) {
	d := oddOnesDFA(t)
	cp := d.Copy()
	require.True(t, cp.AcceptsInput("1"))
	require.Equal(t, d.States(), cp.States())
}
