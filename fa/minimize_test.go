package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// redundantLengthDFA mirrors the spec example: an 8-state DFA accepting
// strings of length >= 3 over {0,1}, where every state reached after the
// third symbol is an accepting state behaving identically (a 5-state sink
// that collapses under minimization).
func redundantLengthDFA(t *testing.T) *DFA {
	t.Helper()
	states := []string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7"}
	chain := map[string]string{
		"s0": "s1", "s1": "s2", "s2": "s3", "s3": "s4",
		"s4": "s5", "s5": "s6", "s6": "s7", "s7": "s7",
	}
	transitions := map[string]map[string]string{}
	for from, to := range chain {
		transitions[from] = map[string]string{"0": to, "1": to}
	}
	d, err := NewDFA(states, []string{"0", "1"}, transitions, "s0",
		[]string{"s3", "s4", "s5", "s6", "s7"})
	require.NoError(t, err)
	return d
}

func TestDFA_Minify_PreservesLanguageAndShrinks(t *testing.T) {
	d := redundantLengthDFA(t)
	m := d.Minify()

	require.LessOrEqual(t, len(m.States()), len(d.States()))
	require.Less(t, len(m.States()), len(d.States()))

	eq, err := d.Equal(m)
	require.NoError(t, err)
	require.True(t, eq)

	for _, w := range []string{"", "0", "01", "010", "0101", "111111"} {
		require.Equalf(t, d.AcceptsInput(w), m.AcceptsInput(w), "word %q", w)
	}
}

func TestDFA_Minify_RetainNames(t *testing.T) {
	d := redundantLengthDFA(t)
	m := d.Minify(RetainNames())
	eq, err := d.Equal(m)
	require.NoError(t, err)
	require.True(t, eq)
}

func TestDFA_Minify_AlreadyMinimal(t *testing.T) {
	d, err := CountMod([]string{"0", "1"}, 2, []int{1}, []string{"1"})
	require.NoError(t, err)
	m := d.Minify()
	require.Equal(t, len(d.States()), len(m.States()))
}
