package automfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const dfaGFA = `
format = "GFA1"
type = "DFA"
states = ["q0", "q1"]
input_symbols = ["0", "1"]
initial = "q0"
final = ["q1"]

[transitions.q0]
0 = "q0"
1 = "q1"

[transitions.q1]
0 = "q0"
1 = "q1"
`

const nfaGFA = `
format = "GFA1"
type = "NFA"
states = ["q0", "q1"]
input_symbols = ["a"]
initial = "q0"
final = ["q1"]

[transitions.q0]
a = ["q0", "q1"]
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.gfa")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDFA(t *testing.T) {
	path := writeFile(t, dfaGFA)
	d, err := LoadDFA(path)
	require.NoError(t, err)

	require.True(t, d.AcceptsInput("1"))
	require.True(t, d.AcceptsInput("001"))
	require.False(t, d.AcceptsInput("00"))
}

func TestLoadDFA_WrongType(t *testing.T) {
	path := writeFile(t, nfaGFA)
	_, err := LoadDFA(path)
	require.Error(t, err)
}

func TestLoadNFA(t *testing.T) {
	path := writeFile(t, nfaGFA)
	n, err := LoadNFA(path)
	require.NoError(t, err)
	require.True(t, n.AcceptsInput("a"))
	require.True(t, n.AcceptsInput("aa"))
	require.False(t, n.AcceptsInput("b"))
}

func TestSaveDFA_RoundTrips(t *testing.T) {
	path := writeFile(t, dfaGFA)
	d, err := LoadDFA(path)
	require.NoError(t, err)

	min := d.Minify()

	out := filepath.Join(t.TempDir(), "minified.gfa")
	require.NoError(t, SaveDFA(out, min))

	reloaded, err := LoadDFA(out)
	require.NoError(t, err)

	for _, w := range []string{"1", "01", "001", "0001"} {
		require.Equal(t, min.AcceptsInput(w), reloaded.AcceptsInput(w))
	}
}
