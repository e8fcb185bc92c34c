package tm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// zerosOnesDTM is the spec example, ported directly from
// original_source/tests/test_tm.py's dtm1 fixture: it accepts { 0ⁿ1ⁿ | n
// ≥ 1 }, marking off one '0' as 'x' and one '1' as 'y' per pass.
func zerosOnesDTM(t *testing.T) *DTM {
	t.Helper()
	d, err := NewDTM(
		[]string{"q0", "q1", "q2", "q3", "q4"},
		[]string{"0", "1"},
		[]string{"0", "1", "x", "y", "."},
		map[string]map[string][3]string{
			"q0": {
				"0": {"q1", "x", "R"},
				"y": {"q3", "y", "R"},
			},
			"q1": {
				"0": {"q1", "0", "R"},
				"1": {"q2", "y", "L"},
				"y": {"q1", "y", "R"},
			},
			"q2": {
				"0": {"q2", "0", "L"},
				"x": {"q0", "x", "R"},
				"y": {"q2", "y", "L"},
			},
			"q3": {
				"y": {"q3", "y", "R"},
				".": {"q4", ".", "R"},
			},
		},
		"q0",
		".",
		[]string{"q4"},
	)
	require.NoError(t, err)
	return d
}

func TestDTM_AcceptsZerosOnes(t *testing.T) {
	d := zerosOnesDTM(t)

	accept := []string{"01", "0011", "000111"}
	reject := []string{"", "0", "1", "10", "0010", "001"}

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

func TestDTM_Stepwise(t *testing.T) {
	d := zerosOnesDTM(t)
	w := d.Stepwise("01")

	var accepted bool
	for {
		cfg, done, err := w.Next()
		require.NoError(t, err)
		if done {
			accepted = true
			require.Equal(t, "q4", cfg.State)
			break
		}
	}
	require.True(t, accepted)
}

func TestDTM_New_RejectsInitialStateAsFinal(t *testing.T) {
	_, err := NewDTM(
		[]string{"q0"},
		[]string{"0"},
		[]string{"0", "."},
		map[string]map[string][3]string{},
		"q0",
		".",
		[]string{"q0"},
	)
	require.Error(t, err)
}

func TestDTM_New_RejectsBlankAsInputSymbol(t *testing.T) {
	_, err := NewDTM(
		[]string{"q0", "q1"},
		[]string{"0", "."},
		[]string{"0", "."},
		map[string]map[string][3]string{},
		"q0",
		".",
		[]string{"q1"},
	)
	require.Error(t, err)
}
