package tm

import (
	"errors"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// ntmKey mirrors dtmKey but maps to a set of results, since an NTM may
// branch on a given (state, tape symbol).
type ntmKey struct {
	state  string
	symbol string
}

// NTM is a nondeterministic Turing machine: any number of transitions
// may apply to a given (state, tape symbol).
type NTM struct {
	base
	transitions map[ntmKey][]dtmResult
}

// NewNTM builds an NTM from its component sets and transition table.
func NewNTM(
	states, inputSymbols, tapeSymbols []string,
	transitions map[string]map[string][][3]string,
	initial, blank string,
	final []string,
) (*NTM, error) {
	n := &NTM{
		base: base{
			states:       setutil.NewStringSet(states...),
			inputSymbols: setutil.NewStringSet(inputSymbols...),
			tapeSymbols:  setutil.NewStringSet(tapeSymbols...),
			initial:      initial,
			blank:        blank,
			final:        setutil.NewStringSet(final...),
		},
		transitions: map[ntmKey][]dtmResult{},
	}

	for state, bySymbol := range transitions {
		for symbol, results := range bySymbol {
			var rs []dtmResult
			for _, r := range results {
				rs = append(rs, dtmResult{state: r[0], symbol: r[1], direction: Direction(r[2])})
			}
			n.transitions[ntmKey{state, symbol}] = rs
		}
	}

	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *NTM) hasTransitionsFor(state string) bool {
	for k := range n.transitions {
		if k.state == state {
			return true
		}
	}
	return false
}

func (n *NTM) validate() error {
	if err := n.validateCommon(); err != nil {
		return err
	}
	for key, results := range n.transitions {
		if !n.states.Has(key.state) {
			return automerr.InvalidState(key.state)
		}
		if !n.tapeSymbols.Has(key.symbol) {
			return automerr.InvalidSymbol(key.symbol)
		}
		for _, r := range results {
			if !n.states.Has(r.state) {
				return automerr.InvalidState(r.state)
			}
			if !n.tapeSymbols.Has(r.symbol) {
				return automerr.InvalidSymbol(r.symbol)
			}
			if err := validateDirection(r.direction); err != nil {
				return err
			}
		}
	}
	return n.validateNoFinalStateTransitions(n.hasTransitionsFor)
}

// successors returns every configuration reachable from cfg in one
// step, per ntm.py's _get_next_configurations.
func (n *NTM) successors(cfg Configuration) []Configuration {
	results := n.transitions[ntmKey{cfg.State, cfg.Tape.Read()}]
	out := make([]Configuration, 0, len(results))
	for _, r := range results {
		out = append(out, Configuration{State: r.state, Tape: cfg.Tape.Write(r.symbol).Move(r.direction)})
	}
	return out
}

// NTMWalk iterates the BFS frontier of an NTM run, one generation at a
// time, per ntm.py's read_input_stepwise.
type NTMWalk struct {
	n        *NTM
	frontier []Configuration
	done     bool
}

// Stepwise begins an NTM run on input.
func (n *NTM) Stepwise(input string) *NTMWalk {
	symbols := make([]string, len(input))
	for i, r := range input {
		symbols[i] = string(r)
	}
	return &NTMWalk{n: n, frontier: []Configuration{{State: n.initial, Tape: NewTape(symbols, n.blank)}}}
}

// Next advances the walk by one generation. As soon as any
// configuration in the current frontier accepts, the walk halts
// accepting; it halts rejecting once the frontier empties without
// ever accepting.
func (w *NTMWalk) Next() (frontier []Configuration, accepted bool, err error) {
	if w.done {
		return nil, false, nil
	}

	for _, cfg := range w.frontier {
		if cfg.accepted(w.n.final) {
			w.done = true
			return w.frontier, true, nil
		}
	}

	var next []Configuration
	for _, cfg := range w.frontier {
		next = append(next, w.n.successors(cfg)...)
	}

	if len(next) == 0 {
		w.done = true
		return nil, false, automerr.Rejection("")
	}

	w.frontier = next
	return next, false, nil
}

// AcceptsInput runs n to completion on input and reports acceptance.
func (n *NTM) AcceptsInput(input string) (bool, error) {
	w := n.Stepwise(input)
	for {
		_, accepted, err := w.Next()
		if err != nil {
			var rejected *automerr.RejectionError
			if errors.As(err, &rejected) {
				return false, nil
			}
			return false, err
		}
		if accepted {
			return true, nil
		}
	}
}
