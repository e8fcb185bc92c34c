package pda

import (
	"errors"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// dpdaKey identifies a DPDA transition's left-hand side: the state to
// transition from, the input symbol consumed (or epsilon), and the
// stack symbol popped.
type dpdaKey struct {
	state       string
	inputSymbol string
	stackSymbol string
}

// DPDA is a deterministic pushdown automaton: at most one transition may
// apply to any given (state, input symbol, stack top), and a state may
// not have both an epsilon transition and a symbol transition defined
// on the same stack top (original_source/automata/pda/dpda.py's
// isolated-lambda-transition rule).
type DPDA struct {
	base
	transitions map[dpdaKey]Transition
}

// NewDPDA builds a DPDA from its component sets and transition table,
// validating every field per spec.md §4.6.
func NewDPDA(
	states, inputSymbols, stackSymbols []string,
	transitions map[string]map[string]map[string]Transition,
	initial, initialStackSymbol string,
	final []string,
	mode AcceptanceMode,
) (*DPDA, error) {
	d := &DPDA{
		base: base{
			states:             setutil.NewStringSet(states...),
			inputSymbols:       setutil.NewStringSet(inputSymbols...),
			stackSymbols:       setutil.NewStringSet(stackSymbols...),
			initial:            initial,
			initialStackSymbol: initialStackSymbol,
			final:              setutil.NewStringSet(final...),
			mode:               mode,
		},
		transitions: map[dpdaKey]Transition{},
	}

	for state, byInput := range transitions {
		for inputSymbol, byStack := range byInput {
			for stackSymbol, t := range byStack {
				d.transitions[dpdaKey{state, inputSymbol, stackSymbol}] = t
			}
		}
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DPDA) validate() error {
	if err := d.validateCommon(); err != nil {
		return err
	}

	hasEpsilon := map[[2]string]bool{} // (state, stackSymbol) -> has epsilon transition
	hasSymbol := map[[2]string]bool{}  // (state, stackSymbol) -> has some symbol transition

	for key, t := range d.transitions {
		if !d.states.Has(key.state) {
			return automerr.InvalidState(key.state)
		}
		if err := d.validateSymbol(key.state, key.inputSymbol); err != nil {
			return err
		}
		if err := d.validateStackSymbol(key.stackSymbol); err != nil {
			return err
		}
		if err := d.validateTarget(t); err != nil {
			return err
		}

		pair := [2]string{key.state, key.stackSymbol}
		if key.inputSymbol == epsilon {
			hasEpsilon[pair] = true
		} else {
			hasSymbol[pair] = true
		}
	}

	for pair := range hasEpsilon {
		if hasSymbol[pair] {
			return automerr.Nondeterminism(pair[0], pair[1], "")
		}
	}

	return nil
}

// DPDAWalk is the iterator that Stepwise returns over d's run on input.
// Each call to Next makes one move and returns the resulting
// configuration; the initial configuration is returned only when it is
// already accepting. The walk ends at the first accepting or stuck
// configuration.
type DPDAWalk struct {
	d    *DPDA
	cur  Configuration
	done bool
}

// Stepwise begins stepping d over input.
func (d *DPDA) Stepwise(input string) *DPDAWalk {
	return &DPDAWalk{
		d:   d,
		cur: Configuration{State: d.initial, RemainingInput: input, Stack: NewStack(d.initialStackSymbol)},
	}
}

// Next advances the walk by one configuration, mirroring
// dpda.py's read_input_stepwise: at each step it tries the symbol
// transition (if input remains) and the epsilon transition on the
// current stack top, and errors if both exist (nondeterminism) or ends
// the walk if the configuration has already been accepted or neither
// transition applies.
func (w *DPDAWalk) Next() (Configuration, bool, error) {
	if w.done {
		return Configuration{}, false, nil
	}

	if w.cur.accepted(w.d.final, w.d.mode) {
		w.done = true
		return w.cur, true, nil
	}

	top := w.cur.Stack.Top()
	symKey := dpdaKey{w.cur.State, epsilon, top}
	haveEpsilon := false
	var epsTransition Transition
	if t, ok := w.d.transitions[symKey]; ok {
		haveEpsilon = true
		epsTransition = t
	}

	haveSymbol := false
	var symTransition Transition
	var consumed string
	if len(w.cur.RemainingInput) > 0 {
		next := string(w.cur.RemainingInput[0])
		if t, ok := w.d.transitions[dpdaKey{w.cur.State, next, top}]; ok {
			haveSymbol = true
			symTransition = t
			consumed = next
		}
	}

	if haveEpsilon && haveSymbol {
		return Configuration{}, false, automerr.Nondeterminism(w.cur.State, top, w.cur.RemainingInput)
	}

	switch {
	case haveSymbol:
		w.cur = Configuration{
			State:          symTransition.State,
			RemainingInput: w.cur.RemainingInput[len(consumed):],
			Stack:          replaceTop(w.cur.Stack, symTransition),
		}
	case haveEpsilon:
		w.cur = Configuration{
			State:          epsTransition.State,
			RemainingInput: w.cur.RemainingInput,
			Stack:          replaceTop(w.cur.Stack, epsTransition),
		}
	default:
		w.done = true
		return w.cur, false, automerr.Rejection(w.cur.RemainingInput)
	}

	return w.cur, false, nil
}

// AcceptsInput reports whether d accepts input, running the full walk
// to completion.
func (d *DPDA) AcceptsInput(input string) (bool, error) {
	w := d.Stepwise(input)
	for {
		cfg, accepted, err := w.Next()
		if err != nil {
			var rejected *automerr.RejectionError
			if errors.As(err, &rejected) {
				return false, nil
			}
			return false, err
		}
		if accepted {
			return cfg.accepted(d.final, d.mode), nil
		}
	}
}
