package tm

import (
	"errors"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// dtmKey identifies a DTM transition's left-hand side: the state and
// the symbol under the head.
type dtmKey struct {
	state  string
	symbol string
}

// dtmResult is a DTM transition's right-hand side: the new state, the
// symbol written, and the head's movement.
type dtmResult struct {
	state     string
	symbol    string
	direction Direction
}

// DTM is a deterministic Turing machine with at most one transition
// per (state, tape symbol).
type DTM struct {
	base
	transitions map[dtmKey]dtmResult
}

// NewDTM builds a DTM from its component sets and transition table.
func NewDTM(
	states, inputSymbols, tapeSymbols []string,
	transitions map[string]map[string][3]string,
	initial, blank string,
	final []string,
) (*DTM, error) {
	d := &DTM{
		base: base{
			states:       setutil.NewStringSet(states...),
			inputSymbols: setutil.NewStringSet(inputSymbols...),
			tapeSymbols:  setutil.NewStringSet(tapeSymbols...),
			initial:      initial,
			blank:        blank,
			final:        setutil.NewStringSet(final...),
		},
		transitions: map[dtmKey]dtmResult{},
	}

	for state, bySymbol := range transitions {
		for symbol, result := range bySymbol {
			d.transitions[dtmKey{state, symbol}] = dtmResult{
				state:     result[0],
				symbol:    result[1],
				direction: Direction(result[2]),
			}
		}
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DTM) hasTransitionsFor(state string) bool {
	for k := range d.transitions {
		if k.state == state {
			return true
		}
	}
	return false
}

func (d *DTM) validate() error {
	if err := d.validateCommon(); err != nil {
		return err
	}
	for key, r := range d.transitions {
		if !d.states.Has(key.state) {
			return automerr.InvalidState(key.state)
		}
		if !d.tapeSymbols.Has(key.symbol) {
			return automerr.InvalidSymbol(key.symbol)
		}
		if !d.states.Has(r.state) {
			return automerr.InvalidState(r.state)
		}
		if !d.tapeSymbols.Has(r.symbol) {
			return automerr.InvalidSymbol(r.symbol)
		}
		if err := validateDirection(r.direction); err != nil {
			return err
		}
	}
	return d.validateNoFinalStateTransitions(d.hasTransitionsFor)
}

// Configuration is an instantaneous description of a single-tape TM
// run: the current state and tape.
type Configuration struct {
	State string
	Tape  Tape
}

func (c Configuration) accepted(final setutil.StringSet) bool {
	return final.Has(c.State)
}

// DTMWalk is a pull-iterator over a DTM run, one transition per Next.
type DTMWalk struct {
	d    *DTM
	cur  Configuration
	done bool
}

// Stepwise begins stepping d over input, matching dtm.py's
// read_input_stepwise.
func (d *DTM) Stepwise(input string) *DTMWalk {
	symbols := make([]string, len(input))
	for i, r := range input {
		symbols[i] = string(r)
	}
	return &DTMWalk{d: d, cur: Configuration{State: d.initial, Tape: NewTape(symbols, d.blank)}}
}

// Next advances the walk by one transition. The initial state can
// never be final (validated at construction), so the first call
// always takes a step.
func (w *DTMWalk) Next() (Configuration, bool, error) {
	if w.done {
		return Configuration{}, false, nil
	}
	if w.cur.accepted(w.d.final) {
		w.done = true
		return w.cur, true, nil
	}

	r, ok := w.d.transitions[dtmKey{w.cur.State, w.cur.Tape.Read()}]
	if !ok {
		w.done = true
		return w.cur, false, automerr.Rejection(w.cur.Tape.String())
	}

	w.cur = Configuration{
		State: r.state,
		Tape:  w.cur.Tape.Write(r.symbol).Move(r.direction),
	}
	return w.cur, false, nil
}

// AcceptsInput runs d to completion on input and reports acceptance.
func (d *DTM) AcceptsInput(input string) (bool, error) {
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
			return cfg.accepted(d.final), nil
		}
	}
}
