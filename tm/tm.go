package tm

import (
	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// base holds the fields and validation shared by every TM variant
// (DTM, NTM, MNTM), ported out of tm.py's abstract TM base class
// (_read_input_symbol_subset, _validate_blank_symbol,
// _validate_nonfinal_initial_state) plus the final-state/transition
// checks duplicated across dtm.py and ntm.py.
type base struct {
	states       setutil.StringSet
	inputSymbols setutil.StringSet
	tapeSymbols  setutil.StringSet
	initial      string
	blank        string
	final        setutil.StringSet
}

// validateSymbolSubset requires that every input symbol is also a tape
// symbol, and that the tape alphabet is strictly larger (the blank
// symbol is a tape symbol that is never an input symbol).
func (b *base) validateSymbolSubset() error {
	for s := range b.inputSymbols {
		if !b.tapeSymbols.Has(s) {
			return automerr.InvalidSymbol(s)
		}
	}
	if b.inputSymbols.Has(b.blank) {
		return automerr.InvalidSymbol(b.blank)
	}
	return nil
}

func (b *base) validateBlankSymbol() error {
	if !b.tapeSymbols.Has(b.blank) {
		return automerr.InvalidSymbol(b.blank)
	}
	return nil
}

func (b *base) validateInitialState() error {
	if !b.states.Has(b.initial) {
		return automerr.InvalidState(b.initial)
	}
	return nil
}

func (b *base) validateFinalStates() error {
	for s := range b.final {
		if !b.states.Has(s) {
			return automerr.InvalidState(s)
		}
	}
	return nil
}

func (b *base) validateNonfinalInitialState() error {
	if b.final.Has(b.initial) {
		return automerr.InitialState(b.initial)
	}
	return nil
}

func (b *base) validateCommon() error {
	if err := b.validateSymbolSubset(); err != nil {
		return err
	}
	if err := b.validateBlankSymbol(); err != nil {
		return err
	}
	if err := b.validateInitialState(); err != nil {
		return err
	}
	if err := b.validateFinalStates(); err != nil {
		return err
	}
	return b.validateNonfinalInitialState()
}

// validateNoFinalStateTransitions requires that hasTransitions(state)
// be false for every final state, matching
// _validate_final_state_transitions in dtm.py/ntm.py.
func (b *base) validateNoFinalStateTransitions(hasTransitions func(state string) bool) error {
	for s := range b.final {
		if hasTransitions(s) {
			return automerr.FinalState(s)
		}
	}
	return nil
}
