package pda

import (
	"fmt"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// epsilon is the reserved input-symbol key denoting a lambda transition,
// matching fa's epsilon convention.
const epsilon = ""

// AcceptanceMode selects which of a PDA run's terminal conditions counts
// as acceptance.
type AcceptanceMode string

const (
	FinalState AcceptanceMode = "final_state"
	EmptyStack AcceptanceMode = "empty_stack"
	Both       AcceptanceMode = "both"
)

func (m AcceptanceMode) valid() bool {
	switch m {
	case FinalState, EmptyStack, Both:
		return true
	default:
		return false
	}
}

// Configuration is an instantaneous description of a PDA run: its
// current state, the input not yet consumed, and the stack contents.
type Configuration struct {
	State          string
	RemainingInput string
	Stack          Stack
}

func (c Configuration) accepted(final setutil.StringSet, mode AcceptanceMode) bool {
	if c.RemainingInput != "" {
		return false
	}
	if (mode == EmptyStack || mode == Both) && c.Stack.Empty() {
		return true
	}
	if (mode == FinalState || mode == Both) && final.Has(c.State) {
		return true
	}
	return false
}

// Transition is the (new state, symbols to push) result of a PDA move;
// the popped stack top is replaced by Push, with Push[0] becoming the
// new top. An empty Push is equivalent to a bare pop.
type Transition struct {
	State string
	Push  []string
}

// base holds the fields and validation shared by DPDA and NPDA.
type base struct {
	states             setutil.StringSet
	inputSymbols       setutil.StringSet
	stackSymbols       setutil.StringSet
	initial            string
	initialStackSymbol string
	final              setutil.StringSet
	mode               AcceptanceMode
}

func (b *base) validateCommon() error {
	if !b.states.Has(b.initial) {
		return automerr.InvalidState(b.initial)
	}
	if !b.stackSymbols.Has(b.initialStackSymbol) {
		return automerr.InvalidSymbol(b.initialStackSymbol)
	}
	for s := range b.final {
		if !b.states.Has(s) {
			return automerr.InvalidState(s)
		}
	}
	if !b.mode.valid() {
		return automerr.InvalidAcceptanceMode(string(b.mode))
	}
	return nil
}

func (b *base) validateSymbol(state, inputSymbol string) error {
	if inputSymbol != epsilon && !b.inputSymbols.Has(inputSymbol) {
		return automerr.InvalidSymbol(inputSymbol)
	}
	return nil
}

func (b *base) validateStackSymbol(stackSymbol string) error {
	if !b.stackSymbols.Has(stackSymbol) {
		return automerr.InvalidSymbol(stackSymbol)
	}
	return nil
}

func (b *base) validateTarget(t Transition) error {
	if !b.states.Has(t.State) {
		return automerr.InvalidState(t.State)
	}
	for _, sym := range t.Push {
		if !b.stackSymbols.Has(sym) {
			return automerr.InvalidSymbol(sym)
		}
	}
	return nil
}

func replaceTop(s Stack, t Transition) Stack {
	if len(t.Push) == 0 {
		return s.Pop()
	}
	return s.Replace(t.Push...)
}

func (b *base) String() string {
	return fmt.Sprintf("states=%v input=%v stack=%v initial=%q mode=%s",
		setutil.SortedElements(b.states), setutil.SortedElements(b.inputSymbols),
		setutil.SortedElements(b.stackSymbols), b.initial, b.mode)
}
