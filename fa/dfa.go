// Package fa implements the finite-automaton core of spec.md §4.2-§4.5: DFA
// and NFA value types with their algorithmic kernels, and the GNFA bridge to
// regular expressions. Every exported type is an immutable value object per
// spec.md §3: derived automata (minimized, complemented, products, subset
// construction) are always freshly constructed, never produced by mutating a
// source value.
//
// Grounded on internal/ictiobus/automaton's DFA[E]/NFA[E] (AddState,
// AddTransition, Validate, Copy, EpsilonClosure, ToDFA) generalized from
// parser-viable-prefix automata to general-purpose language recognizers.
package fa

import (
	"fmt"
	"math/big"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
	"github.com/google/uuid"
)

// TrapState is the conventional name used when completing a partial DFA.
const TrapState = "__trap__"

// DFA is a deterministic finite automaton. Values are immutable after
// construction; use the methods below to derive new automata.
type DFA struct {
	states       setutil.StringSet
	inputSymbols setutil.StringSet
	transitions  map[string]map[string]string // state -> symbol -> state
	initial      string
	final        setutil.StringSet
	allowPartial bool

	// caches, rebuilt lazily; never observable as mutation of the logical
	// value. Construction always produces a fresh instance with nil caches.
	cache struct {
		bigCounts  map[int][]*big.Int // keyed by length, indexed in stateOrder order
		stateOrder []string
	}
}

// Option configures DFA construction.
type Option func(*dfaConfig)

type dfaConfig struct {
	allowPartial bool
}

// AllowPartial permits the constructed DFA to omit transitions for some
// (state, symbol) pairs; such a pair is treated as a rejection, per spec.md's
// "Partial DFA" glossary entry.
func AllowPartial() Option {
	return func(c *dfaConfig) { c.allowPartial = true }
}

// NewDFA constructs and validates a DFA. transitions maps each state to its
// per-symbol successor. Construction is transactional: if validation fails,
// no partial value is returned.
func NewDFA(states, inputSymbols []string, transitions map[string]map[string]string, initial string, final []string, opts ...Option) (*DFA, error) {
	var cfg dfaConfig
	for _, o := range opts {
		o(&cfg)
	}

	d := &DFA{
		states:       setutil.NewStringSet(states...),
		inputSymbols: setutil.NewStringSet(inputSymbols...),
		transitions:  copyTransitionTable(transitions),
		initial:      initial,
		final:        setutil.NewStringSet(final...),
		allowPartial: cfg.allowPartial,
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func copyTransitionTable(t map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(t))
	for s, row := range t {
		newRow := make(map[string]string, len(row))
		for sym, to := range row {
			newRow[sym] = to
		}
		out[s] = newRow
	}
	return out
}

func (d *DFA) validate() error {
	if !d.states.Has(d.initial) {
		return automerr.InvalidState(d.initial)
	}
	for s := range d.final {
		if !d.states.Has(s) {
			return automerr.InvalidState(s)
		}
	}

	for s := range d.states {
		row, hasRow := d.transitions[s]
		if !hasRow {
			if !d.allowPartial {
				return automerr.MissingState(s)
			}
			continue
		}
		for sym, to := range row {
			if !d.inputSymbols.Has(sym) {
				return automerr.InvalidSymbol(sym)
			}
			if !d.states.Has(to) {
				return automerr.InvalidState(to)
			}
		}
		if !d.allowPartial {
			for sym := range d.inputSymbols {
				if _, ok := row[sym]; !ok {
					return automerr.MissingSymbol(s, sym)
				}
			}
		}
	}

	return nil
}

// States returns the automaton's state set.
func (d *DFA) States() setutil.StringSet { return d.states.Copy() }

// InputSymbols returns the automaton's input alphabet.
func (d *DFA) InputSymbols() setutil.StringSet { return d.inputSymbols.Copy() }

// Initial returns the initial state.
func (d *DFA) Initial() string { return d.initial }

// FinalStates returns the set of accepting states.
func (d *DFA) FinalStates() setutil.StringSet { return d.final.Copy() }

// IsPartial returns whether the DFA may omit transitions.
func (d *DFA) IsPartial() bool { return d.allowPartial }

// IsAccepting returns whether state is a final state. Returns false for an
// unknown state.
func (d *DFA) IsAccepting(state string) bool { return d.final.Has(state) }

// Next returns the successor of state on symbol, and whether a transition
// exists.
func (d *DFA) Next(state, symbol string) (string, bool) {
	row, ok := d.transitions[state]
	if !ok {
		return "", false
	}
	to, ok := row[symbol]
	return to, ok
}

// orderedStates returns state names sorted alphabetically, always with the
// initial state first — the canonical order used by transition iteration.
func (d *DFA) orderedStates() []string {
	rest := setutil.SortedElements(d.states.Difference(setutil.NewStringSet(d.initial)))
	return append([]string{d.initial}, rest...)
}

// orderedSymbols returns the input alphabet in the canonical total order
// (lexicographic) spec.md §5 requires for reproducible enumeration.
func (d *DFA) orderedSymbols() []string {
	return setutil.SortedElements(d.inputSymbols)
}

// Transition is a single (from, symbol, to) edge, used by IterTransitions
// and the diagram-renderer external interface of spec.md §6.
type Transition struct {
	From, Symbol, To string
}

// IterTransitions yields each transition exactly once, in canonical
// (state, symbol) order, satisfying spec.md §6's guarantee for external
// collaborators such as a diagram renderer.
func (d *DFA) IterTransitions() []Transition {
	var out []Transition
	for _, s := range d.orderedStates() {
		row := d.transitions[s]
		for _, sym := range d.orderedSymbols() {
			if to, ok := row[sym]; ok {
				out = append(out, Transition{From: s, Symbol: sym, To: to})
			}
		}
	}
	return out
}

func (d *DFA) String() string {
	return fmt.Sprintf("DFA(states=%v, initial=%q, final=%v, transitions=%v)",
		setutil.SortedElements(d.states), d.initial, setutil.SortedElements(d.final), d.IterTransitions())
}

// Copy returns a deep duplicate of d.
func (d *DFA) Copy() *DFA {
	return &DFA{
		states:       d.states.Copy(),
		inputSymbols: d.inputSymbols.Copy(),
		transitions:  copyTransitionTable(d.transitions),
		initial:      d.initial,
		final:        d.final.Copy(),
		allowPartial: d.allowPartial,
	}
}

// Path is one step of an accepting (or rejecting) run, per spec.md §6's
// `_get_input_path` external interface.
type Path struct {
	From, To, Label string
}

// InputPath returns the sequence of transitions taken while reading w, along
// with the terminal acceptance verdict. Deterministic per (d, w).
func (d *DFA) InputPath(w string) ([]Path, bool) {
	var path []Path
	cur := d.initial
	accept := true
	for _, r := range w {
		sym := string(r)
		to, ok := d.Next(cur, sym)
		if !ok {
			accept = false
			break
		}
		path = append(path, Path{From: cur, To: to, Label: sym})
		cur = to
	}
	if accept {
		accept = d.IsAccepting(cur)
	}
	return path, accept
}

// DFAWalk is a pull-based iterator over DFA configurations, per spec.md §9's
// design note that stepwise execution maps to pull iterators with bounded
// per-step work.
type DFAWalk struct {
	d         *DFA
	symbols   []rune
	pos       int
	state     string
	started   bool
	exhausted bool
}

// Stepwise begins a stepwise walk of d over input: the first call to Next
// returns the initial state; each subsequent call consumes one symbol and
// returns the new current state, or TrapState if the DFA is partial and no
// transition exists.
func (d *DFA) Stepwise(input string) *DFAWalk {
	return &DFAWalk{d: d, symbols: []rune(input), state: d.initial}
}

// Next returns the next configuration and whether the walk produced one
// (false once the walk is exhausted).
func (w *DFAWalk) Next() (string, bool) {
	if w.exhausted {
		return "", false
	}
	if !w.started {
		w.started = true
		if len(w.symbols) == 0 {
			w.exhausted = true
		}
		return w.state, true
	}
	if w.pos >= len(w.symbols) {
		w.exhausted = true
		return "", false
	}

	sym := string(w.symbols[w.pos])
	w.pos++

	to, ok := w.d.Next(w.state, sym)
	if !ok {
		if !w.d.allowPartial {
			panic(fmt.Sprintf("non-partial DFA missing transition for state %q symbol %q", w.state, sym))
		}
		w.state = TrapState
		w.exhausted = true
		return w.state, true
	}

	w.state = to
	if w.pos >= len(w.symbols) {
		w.exhausted = true
	}
	return w.state, true
}

// Walk drains the entire stepwise trace into a slice of configurations,
// stopping early (with trapped=true) if a partial DFA has no transition for
// some symbol.
func (d *DFA) Walk(input string) (states []string, trapped bool) {
	cur := d.initial
	states = append(states, cur)
	for _, r := range input {
		sym := string(r)
		to, ok := d.Next(cur, sym)
		if !ok {
			if d.allowPartial {
				states = append(states, TrapState)
				return states, true
			}
			// non-partial DFAs have a transition for every alphabet symbol
			// per validation; a symbol outside the alphabet reaches here.
			panic(fmt.Sprintf("non-partial DFA missing transition for state %q symbol %q", cur, sym))
		}
		cur = to
		states = append(states, cur)
	}
	return states, false
}

// ReadInput drains the stepwise trace and returns automerr.Rejection if the
// terminal configuration is not accepting.
func (d *DFA) ReadInput(input string) error {
	for _, r := range input {
		if !d.inputSymbols.Has(string(r)) {
			return automerr.Rejection(input)
		}
	}
	states, trapped := d.Walk(input)
	if trapped {
		return automerr.Rejection(input)
	}
	final := states[len(states)-1]
	if !d.IsAccepting(final) {
		return automerr.Rejection(input)
	}
	return nil
}

// AcceptsInput returns whether input is accepted. Deterministic per (d,
// input).
func (d *DFA) AcceptsInput(input string) bool {
	return d.ReadInput(input) == nil
}

// freshName returns a name guaranteed not to collide with existing, using a
// UUID suffix. Used by derivations (to_complete's trap state, in particular)
// when the caller hasn't supplied a preferred name or that name collides.
func freshName(prefix string, existing setutil.StringSet) string {
	name := prefix
	for existing.Has(name) {
		name = prefix + "-" + uuid.NewString()
	}
	return name
}
