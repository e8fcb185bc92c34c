package pda

import (
	"errors"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// npdaKey mirrors dpdaKey but maps to a set of transitions rather than
// a single one, since an NPDA may branch.
type npdaKey struct {
	state       string
	inputSymbol string
	stackSymbol string
}

// NPDA is a nondeterministic pushdown automaton: any number of
// transitions may apply to a given (state, input symbol, stack top),
// including any mix of epsilon and symbol transitions.
type NPDA struct {
	base
	transitions map[npdaKey][]Transition
}

// NewNPDA builds an NPDA from its component sets and transition table.
func NewNPDA(
	states, inputSymbols, stackSymbols []string,
	transitions map[string]map[string]map[string][]Transition,
	initial, initialStackSymbol string,
	final []string,
	mode AcceptanceMode,
) (*NPDA, error) {
	n := &NPDA{
		base: base{
			states:             setutil.NewStringSet(states...),
			inputSymbols:       setutil.NewStringSet(inputSymbols...),
			stackSymbols:       setutil.NewStringSet(stackSymbols...),
			initial:            initial,
			initialStackSymbol: initialStackSymbol,
			final:              setutil.NewStringSet(final...),
			mode:               mode,
		},
		transitions: map[npdaKey][]Transition{},
	}

	for state, byInput := range transitions {
		for inputSymbol, byStack := range byInput {
			for stackSymbol, ts := range byStack {
				n.transitions[npdaKey{state, inputSymbol, stackSymbol}] = append(
					[]Transition(nil), ts...)
			}
		}
	}

	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *NPDA) validate() error {
	if err := n.validateCommon(); err != nil {
		return err
	}
	for key, ts := range n.transitions {
		if !n.states.Has(key.state) {
			return automerr.InvalidState(key.state)
		}
		if err := n.validateSymbol(key.state, key.inputSymbol); err != nil {
			return err
		}
		if err := n.validateStackSymbol(key.stackSymbol); err != nil {
			return err
		}
		for _, t := range ts {
			if err := n.validateTarget(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// configKey flattens a configuration into a comparable string so
// duplicate configurations reached from different branches of the BFS
// frontier can be collapsed (two configurations with equal state,
// remaining input, and stack contents are indistinguishable).
func configKey(c Configuration) string {
	return c.State + "\x00" + c.RemainingInput + "\x00" + joinStack(c.Stack)
}

func joinStack(s Stack) string {
	out := ""
	for _, sym := range s.Elements() {
		out += sym + "\x01"
	}
	return out
}

// successors returns every configuration reachable from cfg in one
// move: the symbol transitions available if input remains, plus every
// epsilon transition on the current stack top, matching
// npda.py's _get_next_configurations.
func (n *NPDA) successors(cfg Configuration) []Configuration {
	top := cfg.Stack.Top()
	var out []Configuration

	if len(cfg.RemainingInput) > 0 {
		next := string(cfg.RemainingInput[0])
		for _, t := range n.transitions[npdaKey{cfg.State, next, top}] {
			out = append(out, Configuration{
				State:          t.State,
				RemainingInput: cfg.RemainingInput[len(next):],
				Stack:          replaceTop(cfg.Stack, t),
			})
		}
	}

	for _, t := range n.transitions[npdaKey{cfg.State, epsilon, top}] {
		out = append(out, Configuration{
			State:          t.State,
			RemainingInput: cfg.RemainingInput,
			Stack:          replaceTop(cfg.Stack, t),
		})
	}

	return out
}

// NPDAWalk iterates the BFS frontier of an NPDA run, one generation of
// configurations at a time.
type NPDAWalk struct {
	n        *NPDA
	frontier []Configuration
	done     bool
}

// Stepwise begins an NPDA run on input, mirroring npda.py's
// read_input_stepwise: the frontier starts as the singleton initial
// configuration.
func (n *NPDA) Stepwise(input string) *NPDAWalk {
	return &NPDAWalk{
		n:        n,
		frontier: []Configuration{{State: n.initial, RemainingInput: input, Stack: NewStack(n.initialStackSymbol)}},
	}
}

// Next advances the walk by one generation, returning the new frontier
// and whether any configuration in it accepts. The walk ends (ok =
// false) once the frontier empties with no acceptance ever reached, or
// once an accepting configuration is found.
func (w *NPDAWalk) Next() (frontier []Configuration, accepted bool, err error) {
	if w.done {
		return nil, false, nil
	}

	for _, cfg := range w.frontier {
		if cfg.accepted(w.n.final, w.n.mode) {
			w.done = true
			return w.frontier, true, nil
		}
	}

	seen := map[string]bool{}
	var next []Configuration
	for _, cfg := range w.frontier {
		for _, succ := range w.n.successors(cfg) {
			k := configKey(succ)
			if seen[k] {
				continue
			}
			seen[k] = true
			next = append(next, succ)
		}
	}

	if len(next) == 0 {
		w.done = true
		return nil, false, automerr.Rejection(inputOf(w.frontier))
	}

	w.frontier = next
	return next, false, nil
}

func inputOf(frontier []Configuration) string {
	if len(frontier) == 0 {
		return ""
	}
	return frontier[0].RemainingInput
}

// AcceptsInput reports whether n accepts input, running the BFS to
// completion or exhaustion.
func (n *NPDA) AcceptsInput(input string) (bool, error) {
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
