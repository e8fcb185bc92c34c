package fa

import (
	"fmt"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// ToComplete returns a DFA equivalent to d but with every (state, symbol)
// pair defined, adding trap (a non-final state absorbing all otherwise
// undefined transitions on every symbol) if d is partial. trap is the
// preferred name for the new state; if it collides with an existing state a
// fresh name is generated.
func (d *DFA) ToComplete(trap string) *DFA {
	if !d.allowPartial {
		return d.Copy()
	}
	if trap == "" {
		trap = TrapState
	}
	trap = freshName(trap, d.states)

	newStates := d.states.Copy()
	newStates.Add(trap)
	newTrans := copyTransitionTable(d.transitions)

	trapRow := map[string]string{}
	for _, sym := range d.orderedSymbols() {
		trapRow[sym] = trap
	}
	newTrans[trap] = trapRow

	for _, s := range d.orderedStates() {
		row, ok := newTrans[s]
		if !ok {
			row = map[string]string{}
			newTrans[s] = row
		}
		for _, sym := range d.orderedSymbols() {
			if _, ok := row[sym]; !ok {
				row[sym] = trap
			}
		}
	}

	return &DFA{
		states:       newStates,
		inputSymbols: d.inputSymbols.Copy(),
		transitions:  newTrans,
		initial:      d.initial,
		final:        d.final.Copy(),
		allowPartial: false,
	}
}

// ToPartial removes states that are unreachable, or from which no final
// state is reachable, provided doing so does not change the accepted
// language: precisely the states outside the trim subgraph. Trap states are
// the canonical candidates for removal.
func (d *DFA) ToPartial() *DFA {
	trim := d.trimStates()
	if trim.Len() == d.states.Len() {
		c := d.Copy()
		c.allowPartial = true
		return c
	}

	newStates := trim.Copy()
	newTrans := map[string]map[string]string{}
	for s := range trim {
		row := map[string]string{}
		for sym, to := range d.transitions[s] {
			if trim.Has(to) {
				row[sym] = to
			}
		}
		newTrans[s] = row
	}

	return &DFA{
		states:       newStates,
		inputSymbols: d.inputSymbols.Copy(),
		transitions:  newTrans,
		initial:      d.initial,
		final:        d.final.Intersection(trim),
		allowPartial: true,
	}
}

// Complement returns the DFA accepting the complement language. For a
// partial DFA, the complement is computed on a completed copy, since
// otherwise the "trap" rejections would incorrectly become acceptances.
func (d *DFA) Complement() *DFA {
	complete := d
	if d.allowPartial {
		complete = d.ToComplete(TrapState)
	}
	newFinal := complete.states.Difference(complete.final)
	return &DFA{
		states:       complete.states.Copy(),
		inputSymbols: complete.inputSymbols.Copy(),
		transitions:  copyTransitionTable(complete.transitions),
		initial:      complete.initial,
		final:        newFinal,
		allowPartial: false,
	}
}

type statePair struct{ a, b string }

func pairName(a, b string) string {
	return fmt.Sprintf("(%s, %s)", a, b)
}

// productPairs performs a BFS product construction over (d, o), exploring
// only reachable pairs, for use by the set operations and the
// subset/superset/disjointness emptiness checks below. It returns the
// transition table keyed by paired-state name alongside the name->component
// mapping, since callers need both the table and the ability to test
// finality of each component.
func productPairs(d, o *DFA) (transitions map[string]map[string]string, pairs map[string]statePair, err error) {
	if !d.inputSymbols.Equal(o.inputSymbols) {
		return nil, nil, automerr.SymbolMismatch(d.orderedSymbols(), o.orderedSymbols())
	}

	symbols := d.orderedSymbols()
	startName := pairName(d.initial, o.initial)

	transitions = map[string]map[string]string{}
	pairs = map[string]statePair{startName: {d.initial, o.initial}}
	visited := setutil.NewStringSet(startName)

	queue := []string{startName}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		p := pairs[name]

		row := map[string]string{}
		for _, sym := range symbols {
			toA, okA := d.Next(p.a, sym)
			toB, okB := o.Next(p.b, sym)
			if !okA || !okB {
				continue
			}
			toName := pairName(toA, toB)
			row[sym] = toName
			if !visited.Has(toName) {
				visited.Add(toName)
				pairs[toName] = statePair{toA, toB}
				queue = append(queue, toName)
			}
		}
		transitions[name] = row
	}

	return transitions, pairs, nil
}

// binaryOp builds a new DFA from the reachable product of d and o, using
// accept to decide finality of a paired state from the two source
// memberships.
func binaryOp(d, o *DFA, accept func(aFinal, bFinal bool) bool) (*DFA, error) {
	d, o = d.ToComplete(TrapState), o.ToComplete(TrapState)
	transitions, pairs, err := productPairs(d, o)
	if err != nil {
		return nil, err
	}

	states := setutil.NewStringSet()
	final := setutil.NewStringSet()
	for name, p := range pairs {
		states.Add(name)
		if accept(d.IsAccepting(p.a), o.IsAccepting(p.b)) {
			final.Add(name)
		}
	}

	return &DFA{
		states:       states,
		inputSymbols: d.inputSymbols.Copy(),
		transitions:  transitions,
		initial:      pairName(d.initial, o.initial),
		final:        final,
		allowPartial: true,
	}, nil
}

// Union returns the DFA accepting L(d) ∪ L(o).
func (d *DFA) Union(o *DFA) (*DFA, error) {
	return binaryOp(d, o, func(a, b bool) bool { return a || b })
}

// Intersection returns the DFA accepting L(d) ∩ L(o).
func (d *DFA) Intersection(o *DFA) (*DFA, error) {
	return binaryOp(d, o, func(a, b bool) bool { return a && b })
}

// Difference returns the DFA accepting L(d) \ L(o).
func (d *DFA) Difference(o *DFA) (*DFA, error) {
	return binaryOp(d, o, func(a, b bool) bool { return a && !b })
}

// SymmetricDifference returns the DFA accepting L(d) △ L(o).
func (d *DFA) SymmetricDifference(o *DFA) (*DFA, error) {
	return binaryOp(d, o, func(a, b bool) bool { return a != b })
}

// emptinessOfWitness returns true iff no reachable product state satisfies
// witness(aFinal, bFinal) — used by IsSubsetOf/IsSupersetOf/IsDisjointWith,
// each of which is the emptiness check of a product whose final-state
// predicate encodes the desired counterexample.
func emptinessOfWitness(d, o *DFA, witness func(aFinal, bFinal bool) bool) (bool, error) {
	combined, err := binaryOp(d, o, witness)
	if err != nil {
		return false, err
	}
	return combined.IsEmpty(), nil
}

// IsSubsetOf reports whether L(d) ⊆ L(o): no reachable product state
// satisfies (p ∈ F_d ∧ q ∉ F_o).
func (d *DFA) IsSubsetOf(o *DFA) (bool, error) {
	return emptinessOfWitness(d, o, func(aFinal, bFinal bool) bool { return aFinal && !bFinal })
}

// IsSupersetOf reports whether L(d) ⊇ L(o).
func (d *DFA) IsSupersetOf(o *DFA) (bool, error) {
	return o.IsSubsetOf(d)
}

// IsDisjointWith reports whether L(d) ∩ L(o) = ∅.
func (d *DFA) IsDisjointWith(o *DFA) (bool, error) {
	return emptinessOfWitness(d, o, func(aFinal, bFinal bool) bool { return aFinal && bFinal })
}
