package fa

import (
	"fmt"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// epsilon is the reserved symbol key denoting a lambda (epsilon)
// transition in an NFA's transition table.
const epsilon = ""

// NFA is a nondeterministic finite automaton with epsilon transitions.
// Immutable after construction, mirroring DFA.
type NFA struct {
	states       setutil.StringSet
	inputSymbols setutil.StringSet
	transitions  map[string]map[string]setutil.StringSet // state -> symbol-or-epsilon -> targets
	initial      string
	final        setutil.StringSet

	cache struct {
		closures map[string]setutil.StringSet
	}
}

// NewNFA constructs and validates an NFA.
func NewNFA(states, inputSymbols []string, transitions map[string]map[string][]string, initial string, final []string) (*NFA, error) {
	n := &NFA{
		states:       setutil.NewStringSet(states...),
		inputSymbols: setutil.NewStringSet(inputSymbols...),
		transitions:  map[string]map[string]setutil.StringSet{},
		initial:      initial,
		final:        setutil.NewStringSet(final...),
	}
	for s, row := range transitions {
		newRow := map[string]setutil.StringSet{}
		for sym, targets := range row {
			newRow[sym] = setutil.NewStringSet(targets...)
		}
		n.transitions[s] = newRow
	}

	if err := n.validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *NFA) validate() error {
	if !n.states.Has(n.initial) {
		return automerr.InvalidState(n.initial)
	}
	for s := range n.final {
		if !n.states.Has(s) {
			return automerr.InvalidState(s)
		}
	}
	for s, row := range n.transitions {
		if !n.states.Has(s) {
			return automerr.InvalidState(s)
		}
		for sym, targets := range row {
			if sym != epsilon && !n.inputSymbols.Has(sym) {
				return automerr.InvalidSymbol(sym)
			}
			for t := range targets {
				if !n.states.Has(t) {
					return automerr.InvalidState(t)
				}
			}
		}
	}
	return nil
}

// States returns the automaton's state set.
func (n *NFA) States() setutil.StringSet { return n.states.Copy() }

// InputSymbols returns the automaton's input alphabet.
func (n *NFA) InputSymbols() setutil.StringSet { return n.inputSymbols.Copy() }

// Initial returns the initial state.
func (n *NFA) Initial() string { return n.initial }

// FinalStates returns the set of accepting states.
func (n *NFA) FinalStates() setutil.StringSet { return n.final.Copy() }

func (n *NFA) orderedSymbols() []string {
	return setutil.SortedElements(n.inputSymbols)
}

func (n *NFA) orderedStates() []string {
	rest := setutil.SortedElements(n.states.Difference(setutil.NewStringSet(n.initial)))
	return append([]string{n.initial}, rest...)
}

// move returns the set of states reachable from any state in from on
// symbol (the dragon book's MOVE(T, a), per internal/ictiobus/automaton's
// NFA.MOVE).
func (n *NFA) move(from setutil.StringSet, symbol string) setutil.StringSet {
	out := setutil.NewStringSet()
	for s := range from {
		if targets, ok := n.transitions[s][symbol]; ok {
			out.AddAll(targets)
		}
	}
	return out
}

// EpsilonClosure returns {s} union every state reachable from s by one or
// more epsilon transitions, cached per instance since it's queried
// repeatedly during stepwise execution and subset construction.
func (n *NFA) EpsilonClosure(s string) setutil.StringSet {
	if n.cache.closures == nil {
		n.cache.closures = map[string]setutil.StringSet{}
	}
	if c, ok := n.cache.closures[s]; ok {
		return c.Copy()
	}

	closure := setutil.NewStringSet(s)
	queue := []string{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for t := range n.transitions[cur][epsilon] {
			if !closure.Has(t) {
				closure.Add(t)
				queue = append(queue, t)
			}
		}
	}
	n.cache.closures[s] = closure
	return closure.Copy()
}

// EpsilonClosureOfSet returns the union of EpsilonClosure over every state
// in states.
func (n *NFA) EpsilonClosureOfSet(states setutil.StringSet) setutil.StringSet {
	out := setutil.NewStringSet()
	for s := range states {
		out.AddAll(n.EpsilonClosure(s))
	}
	return out
}

// Stepwise configuration: the current set of states reached so far.
type NFAWalk struct {
	n         *NFA
	symbols   []rune
	pos       int
	current   setutil.StringSet
	started   bool
	exhausted bool
}

// Stepwise begins a stepwise walk: the first Next() call yields the
// epsilon closure of the initial state; each subsequent call consumes one
// symbol and yields the new configuration (closure of MOVE of the
// previous configuration).
func (n *NFA) Stepwise(input string) *NFAWalk {
	return &NFAWalk{n: n, symbols: []rune(input)}
}

// Next returns the next configuration, or (nil, false) once exhausted.
func (w *NFAWalk) Next() (setutil.StringSet, bool) {
	if w.exhausted {
		return nil, false
	}
	if !w.started {
		w.started = true
		w.current = w.n.EpsilonClosure(w.n.initial)
		if len(w.symbols) == 0 {
			w.exhausted = true
		}
		return w.current.Copy(), true
	}
	if w.pos >= len(w.symbols) {
		w.exhausted = true
		return nil, false
	}
	sym := string(w.symbols[w.pos])
	w.pos++
	w.current = w.n.EpsilonClosureOfSet(w.n.move(w.current, sym))
	if w.pos >= len(w.symbols) {
		w.exhausted = true
	}
	return w.current.Copy(), true
}

// AcceptsInput reports whether input is accepted: the terminal
// configuration intersects the final states.
func (n *NFA) AcceptsInput(input string) bool {
	walk := n.Stepwise(input)
	var last setutil.StringSet
	for {
		cfg, ok := walk.Next()
		if !ok {
			break
		}
		last = cfg
	}
	return last.Any(func(s string) bool { return n.final.Has(s) })
}

// ToDFA converts n to an equivalent DFA via subset construction
// (algorithm 3.20 of the dragon book), naming each DFA state after the
// frozen, alphabetized membership of its NFA-state subset, the same
// scheme internal/ictiobus/automaton's NFA.ToDFA uses for its Dstates
// keys.
func (n *NFA) ToDFA() *DFA {
	symbols := n.orderedSymbols()
	start := n.EpsilonClosure(n.initial)
	startName := setutil.StringOrdered(start)

	dStates := map[string]setutil.StringSet{startName: start}
	marked := setutil.NewStringSet()

	transitions := map[string]map[string]string{}
	var final []string

	for {
		var unmarked []string
		for name := range dStates {
			if !marked.Has(name) {
				unmarked = append(unmarked, name)
			}
		}
		if len(unmarked) == 0 {
			break
		}
		setutil.SortedElements(setutil.NewStringSet(unmarked...))

		for _, tName := range unmarked {
			T := dStates[tName]
			marked.Add(tName)

			if T.Any(func(s string) bool { return n.final.Has(s) }) {
				final = append(final, tName)
			}

			row := map[string]string{}
			for _, a := range symbols {
				U := n.EpsilonClosureOfSet(n.move(T, a))
				if U.Empty() {
					continue
				}
				uName := setutil.StringOrdered(U)
				if _, ok := dStates[uName]; !ok {
					dStates[uName] = U
				}
				row[a] = uName
			}
			transitions[tName] = row
		}
	}

	states := make([]string, 0, len(dStates))
	for name := range dStates {
		states = append(states, name)
	}

	d, err := NewDFA(states, symbols, transitions, startName, final, AllowPartial())
	if err != nil {
		panic(fmt.Sprintf("subset construction produced an invalid DFA: %v", err))
	}
	return d
}

// FromSymbol returns the two-state NFA accepting exactly the single
// symbol sigma.
func FromSymbol(symbols []string, sigma string) (*NFA, error) {
	return NewNFA(
		[]string{"q0", "q1"}, symbols,
		map[string]map[string][]string{"q0": {sigma: {"q1"}}},
		"q0", []string{"q1"},
	)
}

// FromStringLiteral returns the NFA accepting exactly the string w, as a
// linear chain of states joined by symbol transitions (a single accepting
// state for an empty w).
func FromStringLiteral(symbols []string, w string) (*NFA, error) {
	runes := []rune(w)
	states := make([]string, len(runes)+1)
	trans := map[string]map[string][]string{}
	for i := 0; i <= len(runes); i++ {
		states[i] = stateName(i)
	}
	for i, r := range runes {
		trans[stateName(i)] = map[string][]string{string(r): {stateName(i + 1)}}
	}
	return NewNFA(states, symbols, trans, stateName(0), []string{stateName(len(runes))})
}

// renamer produces globally-unique state names when combining two NFAs, by
// prefixing each source automaton's state names with a distinct tag; this
// mirrors the disjoint-union step every Thompson construction needs before
// wiring epsilon bridges between the two fragments.
type renamer struct {
	tag string
}

func (r renamer) of(s string) string { return r.tag + ":" + s }

func renameStates(n *NFA, tag string) (states []string, trans map[string]map[string][]string, initial string, final []string) {
	r := renamer{tag}
	for s := range n.states {
		states = append(states, r.of(s))
	}
	trans = map[string]map[string][]string{}
	for s, row := range n.transitions {
		newRow := map[string][]string{}
		for sym, targets := range row {
			for t := range targets {
				newRow[sym] = append(newRow[sym], r.of(t))
			}
		}
		trans[r.of(s)] = newRow
	}
	initial = r.of(n.initial)
	for s := range n.final {
		final = append(final, r.of(s))
	}
	return states, trans, initial, final
}

func mergeAlphabets(a, b *NFA) []string {
	return setutil.SortedElements(a.inputSymbols.Union(b.inputSymbols))
}

func addEpsilon(trans map[string]map[string][]string, from, to string) {
	row, ok := trans[from]
	if !ok {
		row = map[string][]string{}
		trans[from] = row
	}
	row[epsilon] = append(row[epsilon], to)
}

// Union returns the NFA accepting L(a) ∪ L(b): a fresh initial state with
// epsilon edges to both subautomata's initial states.
func Union(a, b *NFA) (*NFA, error) {
	aStates, aTrans, aInit, aFinal := renameStates(a, "a")
	bStates, bTrans, bInit, bFinal := renameStates(b, "b")

	states := append([]string{"start"}, append(aStates, bStates...)...)
	trans := map[string]map[string][]string{"start": {epsilon: {aInit, bInit}}}
	for s, row := range aTrans {
		trans[s] = row
	}
	for s, row := range bTrans {
		trans[s] = row
	}
	final := append(aFinal, bFinal...)

	return NewNFA(states, mergeAlphabets(a, b), trans, "start", final)
}

// Concatenate returns the NFA accepting L(a)·L(b): epsilon edges from
// every final state of a to b's initial state.
func Concatenate(a, b *NFA) (*NFA, error) {
	aStates, aTrans, aInit, aFinal := renameStates(a, "a")
	bStates, bTrans, bInit, bFinal := renameStates(b, "b")

	for _, f := range aFinal {
		addEpsilon(aTrans, f, bInit)
	}

	states := append(aStates, bStates...)
	trans := map[string]map[string][]string{}
	for s, row := range aTrans {
		trans[s] = row
	}
	for s, row := range bTrans {
		trans[s] = row
	}

	return NewNFA(states, mergeAlphabets(a, b), trans, aInit, bFinal)
}

// KleeneStar returns the NFA accepting L(a)*: a fresh initial (also
// final) state epsilon-linked to a's initial, with epsilon edges from
// a's final states back to a's initial.
func KleeneStar(a *NFA) (*NFA, error) {
	aStates, aTrans, aInit, aFinal := renameStates(a, "a")
	for _, f := range aFinal {
		addEpsilon(aTrans, f, aInit)
	}
	addEpsilon(aTrans, "start", aInit)

	states := append([]string{"start"}, aStates...)
	return NewNFA(states, setutil.SortedElements(a.inputSymbols), aTrans, "start", append(aFinal, "start"))
}

// Option returns the NFA accepting L(a) ∪ {ε}: a fresh initial (also
// final) state epsilon-linked to a's initial.
func Option(a *NFA) (*NFA, error) {
	aStates, aTrans, aInit, aFinal := renameStates(a, "a")
	addEpsilon(aTrans, "start", aInit)
	states := append([]string{"start"}, aStates...)
	return NewNFA(states, setutil.SortedElements(a.inputSymbols), aTrans, "start", append(aFinal, "start"))
}

// Reverse returns the NFA accepting the reversal of every word in L(a):
// every edge is reversed; a fresh initial state gains epsilon edges to
// each former final state; the former initial state becomes the sole new
// final state.
func Reverse(a *NFA) (*NFA, error) {
	states, _, aInit, aFinal := renameStates(a, "a")
	reversed := map[string]map[string][]string{}
	for s, row := range a.transitions {
		from := renamer{"a"}.of(s)
		for sym, targets := range row {
			for t := range targets {
				to := renamer{"a"}.of(t)
				if reversed[to] == nil {
					reversed[to] = map[string][]string{}
				}
				reversed[to][sym] = append(reversed[to][sym], from)
			}
		}
	}
	for _, f := range aFinal {
		addEpsilon(reversed, "start", f)
	}
	allStates := append([]string{"start"}, states...)
	return NewNFA(allStates, setutil.SortedElements(a.inputSymbols), reversed, "start", []string{aInit})
}

// productPairName produces a canonical name for a product-construction state
// pair, matching the DFA combinators' convention.
func productPairName(x, y string) string { return pairName(x, y) }

// Intersection returns the NFA accepting L(a) ∩ L(b) via product
// construction on state pairs, composing epsilon edges independently in
// each coordinate (an epsilon move in a holds b's coordinate fixed, and
// vice versa).
func Intersection(a, b *NFA) (*NFA, error) {
	symbols := mergeAlphabets(a, b)
	start := productPairName(a.initial, b.initial)

	trans := map[string]map[string][]string{}
	visited := setutil.NewStringSet(start)
	queue := []string{start}
	pairOf := map[string][2]string{start: {a.initial, b.initial}}
	var final []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		p := pairOf[name]
		row := map[string][]string{}

		for t := range a.transitions[p[0]][epsilon] {
			to := productPairName(t, p[1])
			row[epsilon] = append(row[epsilon], to)
			if !visited.Has(to) {
				visited.Add(to)
				pairOf[to] = [2]string{t, p[1]}
				queue = append(queue, to)
			}
		}
		for t := range b.transitions[p[1]][epsilon] {
			to := productPairName(p[0], t)
			row[epsilon] = append(row[epsilon], to)
			if !visited.Has(to) {
				visited.Add(to)
				pairOf[to] = [2]string{p[0], t}
				queue = append(queue, to)
			}
		}
		for _, sym := range symbols {
			for ta := range a.transitions[p[0]][sym] {
				for tb := range b.transitions[p[1]][sym] {
					to := productPairName(ta, tb)
					row[sym] = append(row[sym], to)
					if !visited.Has(to) {
						visited.Add(to)
						pairOf[to] = [2]string{ta, tb}
						queue = append(queue, to)
					}
				}
			}
		}

		trans[name] = row
		if a.final.Has(p[0]) && b.final.Has(p[1]) {
			final = append(final, name)
		}
	}

	states := make([]string, 0, len(pairOf))
	for name := range pairOf {
		states = append(states, name)
	}

	return NewNFA(states, symbols, trans, start, final)
}

// ShuffleProduct returns the NFA accepting the shuffle (interleaving) of
// L(a) and L(b): a product construction where each step advances exactly
// one coordinate.
func ShuffleProduct(a, b *NFA) (*NFA, error) {
	symbols := mergeAlphabets(a, b)
	start := productPairName(a.initial, b.initial)

	trans := map[string]map[string][]string{}
	visited := setutil.NewStringSet(start)
	queue := []string{start}
	pairOf := map[string][2]string{start: {a.initial, b.initial}}
	var final []string

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		p := pairOf[name]
		row := map[string][]string{}

		link := func(sym, to string, newPair [2]string) {
			row[sym] = append(row[sym], to)
			if !visited.Has(to) {
				visited.Add(to)
				pairOf[to] = newPair
				queue = append(queue, to)
			}
		}

		for t := range a.transitions[p[0]][epsilon] {
			link(epsilon, productPairName(t, p[1]), [2]string{t, p[1]})
		}
		for t := range b.transitions[p[1]][epsilon] {
			link(epsilon, productPairName(p[0], t), [2]string{p[0], t})
		}
		for _, sym := range symbols {
			for t := range a.transitions[p[0]][sym] {
				link(sym, productPairName(t, p[1]), [2]string{t, p[1]})
			}
			for t := range b.transitions[p[1]][sym] {
				link(sym, productPairName(p[0], t), [2]string{p[0], t})
			}
		}

		trans[name] = row
		if a.final.Has(p[0]) && b.final.Has(p[1]) {
			final = append(final, name)
		}
	}

	states := make([]string, 0, len(pairOf))
	for name := range pairOf {
		states = append(states, name)
	}

	return NewNFA(states, symbols, trans, start, final)
}

// LeftQuotient returns the NFA accepting { w | ∃ u ∈ L, uw ∈ L(a) }: built
// via reversal, as the reverse of the right quotient of reverse(a) by
// reverse(L).
func LeftQuotient(a *NFA, l *NFA) (*NFA, error) {
	revA, err := Reverse(a)
	if err != nil {
		return nil, err
	}
	revL, err := Reverse(l)
	if err != nil {
		return nil, err
	}
	q, err := RightQuotient(revA, revL)
	if err != nil {
		return nil, err
	}
	return Reverse(q)
}

// RightQuotient returns the NFA accepting { w | ∃ u ∈ L, wu ∈ L(a) }: it
// keeps a's states and transitions and re-marks the finals, making a state
// p final iff a restarted at p accepts some word of L, i.e. iff the
// intersection of that restarted copy of a with l is nonempty.
func RightQuotient(a *NFA, l *NFA) (*NFA, error) {
	aStates, aTrans, aInit, _ := renameStates(a, "a")
	lDFA := l.ToDFA()
	if lDFA.IsEmpty() {
		return NewNFA(aStates, setutil.SortedElements(a.inputSymbols), aTrans, aInit, nil)
	}
	// L is nonempty: p is a new final iff a restarted at p, intersected
	// with l, accepts some word (the product already built for
	// Intersection).
	final := setutil.NewStringSet()
	for s := range a.states {
		sub := &NFA{
			states:       a.states.Copy(),
			inputSymbols: a.inputSymbols.Copy(),
			transitions:  a.transitions,
			initial:      s,
			final:        a.final.Copy(),
		}
		prod, err := Intersection(sub, l)
		if err != nil {
			return nil, err
		}
		if !prod.ToDFA().IsEmpty() {
			final.Add(renamer{"a"}.of(s))
		}
	}

	return NewNFA(aStates, setutil.SortedElements(a.inputSymbols), aTrans, aInit, final.Elements())
}

// EditDistance returns the Levenshtein NFA over alphabet symbols: states
// are pairs (position in w, edits used so far); from (i, e) reading the
// i-th symbol of w advances to (i+1, e) (match), any symbol advances to
// (i+1, e+1) if substitutions are enabled (substitute), an epsilon move
// to (i+1, e+1) is available if deletions are enabled (delete, w's
// symbol is skipped), and any symbol loops at (i, e+1) if insertions are
// enabled (insert, extra symbol consumed with no progress through w).
// Accepts strings within edit distance k of w.
func EditDistance(symbols []string, w string, k int, insert, deleteOp, substitute bool) (*NFA, error) {
	runes := []rune(w)
	n := len(runes)

	stateOf := func(i, e int) string { return fmt.Sprintf("p%d-%d", i, e) }

	trans := map[string]map[string][]string{}
	addTransition := func(from, sym, to string) {
		row, ok := trans[from]
		if !ok {
			row = map[string][]string{}
			trans[from] = row
		}
		row[sym] = append(row[sym], to)
	}

	var states []string
	var final []string
	for i := 0; i <= n; i++ {
		for e := 0; e <= k; e++ {
			states = append(states, stateOf(i, e))
			if i == n {
				final = append(final, stateOf(i, e))
			}

			if i < n {
				addTransition(stateOf(i, e), string(runes[i]), stateOf(i+1, e))
			}
			if e < k {
				if i < n && substitute {
					for _, sym := range symbols {
						if sym != string(runes[i]) {
							addTransition(stateOf(i, e), sym, stateOf(i+1, e+1))
						}
					}
				}
				if i < n && deleteOp {
					addTransition(stateOf(i, e), epsilon, stateOf(i+1, e+1))
				}
				if insert {
					for _, sym := range symbols {
						addTransition(stateOf(i, e), sym, stateOf(i, e+1))
					}
				}
			}
		}
	}

	return NewNFA(states, symbols, trans, stateOf(0, 0), final)
}

// Equal reports whether n and o accept the same language, via a
// lambda-closure-aware Hopcroft-Karp union-find: nodes are (closure,
// index) pairs, transition steps compute the epsilon-closed successor set
// by symbol, and acceptance tests whether a closed set intersects finals.
// No minimization is required.
func (n *NFA) Equal(o *NFA) (bool, error) {
	if !n.inputSymbols.Equal(o.inputSymbols) {
		return false, automerr.SymbolMismatch(n.orderedSymbols(), o.orderedSymbols())
	}

	type closurePair struct{ a, b setutil.Frozen }
	startA := n.EpsilonClosure(n.initial)
	startB := o.EpsilonClosure(o.initial)

	accepts := func(closure setutil.StringSet, final setutil.StringSet) bool {
		return closure.Any(func(s string) bool { return final.Has(s) })
	}

	uf := newUnionFind()
	nodeOf := func(c setutil.StringSet, side int) ufNode {
		return ufNode{string(setutil.Freeze(c)), side}
	}
	uf.union(nodeOf(startA, 0), nodeOf(startB, 1))

	stack := []closurePair{{setutil.Freeze(startA), setutil.Freeze(startB)}}
	closures := map[setutil.Frozen]setutil.StringSet{
		setutil.Freeze(startA): startA,
		setutil.Freeze(startB): startB,
	}
	symbols := n.orderedSymbols()

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a := closures[p.a]
		b := closures[p.b]

		if accepts(a, n.final) != accepts(b, o.final) {
			return false, nil
		}

		for _, sym := range symbols {
			nextA := n.EpsilonClosureOfSet(n.move(a, sym))
			nextB := o.EpsilonClosureOfSet(o.move(b, sym))
			nodeA, nodeB := nodeOf(nextA, 0), nodeOf(nextB, 1)
			if uf.find(nodeA) != uf.find(nodeB) {
				uf.union(nodeA, nodeB)
				closures[setutil.Freeze(nextA)] = nextA
				closures[setutil.Freeze(nextB)] = nextB
				stack = append(stack, closurePair{setutil.Freeze(nextA), setutil.Freeze(nextB)})
			}
		}
	}

	return true, nil
}

// EliminateLambda returns an equivalent NFA with no epsilon transitions:
// for each state q and symbol σ, new transitions are the union of δ(q',
// σ) over q' in closure(q); q is final iff closure(q) intersects the
// final set. Unreachable states are pruned afterward.
func (n *NFA) EliminateLambda() (*NFA, error) {
	symbols := n.orderedSymbols()
	trans := map[string]map[string][]string{}
	var final []string

	for s := range n.states {
		closure := n.EpsilonClosure(s)
		row := map[string][]string{}
		for _, sym := range symbols {
			targets := n.move(closure, sym)
			if !targets.Empty() {
				row[sym] = setutil.SortedElements(targets)
			}
		}
		trans[s] = row
		if closure.Any(func(x string) bool { return n.final.Has(x) }) {
			final = append(final, s)
		}
	}

	lambdaFree, err := NewNFA(n.states.Elements(), symbols, trans, n.initial, final)
	if err != nil {
		return nil, err
	}
	return lambdaFree.pruneUnreachable(), nil
}

// pruneUnreachable returns a copy of n restricted to states reachable
// from the initial state.
func (n *NFA) pruneUnreachable() *NFA {
	reachable := setutil.NewStringSet(n.initial)
	queue := []string{n.initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for sym := range n.transitions[cur] {
			for t := range n.transitions[cur][sym] {
				if !reachable.Has(t) {
					reachable.Add(t)
					queue = append(queue, t)
				}
			}
		}
	}

	trans := map[string]map[string][]string{}
	for s := range reachable {
		row := map[string][]string{}
		for sym, targets := range n.transitions[s] {
			for t := range targets {
				if reachable.Has(t) {
					row[sym] = append(row[sym], t)
				}
			}
		}
		trans[s] = row
	}

	pruned, err := NewNFA(reachable.Elements(), n.orderedSymbols(), trans, n.initial, n.final.Intersection(reachable).Elements())
	if err != nil {
		panic(fmt.Sprintf("pruneUnreachable produced an invalid NFA: %v", err))
	}
	return pruned
}
