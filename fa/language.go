package fa

import "github.com/finlex/gofa/internal/setutil"

// IsEmpty reports whether d accepts no strings at all: equivalently, whether
// no final state is reachable from the initial state.
func (d *DFA) IsEmpty() bool {
	return d.reachableStates().Intersection(d.final).Empty()
}

// IsFinite reports whether d accepts a finite language: equivalently,
// whether the trim subgraph (states both reachable and coaccessible)
// contains no cycle. Detected via DFS with a recursion-stack marker.
func (d *DFA) IsFinite() bool {
	trim := d.trimStates()
	const (
		unvisited = 0
		onStack   = 1
		done      = 2
	)
	color := map[string]int{}

	var hasCycle func(s string) bool
	hasCycle = func(s string) bool {
		color[s] = onStack
		for _, sym := range d.orderedSymbols() {
			to, ok := d.Next(s, sym)
			if !ok || !trim.Has(to) {
				continue
			}
			switch color[to] {
			case onStack:
				return true
			case unvisited:
				if hasCycle(to) {
					return true
				}
			}
		}
		color[s] = done
		return false
	}

	for s := range trim {
		if color[s] == unvisited {
			if hasCycle(s) {
				return false
			}
		}
	}
	return true
}

// MinWordLength returns the length of the shortest accepted string, found by
// breadth-first search from the initial state, and whether the language is
// nonempty.
func (d *DFA) MinWordLength() (int, bool) {
	if d.IsAccepting(d.initial) {
		return 0, true
	}

	seen := setutil.NewStringSet(d.initial)
	queue := []string{d.initial}
	depth := 0
	for len(queue) > 0 {
		depth++
		var next []string
		for _, s := range queue {
			for _, sym := range d.orderedSymbols() {
				to, ok := d.Next(s, sym)
				if !ok || seen.Has(to) {
					continue
				}
				if d.IsAccepting(to) {
					return depth, true
				}
				seen.Add(to)
				next = append(next, to)
			}
		}
		queue = next
	}
	return 0, false
}

// MaxWordLength returns the length of the longest accepted string, and
// whether that length is well-defined (the language is nonempty and finite).
// Computed as the longest path to a final state in the trim subgraph's DAG
// (IsFinite guarantees acyclicity of the trim subgraph).
func (d *DFA) MaxWordLength() (int, bool) {
	if !d.IsFinite() {
		return 0, false
	}
	trim := d.trimStates()
	if trim.Empty() || !trim.Has(d.initial) {
		return 0, false
	}

	memo := map[string]int{}
	var longest func(s string) int
	longest = func(s string) int {
		if v, ok := memo[s]; ok {
			return v
		}
		best := -1
		if d.IsAccepting(s) {
			best = 0
		}
		for _, sym := range d.orderedSymbols() {
			to, ok := d.Next(s, sym)
			if !ok || !trim.Has(to) {
				continue
			}
			if sub := longest(to); sub >= 0 && sub+1 > best {
				best = sub + 1
			}
		}
		memo[s] = best
		return best
	}

	best := longest(d.initial)
	if best < 0 {
		return 0, false
	}
	return best, true
}
