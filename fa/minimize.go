package fa

import (
	"fmt"

	"github.com/finlex/gofa/internal/setutil"
)

// reachableStates returns every state reachable from initial by following
// symbol transitions, via breadth-first search.
func (d *DFA) reachableStates() setutil.StringSet {
	seen := setutil.NewStringSet(d.initial)
	queue := []string{d.initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range d.orderedSymbols() {
			to, ok := d.Next(cur, sym)
			if !ok || seen.Has(to) {
				continue
			}
			seen.Add(to)
			queue = append(queue, to)
		}
	}
	return seen
}

// coaccessibleStates returns every state that can reach a final state, by
// BFS over the reversed transition relation.
func (d *DFA) coaccessibleStates() setutil.StringSet {
	reverse := map[string][]string{}
	for _, s := range d.orderedStates() {
		for _, sym := range d.orderedSymbols() {
			if to, ok := d.Next(s, sym); ok {
				reverse[to] = append(reverse[to], s)
			}
		}
	}

	seen := setutil.NewStringSet()
	var queue []string
	for f := range d.final {
		if d.states.Has(f) {
			seen.Add(f)
			queue = append(queue, f)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, prev := range reverse[cur] {
			if !seen.Has(prev) {
				seen.Add(prev)
				queue = append(queue, prev)
			}
		}
	}
	return seen
}

// trimStates returns the states both reachable from initial and able to
// reach a final state: the "trim subgraph" of the GLOSSARY.
func (d *DFA) trimStates() setutil.StringSet {
	return d.reachableStates().Intersection(d.coaccessibleStates())
}

// MinifyOption configures Minify.
type MinifyOption func(*minifyConfig)

type minifyConfig struct {
	retainNames bool
}

// RetainNames makes Minify name each minimized state after the frozen,
// alphabetized membership of the equivalence class it collapses, instead of
// numbering classes 0..k-1.
func RetainNames() MinifyOption {
	return func(c *minifyConfig) { c.retainNames = true }
}

// Minify returns the minimal DFA equivalent to d: unreachable states are
// first removed by BFS from the initial state, then Hopcroft partition
// refinement merges indistinguishable states. Partiality is preserved: if a
// representative state has no transition for some symbol, the minimized
// state likewise has none.
func (d *DFA) Minify(opts ...MinifyOption) *DFA {
	var cfg minifyConfig
	for _, o := range opts {
		o(&cfg)
	}

	reachable := d.reachableStates()

	// initial partition: reachable final vs reachable non-final.
	var classes []setutil.StringSet
	finalClass := reachable.Intersection(d.final)
	nonFinalClass := reachable.Difference(d.final)
	if !finalClass.Empty() {
		classes = append(classes, finalClass)
	}
	if !nonFinalClass.Empty() {
		classes = append(classes, nonFinalClass)
	}

	classOf := map[string]int{}
	for i, c := range classes {
		for s := range c {
			classOf[s] = i
		}
	}

	// active set starts with every initial class (safe, if potentially
	// slower than seeding only the smaller one).
	active := map[int]bool{}
	for i := range classes {
		active[i] = true
	}

	symbols := d.orderedSymbols()

	for len(active) > 0 {
		// pick and remove one active class X
		var xi int
		for k := range active {
			xi = k
			break
		}
		delete(active, xi)
		X := classes[xi]
		if X == nil {
			continue
		}

		for _, sym := range symbols {
			// preimage = {q in reachable | delta(q, sym) in X}
			preimage := setutil.NewStringSet()
			for q := range reachable {
				if to, ok := d.Next(q, sym); ok && X.Has(to) {
					preimage.Add(q)
				}
			}
			if preimage.Empty() {
				continue
			}

			for yi, Y := range classes {
				if Y == nil || Y.Empty() {
					continue
				}
				inter := Y.Intersection(preimage)
				if inter.Empty() || inter.Len() == Y.Len() {
					continue
				}
				diff := Y.Difference(preimage)

				// split: Y becomes diff (keep old id), inter becomes a new
				// class.
				classes[yi] = diff
				for s := range diff {
					classOf[s] = yi
				}

				newIdx := len(classes)
				classes = append(classes, inter)
				for s := range inter {
					classOf[s] = newIdx
				}

				if active[yi] {
					active[newIdx] = true
				} else if inter.Len() <= diff.Len() {
					active[newIdx] = true
				} else {
					active[yi] = true
				}
			}
		}
	}

	// build new DFA from the surviving (non-nil, non-empty) classes.
	var liveClasses []setutil.StringSet
	oldIdxToNew := map[int]int{}
	for i, c := range classes {
		if c == nil || c.Empty() {
			continue
		}
		oldIdxToNew[i] = len(liveClasses)
		liveClasses = append(liveClasses, c)
	}

	nameOf := make([]string, len(liveClasses))
	for i, c := range liveClasses {
		if cfg.retainNames {
			nameOf[i] = setutil.StringOrdered(c)
		} else {
			nameOf[i] = fmt.Sprintf("%d", i)
		}
	}

	newStates := make([]string, len(liveClasses))
	newFinal := setutil.NewStringSet()
	newTrans := map[string]map[string]string{}

	for i, c := range liveClasses {
		newStates[i] = nameOf[i]
		var rep string
		for s := range c {
			rep = s
			break
		}
		if d.final.Has(rep) {
			newFinal.Add(nameOf[i])
		}
		row := map[string]string{}
		for _, sym := range symbols {
			to, ok := d.Next(rep, sym)
			if !ok {
				continue
			}
			toClass := oldIdxToNew[classOf[to]]
			row[sym] = nameOf[toClass]
		}
		newTrans[nameOf[i]] = row
	}

	initClass := oldIdxToNew[classOf[d.initial]]

	min := &DFA{
		states:       setutil.NewStringSet(newStates...),
		inputSymbols: d.inputSymbols.Copy(),
		transitions:  newTrans,
		initial:      nameOf[initClass],
		final:        newFinal,
		allowPartial: d.allowPartial,
	}
	return min
}
