package fa

import "github.com/finlex/gofa/internal/automerr"

// ufNode identifies a state on one of the two sides being compared.
type ufNode struct {
	state string
	side  int
}

// unionFind is a disjoint-set structure over (state, side) pairs.
type unionFind struct {
	parent map[ufNode]ufNode
}

func newUnionFind() *unionFind {
	return &unionFind{parent: map[ufNode]ufNode{}}
}

func (u *unionFind) find(n ufNode) ufNode {
	p, ok := u.parent[n]
	if !ok {
		u.parent[n] = n
		return n
	}
	if p == n {
		return n
	}
	root := u.find(p)
	u.parent[n] = root
	return root
}

func (u *unionFind) union(a, b ufNode) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

type ufPair struct {
	a, b string
}

// Equal reports whether d and o accept the same language, using the
// near-linear Hopcroft-Karp union-find algorithm of spec.md §4.2: nodes are
// pairs (state, side); a disjoint-set structure unions the two initial
// states, and a stack drives the exploration, popping a pair, returning
// false if one is final and the other is not, and otherwise for each symbol
// unioning the two successors (if their roots differ) and pushing the pair.
// Exhausting the stack without a witness yields equivalence. Does not
// require minification. The two DFAs must share an input alphabet;
// mismatched alphabets report automerr.SymbolMismatch.
func (d *DFA) Equal(o *DFA) (bool, error) {
	if !d.inputSymbols.Equal(o.inputSymbols) {
		return false, automerr.SymbolMismatch(d.orderedSymbols(), o.orderedSymbols())
	}
	d, o = d.ToComplete(TrapState), o.ToComplete(TrapState)

	uf := newUnionFind()
	startA := ufNode{d.initial, 0}
	startB := ufNode{o.initial, 1}
	uf.union(startA, startB)

	stack := []ufPair{{d.initial, o.initial}}
	symbols := d.orderedSymbols()

	for len(stack) > 0 {
		pair := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if d.IsAccepting(pair.a) != o.IsAccepting(pair.b) {
			return false, nil
		}

		for _, sym := range symbols {
			toA, okA := d.Next(pair.a, sym)
			toB, okB := o.Next(pair.b, sym)
			if okA != okB {
				return false, nil
			}
			if !okA {
				continue
			}

			nodeA := ufNode{toA, 0}
			nodeB := ufNode{toB, 1}
			if uf.find(nodeA) != uf.find(nodeB) {
				uf.union(nodeA, nodeB)
				stack = append(stack, ufPair{toA, toB})
			}
		}
	}

	return true, nil
}
