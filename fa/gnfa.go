package fa

import (
	"strings"

	"github.com/finlex/gofa/internal/setutil"
)

// gnfaStart and gnfaAccept are the fresh initial/final state names added
// by GNFAFromDFA/GNFAFromNFA; chosen disjoint from any state name either
// source automaton's states BFS/subset-construction naming scheme can
// produce.
const (
	gnfaStart  = "__gnfa_start__"
	gnfaAccept = "__gnfa_accept__"
)

// edgeRegex is the label of a GNFA edge: an empty string denotes ε, and
// noEdge marks an explicit absence of a transition (∅). This mirrors
// original_source/automata/fa/gnfa.py's use of the Python value None for
// "no edge" alongside the empty string for ε.
type edgeRegex struct {
	present bool
	regex   string
}

func present(r string) edgeRegex { return edgeRegex{present: true, regex: r} }

var noEdge = edgeRegex{present: false}

// GNFA is a generalized NFA whose edges are labeled with regexes (or
// explicitly absent), used only as an intermediate structure for
// converting an automaton to a regex via state elimination.
type GNFA struct {
	states      setutil.StringSet
	transitions map[string]map[string]edgeRegex
	initial     string
	final       string
}

// GNFAFromDFA builds the GNFA equivalent to d: parallel edges collapse
// into a single union-of-symbols regex label, a fresh initial state gets
// an epsilon edge to d's old initial state, and a fresh final state
// receives epsilon edges from every old final state. Every other missing
// edge becomes an explicit "no edge".
func GNFAFromDFA(d *DFA) *GNFA {
	trans := map[string]map[string]edgeRegex{}
	for _, s := range d.orderedStates() {
		row := map[string]edgeRegex{}
		labels := map[string][]string{}
		for _, sym := range d.orderedSymbols() {
			if to, ok := d.Next(s, sym); ok {
				labels[to] = append(labels[to], sym)
			}
		}
		for to, syms := range labels {
			row[to] = present(strings.Join(syms, "|"))
		}
		trans[s] = row
	}

	states := setutil.NewStringSet(d.orderedStates()...)
	return assembleGNFA(states, trans, d.initial, d.final)
}

// GNFAFromNFA builds the GNFA equivalent to n, as GNFAFromDFA does for a
// DFA: parallel edges (including epsilon) collapse into one regex label;
// where a state is reachable by both an epsilon move and symbol moves, the
// label is the optional group "(a|b)?" of those symbols.
func GNFAFromNFA(n *NFA) *GNFA {
	trans := map[string]map[string]edgeRegex{}
	for s := range n.states {
		row := map[string]edgeRegex{}
		labels := map[string][]string{}
		hasEpsilon := map[string]bool{}
		for sym, targets := range n.transitions[s] {
			for to := range targets {
				if sym == epsilon {
					hasEpsilon[to] = true
				} else {
					labels[to] = append(labels[to], sym)
				}
			}
		}
		for to := range hasEpsilon {
			row[to] = present("")
		}
		for to, syms := range labels {
			label := strings.Join(setutil.SortedElements(setutil.NewStringSet(syms...)), "|")
			if hasEpsilon[to] {
				label = "(" + label + ")?"
			}
			row[to] = present(label)
		}
		trans[s] = row
	}

	return assembleGNFA(n.states.Copy(), trans, n.initial, n.final.Elements()...)
}

// assembleGNFA wires the fresh start/accept states and fills in explicit
// "no edge" markers over states/trans collected from a DFA or NFA.
func assembleGNFA(states setutil.StringSet, trans map[string]map[string]edgeRegex, initial string, final ...string) *GNFA {
	states.Add(gnfaStart)
	states.Add(gnfaAccept)

	trans[gnfaStart] = map[string]edgeRegex{initial: present("")}

	for _, f := range final {
		if trans[f] == nil {
			trans[f] = map[string]edgeRegex{}
		}
		trans[f][gnfaAccept] = present("")
	}

	for s := range states {
		if s == gnfaAccept {
			continue
		}
		if trans[s] == nil {
			trans[s] = map[string]edgeRegex{}
		}
		for t := range states {
			if t == gnfaStart {
				continue
			}
			if _, ok := trans[s][t]; !ok {
				trans[s][t] = noEdge
			}
		}
	}

	return &GNFA{states: states, transitions: trans, initial: gnfaStart, final: gnfaAccept}
}

// bracketed wraps r in parentheses if it needs them to bind as a single
// operand in a larger concatenation/union context — i.e. whenever its
// top-level operator is union (a literal `|` outside of any nested
// parens). Parenthesization is never needed for a concatenation or a
// single literal/starred/optioned operand, since those already bind
// tighter than the union they'd be embedded in.
func bracketed(r string) string {
	if r == "" || !needsBracket(r) {
		return r
	}
	return "(" + r + ")"
}

func needsBracket(r string) bool {
	depth := 0
	for _, c := range r {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// starred wraps r in a Kleene star, parenthesizing the operand first
// unless it is already a single symbol.
func starred(r string) string {
	if r == "" {
		return ""
	}
	if len([]rune(r)) == 1 {
		return r + "*"
	}
	return "(" + r + ")*"
}

// union joins two regex labels (absent treated as ∅, the union
// identity), in insertion order matching original_source's `r4 + '|' +
// new` concatenation (fixing the source's genuine r4/r2 copy-paste slip
// by naming each operand for its role instead of positionally).
func unionEdges(a, b edgeRegex) edgeRegex {
	switch {
	case !a.present && !b.present:
		return noEdge
	case !a.present:
		return b
	case !b.present:
		return a
	case a.regex == "" || b.regex == "":
		// ε | X is written as the optional group (X)?.
		if a.regex+b.regex == "" {
			return present("")
		}
		return present("(" + a.regex + b.regex + ")?")
	default:
		return present(bracketed(a.regex) + "|" + bracketed(b.regex))
	}
}

// concatEdges composes two regex labels under concatenation (∅·X = ∅, ε·X
// = X).
func concatEdges(a, b edgeRegex) edgeRegex {
	if !a.present || !b.present {
		return noEdge
	}
	if a.regex == "" {
		return b
	}
	if b.regex == "" {
		return a
	}
	return present(bracketed(a.regex) + bracketed(b.regex))
}

// ToRegex reduces g to a single regex via repeated state elimination
// (the smallest-degree heuristic, matching
// original_source/automata/fa/gnfa.py's _find_min_connected_node),
// returning R(initial, final) and true, or ("", false) if no edge
// survives between initial and final — the language is ∅, which the
// §4.4 dialect has no literal for (its empty regex "" denotes {ε}, not
// ∅). The original Python draws this same distinction positionally:
// None (no edge) versus "" (an ε edge) are different values there, so
// the bool return here is what preserves that distinction once the
// result is flattened to a single Go string.
func (g *GNFA) ToRegex() (string, bool) {
	states := g.states.Copy()
	trans := map[string]map[string]edgeRegex{}
	for s, row := range g.transitions {
		newRow := map[string]edgeRegex{}
		for t, e := range row {
			newRow[t] = e
		}
		trans[s] = newRow
	}

	for states.Len() > 2 {
		rip := minDegreeState(states, trans, g.initial, g.final)

		remaining := states.Difference(setutil.NewStringSet(rip))
		loop := trans[rip][rip]

		for i := range remaining {
			if i == g.final {
				continue
			}
			toRip := trans[i][rip]
			if !toRip.present {
				continue
			}
			for j := range remaining {
				if j == g.initial {
					continue
				}
				ripToJ := trans[rip][j]
				if !ripToJ.present {
					continue
				}
				bridge := concatEdges(toRip, ripToJ)
				if loop.present {
					bridge = concatEdges(concatEdges(toRip, present(starred(loop.regex))), ripToJ)
				}
				trans[i][j] = unionEdges(trans[i][j], bridge)
			}
		}

		for s := range remaining {
			delete(trans[s], rip)
		}
		delete(trans, rip)
		states = remaining
	}

	final := trans[g.initial][g.final]
	if !final.present {
		return "", false
	}
	return final.regex, true
}

// minDegreeState picks the internal (non initial/final) state with the
// fewest present edges, counting only edges that don't touch the
// initial state as a destination or the final state as a source (those
// never participate in the elimination formula).
func minDegreeState(states setutil.StringSet, trans map[string]map[string]edgeRegex, initial, final string) string {
	degree := map[string]int{}
	for s := range states {
		if s != initial && s != final {
			degree[s] = 0
		}
	}
	for s := range states {
		if s == final {
			continue
		}
		for to, e := range trans[s] {
			if !e.present {
				continue
			}
			if s != initial {
				degree[s]++
			}
			if to != final {
				degree[to]++
			}
		}
	}

	best := ""
	bestDegree := -1
	for _, s := range setutil.SortedElements(setutil.NewStringSet(keysOf(degree)...)) {
		if bestDegree < 0 || degree[s] < bestDegree {
			best = s
			bestDegree = degree[s]
		}
	}
	return best
}

func keysOf(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// ToRegexFromDFA converts d directly to its equivalent regex, and false if
// d's language is ∅ (which the regex dialect cannot denote literally).
func ToRegexFromDFA(d *DFA) (string, bool) {
	return GNFAFromDFA(d).ToRegex()
}

// ToRegexFromNFA converts n directly to its equivalent regex, and false if
// n's language is ∅.
func ToRegexFromNFA(n *NFA) (string, bool) {
	return GNFAFromNFA(n).ToRegex()
}
