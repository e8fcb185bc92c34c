package fa

import (
	"fmt"
	"sort"

	"github.com/finlex/gofa/internal/setutil"
)

// FromPrefix returns the minimal DFA accepting { w | w has p as a prefix },
// over alphabet symbols. States are numbered 0..len(p), one per matched
// prefix length, plus a trap for anything past a mismatch.
func FromPrefix(symbols []string, p string) (*DFA, error) {
	runes := []rune(p)
	states, trans, final := linearChainStates(len(runes))
	for i := 0; i <= len(runes); i++ {
		from := stateName(i)
		row := map[string]string{}
		for _, sym := range symbols {
			if i < len(runes) && sym == string(runes[i]) {
				row[sym] = stateName(i + 1)
			} else if i == len(runes) {
				row[sym] = stateName(i) // stay in the accepting "has prefix" state
			} else {
				row[sym] = TrapState
			}
		}
		trans[from] = row
	}
	addTrap(trans, symbols)
	states = append(states, TrapState)
	return NewDFA(states, symbols, trans, stateName(0), final)
}

// FromSuffix returns the minimal DFA accepting { w | w has s as a suffix },
// built via the KMP failure function so each (state, symbol) transition is
// computed in O(|s|·|Σ|) total rather than by literal backtracking.
func FromSuffix(symbols []string, s string) (*DFA, error) {
	return kmpAutomaton(symbols, s, false)
}

// FromSubstring returns the minimal DFA accepting { w | s occurs in w as a
// contiguous substring }, via the KMP failure function.
func FromSubstring(symbols []string, s string) (*DFA, error) {
	return kmpAutomaton(symbols, s, true)
}

// kmpAutomaton builds the DFA whose states are KMP-failure-function matched
// prefix lengths 0..len(s); state len(s) ("found it") is final. If sticky
// is true (substring search) the final state is absorbing, looping to
// itself on every symbol; otherwise (suffix search) failures still follow
// the KMP fallback chain so the automaton keeps tracking the longest
// suffix-of-w that is a prefix-of-s, correctly rejecting a w that finds s as
// an infix but not as its suffix.
func kmpAutomaton(symbols []string, s string, sticky bool) (*DFA, error) {
	runes := []rune(s)
	failure := kmpFailureFunction(runes)

	n := len(runes)
	states, trans, final := linearChainStates(n)

	for i := 0; i <= n; i++ {
		row := map[string]string{}
		for _, sym := range symbols {
			row[sym] = kmpNext(runes, failure, i, sym, sticky)
		}
		trans[stateName(i)] = row
	}

	return NewDFA(states, symbols, trans, stateName(0), final)
}

// kmpFailureFunction returns, for each prefix length i of p (1-indexed into
// the conceptual "longest proper prefix that is also a suffix" table), the
// classic KMP failure value failure[i] = length of the longest proper
// prefix of p[:i] that is also a suffix of p[:i]. failure[0] is unused.
func kmpFailureFunction(p []rune) []int {
	n := len(p)
	failure := make([]int, n+1)
	k := 0
	for i := 1; i < n; i++ {
		for k > 0 && p[i] != p[k] {
			k = failure[k]
		}
		if p[i] == p[k] {
			k++
		}
		failure[i+1] = k
	}
	return failure
}

// kmpNext computes the next matched-prefix-length after reading sym while
// having matched prefix length i of p, falling back through the failure
// function until a continuation is found or the match resets to 0. If
// sticky and i == len(p) (already matched the whole pattern), the state is
// absorbing.
func kmpNext(p []rune, failure []int, i int, sym string, sticky bool) string {
	n := len(p)
	if sticky && i == n {
		return stateName(n)
	}
	k := i
	if k == n {
		k = failure[n]
	}
	for k > 0 && string(p[k]) != sym {
		k = failure[k]
	}
	if string(p[k]) == sym {
		k++
	}
	return stateName(k)
}

// FromSubsequence returns the minimal DFA accepting { w | s occurs in w as
// a (not necessarily contiguous) subsequence }: state i means the first i
// characters of s have been matched so far, advancing to i+1 whenever the
// next required character is seen and otherwise staying put; state len(s)
// is absorbing and final.
func FromSubsequence(symbols []string, s string) (*DFA, error) {
	runes := []rune(s)
	n := len(runes)
	states, trans, final := linearChainStates(n)
	for i := 0; i <= n; i++ {
		row := map[string]string{}
		for _, sym := range symbols {
			if i < n && sym == string(runes[i]) {
				row[sym] = stateName(i + 1)
			} else {
				row[sym] = stateName(i)
			}
		}
		trans[stateName(i)] = row
	}
	return NewDFA(states, symbols, trans, stateName(0), final)
}

// FromSubstrings returns the DFA accepting the union of FromSubstring's
// language over every string in set: the shortest way to ask "does any of
// these occur as a substring", built directly as an Aho-Corasick trie
// (rather than unioning individual substring automata) with failure links
// projected into a flat DFA transition table.
func FromSubstrings(symbols []string, set []string) (*DFA, error) {
	nodes := []*acNode{{children: map[string]int{}}}

	for _, word := range set {
		cur := 0
		for _, r := range word {
			sym := string(r)
			next, ok := nodes[cur].children[sym]
			if !ok {
				nodes = append(nodes, &acNode{children: map[string]int{}})
				next = len(nodes) - 1
				nodes[cur].children[sym] = next
			}
			cur = next
		}
		nodes[cur].final = true
	}

	// BFS to compute failure links and finalize transitions, Aho-Corasick
	// style: goto(u, a) falls back through fail links on miss.
	var queue []int
	for sym, child := range nodes[0].children {
		nodes[child].fail = 0
		queue = append(queue, child)
		_ = sym
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if nodes[nodes[u].fail].final {
			nodes[u].final = true
		}
		for _, sym := range symbols {
			if v, ok := nodes[u].children[sym]; ok {
				nodes[v].fail = gotoNode(nodes, nodes[u].fail, sym)
				queue = append(queue, v)
			}
		}
	}

	states := make([]string, len(nodes))
	final := []string{}
	trans := map[string]map[string]string{}
	for i, nd := range nodes {
		states[i] = stateName(i)
		if nd.final {
			final = append(final, stateName(i))
		}
		row := map[string]string{}
		for _, sym := range symbols {
			if nd.final {
				row[sym] = stateName(i)
			} else {
				row[sym] = stateName(gotoNode(nodes, i, sym))
			}
		}
		trans[stateName(i)] = row
	}

	return NewDFA(states, symbols, trans, stateName(0), final)
}

// acNode is an Aho-Corasick trie node used by FromSubstrings.
type acNode struct {
	children map[string]int
	fail     int
	final    bool
}

func gotoNode(nodes []*acNode, u int, sym string) int {
	for {
		if v, ok := nodes[u].children[sym]; ok {
			return v
		}
		if u == 0 {
			return 0
		}
		u = nodes[u].fail
	}
}

// OfLength returns the DFA accepting { w | minLen ≤ count(w, countSymbols)
// ≤ maxLen }, where count is the number of occurrences of symbols in
// countSymbols (a subset of symbols). maxLen < 0 means unbounded above.
func OfLength(symbols []string, minLen, maxLen int, countSymbols []string) (*DFA, error) {
	if len(countSymbols) == 0 {
		countSymbols = symbols
	}
	counted := setutil.NewStringSet(countSymbols...)

	// unbounded above: states 0..minLen, where minLen absorbs (count never
	// needs tracking past the point it's already satisfied).
	if maxLen < 0 {
		states := make([]string, minLen+1)
		trans := map[string]map[string]string{}
		for i := 0; i <= minLen; i++ {
			states[i] = stateName(i)
			row := map[string]string{}
			for _, sym := range symbols {
				switch {
				case !counted.Has(sym):
					row[sym] = stateName(i)
				case i < minLen:
					row[sym] = stateName(i + 1)
				default:
					row[sym] = stateName(i)
				}
			}
			trans[stateName(i)] = row
		}
		return NewDFA(states, symbols, trans, stateName(0), []string{stateName(minLen)})
	}

	// bounded above: states 0..maxLen, plus a dead state for counts that
	// exceed maxLen.
	states := make([]string, 0, maxLen+2)
	final := []string{}
	trans := map[string]map[string]string{}
	for i := 0; i <= maxLen; i++ {
		states = append(states, stateName(i))
		row := map[string]string{}
		for _, sym := range symbols {
			switch {
			case !counted.Has(sym):
				row[sym] = stateName(i)
			case i < maxLen:
				row[sym] = stateName(i + 1)
			default:
				row[sym] = "dead"
			}
		}
		trans[stateName(i)] = row
		if i >= minLen {
			final = append(final, stateName(i))
		}
	}
	deadRow := map[string]string{}
	for _, sym := range symbols {
		deadRow[sym] = "dead"
	}
	trans["dead"] = deadRow
	states = append(states, "dead")

	return NewDFA(states, symbols, trans, stateName(0), final)
}

// CountMod returns the residue automaton: accepts { w | (count(w,
// countSymbols) mod k) ∈ remainders }. States are residues 0..k-1.
func CountMod(symbols []string, k int, remainders []int, countSymbols []string) (*DFA, error) {
	if k <= 0 {
		return nil, fmt.Errorf("count_mod: k must be positive, got %d", k)
	}
	if len(countSymbols) == 0 {
		countSymbols = symbols
	}
	counted := setutil.NewStringSet(countSymbols...)
	accept := setutil.New[int](remainders...)

	states := make([]string, k)
	final := []string{}
	trans := map[string]map[string]string{}
	for i := 0; i < k; i++ {
		states[i] = stateName(i)
		if accept.Has(i) {
			final = append(final, stateName(i))
		}
		row := map[string]string{}
		for _, sym := range symbols {
			if counted.Has(sym) {
				row[sym] = stateName((i + 1) % k)
			} else {
				row[sym] = stateName(i)
			}
		}
		trans[stateName(i)] = row
	}

	return NewDFA(states, symbols, trans, stateName(0), final)
}

// UniversalLanguage returns the DFA accepting every string over symbols.
func UniversalLanguage(symbols []string) (*DFA, error) {
	row := map[string]string{}
	for _, sym := range symbols {
		row[sym] = "q0"
	}
	return NewDFA([]string{"q0"}, symbols, map[string]map[string]string{"q0": row}, "q0", []string{"q0"})
}

// EmptyLanguage returns the DFA accepting no strings.
func EmptyLanguage(symbols []string) (*DFA, error) {
	row := map[string]string{}
	for _, sym := range symbols {
		row[sym] = "q0"
	}
	return NewDFA([]string{"q0"}, symbols, map[string]map[string]string{"q0": row}, "q0", nil)
}

// NthFromStart returns the DFA accepting { w | the n-th symbol of w
// (1-indexed) is σ }, requiring |w| ≥ n.
func NthFromStart(symbols []string, sigma string, n int) (*DFA, error) {
	states, trans, final := linearChainStates(n)
	dead := "dead"
	states = append(states, dead)
	for i := 0; i < n; i++ {
		row := map[string]string{}
		for _, sym := range symbols {
			if i == n-1 {
				if sym == sigma {
					row[sym] = stateName(n)
				} else {
					row[sym] = dead
				}
			} else {
				row[sym] = stateName(i + 1)
			}
		}
		trans[stateName(i)] = row
	}
	acceptRow := map[string]string{}
	for _, sym := range symbols {
		acceptRow[sym] = stateName(n)
	}
	trans[stateName(n)] = acceptRow
	deadRow := map[string]string{}
	for _, sym := range symbols {
		deadRow[sym] = dead
	}
	trans[dead] = deadRow
	final = append(final, stateName(n))
	return NewDFA(states, symbols, trans, stateName(0), final)
}

// NthFromEnd returns the DFA accepting { w | the n-th-from-last symbol of
// w is σ }, tracking the last n symbols read in a sliding window: one
// state per reachable window of up to n symbols.
func NthFromEnd(symbols []string, sigma string, n int) (*DFA, error) {
	if n <= 0 {
		return nil, fmt.Errorf("nth_from_end: n must be positive, got %d", n)
	}

	type window = string // last n symbols, joined, front = oldest
	start := ""
	seen := map[window]bool{start: true}
	queue := []window{start}
	trans := map[string]map[string]string{}
	var final []string

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		runes := []rune(w)
		row := map[string]string{}
		for _, sym := range symbols {
			var nextRunes []rune
			if len(runes) < n {
				nextRunes = append(append([]rune{}, runes...), []rune(sym)...)
			} else {
				nextRunes = append(append([]rune{}, runes[1:]...), []rune(sym)...)
			}
			nw := string(nextRunes)
			row[sym] = nw
			if !seen[nw] {
				seen[nw] = true
				queue = append(queue, nw)
			}
		}
		trans[w] = row
		if len(runes) == n && string(runes[0]) == sigma {
			final = append(final, w)
		}
	}

	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	sort.Strings(final)

	return NewDFA(states, symbols, trans, start, final)
}

// FromFiniteLanguage builds the minimal DFA for a finite language via the
// Mihov-Schulz incremental algorithm: words are inserted in sorted order
// into a trie, and after each insertion, suffixes whose signature (finality
// plus symbol→child mapping) duplicates an already-registered suffix are
// collapsed into that shared representative, maintaining minimality after
// every insertion rather than minifying once at the end.
func FromFiniteLanguage(symbols []string, words []string) (*DFA, error) {
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)

	type trieNode struct {
		children map[string]*trieNode
		final    bool
		id       int
	}
	root := &trieNode{children: map[string]*trieNode{}}
	nextID := 1

	register := map[string]*trieNode{}
	signature := func(n *trieNode) string {
		keys := make([]string, 0, len(n.children))
		for k := range n.children {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sig := fmt.Sprintf("%v|", n.final)
		for _, k := range keys {
			sig += fmt.Sprintf("%s:%d;", k, n.children[k].id)
		}
		return sig
	}

	var lastWord []rune
	var pathStack []*trieNode

	replaceOrRegister := func(n *trieNode) *trieNode {
		sig := signature(n)
		if existing, ok := register[sig]; ok {
			return existing
		}
		n.id = nextID
		nextID++
		register[sig] = n
		return n
	}

	commonPrefixLen := func(a, b []rune) int {
		i := 0
		for i < len(a) && i < len(b) && a[i] == b[i] {
			i++
		}
		return i
	}

	insert := func(word string) {
		runes := []rune(word)
		prefixLen := commonPrefixLen(lastWord, runes)

		// minimize (freeze) the branch of the trie that diverges, from the
		// deepest node back up to the divergence point, before growing the
		// new branch.
		for i := len(pathStack) - 1; i > prefixLen; i-- {
			child := pathStack[i]
			frozen := replaceOrRegister(child)
			parent := pathStack[i-1]
			parent.children[string(lastWord[i-1])] = frozen
		}
		pathStack = pathStack[:prefixLen+1]

		cur := pathStack[prefixLen]
		for _, r := range runes[prefixLen:] {
			sym := string(r)
			child := &trieNode{children: map[string]*trieNode{}}
			cur.children[sym] = child
			cur = child
			pathStack = append(pathStack, child)
		}
		cur.final = true
		lastWord = runes
	}

	pathStack = []*trieNode{root}
	for _, w := range sorted {
		insert(w)
	}
	for i := len(pathStack) - 1; i > 0; i-- {
		child := pathStack[i]
		frozen := replaceOrRegister(child)
		parent := pathStack[i-1]
		parent.children[string(lastWord[i-1])] = frozen
	}
	root = replaceOrRegister(root)

	// flatten the (now minimal) DAG into DFA tables via BFS, naming states
	// by their dedup id.
	stateOf := map[*trieNode]string{}
	nameFor := func(n *trieNode) string {
		if s, ok := stateOf[n]; ok {
			return s
		}
		s := fmt.Sprintf("n%d", n.id)
		stateOf[n] = s
		return s
	}

	trans := map[string]map[string]string{}
	var final []string
	visited := map[*trieNode]bool{}
	queue := []*trieNode{root}
	visited[root] = true
	var states []string

	trapNeeded := false
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		name := nameFor(n)
		states = append(states, name)
		if n.final {
			final = append(final, name)
		}
		row := map[string]string{}
		for _, sym := range symbols {
			if child, ok := n.children[sym]; ok {
				row[sym] = nameFor(child)
				if !visited[child] {
					visited[child] = true
					queue = append(queue, child)
				}
			} else {
				trapNeeded = true
				row[sym] = TrapState
			}
		}
		trans[name] = row
	}
	if trapNeeded {
		trapRow := map[string]string{}
		for _, sym := range symbols {
			trapRow[sym] = TrapState
		}
		trans[TrapState] = trapRow
		states = append(states, TrapState)
	}

	return NewDFA(states, symbols, trans, nameFor(root), final)
}

func stateName(i int) string { return fmt.Sprintf("q%d", i) }

func linearChainStates(n int) (states []string, trans map[string]map[string]string, final []string) {
	states = make([]string, n+1)
	for i := 0; i <= n; i++ {
		states[i] = stateName(i)
	}
	return states, map[string]map[string]string{}, []string{stateName(n)}
}

func addTrap(trans map[string]map[string]string, symbols []string) {
	row := map[string]string{}
	for _, sym := range symbols {
		row[sym] = TrapState
	}
	trans[TrapState] = row
}
