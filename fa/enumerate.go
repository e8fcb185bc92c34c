package fa

import (
	"math/big"

	"github.com/finlex/gofa/internal/automerr"
)

// CountWordsOfLength returns the number of accepted words of exactly length
// k, via the dynamic program c[i][q] = sum over symbols of c[i-1][delta(q,
// symbol)], with c[0][q] = 1 iff q is final. Results are memoized per-DFA
// across calls, since callers frequently probe successive lengths (e.g. when
// computing Cardinality).
func (d *DFA) CountWordsOfLength(k int) *big.Int {
	counts := d.wordCountTable(k)
	order := d.stateOrder()
	idx := -1
	for i, s := range order {
		if s == d.initial {
			idx = i
			break
		}
	}
	return new(big.Int).Set(counts[k][idx])
}

// stateOrder returns (and caches) a stable index assignment for this DFA's
// states, used to key the word-count table by integer position rather than
// by repeated map lookups.
func (d *DFA) stateOrder() []string {
	if d.cache.stateOrder == nil {
		d.cache.stateOrder = d.orderedStates()
	}
	return d.cache.stateOrder
}

// wordCountTable returns counts[i][idx(q)] = number of words of length i
// accepted starting from state q, for i in [0, upTo], memoized on d so
// repeated queries (as Cardinality makes) reuse prior work.
func (d *DFA) wordCountTable(upTo int) map[int][]*big.Int {
	if d.cache.bigCounts == nil {
		d.cache.bigCounts = map[int][]*big.Int{}
	}
	order := d.stateOrder()
	symbols := d.orderedSymbols()

	if _, ok := d.cache.bigCounts[0]; !ok {
		row := make([]*big.Int, len(order))
		for i, s := range order {
			if d.IsAccepting(s) {
				row[i] = big.NewInt(1)
			} else {
				row[i] = big.NewInt(0)
			}
		}
		d.cache.bigCounts[0] = row
	}

	stateIdx := make(map[string]int, len(order))
	for i, s := range order {
		stateIdx[s] = i
	}

	for i := 1; i <= upTo; i++ {
		if _, ok := d.cache.bigCounts[i]; ok {
			continue
		}
		prev := d.cache.bigCounts[i-1]
		row := make([]*big.Int, len(order))
		for qi, q := range order {
			sum := big.NewInt(0)
			for _, sym := range symbols {
				to, ok := d.Next(q, sym)
				if !ok {
					continue
				}
				sum.Add(sum, prev[stateIdx[to]])
			}
			row[qi] = sum
		}
		d.cache.bigCounts[i] = row
	}

	return d.cache.bigCounts
}

// WordsOfLength returns every accepted word of exactly length k, in the
// alphabet's sorted order, via the same DP as CountWordsOfLength but
// constructing words instead of counting them.
func (d *DFA) WordsOfLength(k int) []string {
	counts := d.wordCountTable(k)
	order := d.stateOrder()
	stateIdx := make(map[string]int, len(order))
	for i, s := range order {
		stateIdx[s] = i
	}
	symbols := d.orderedSymbols()

	var words []string
	var build func(state string, remaining int, prefix []byte)
	build = func(state string, remaining int, prefix []byte) {
		if remaining == 0 {
			if d.IsAccepting(state) {
				words = append(words, string(prefix))
			}
			return
		}
		for _, sym := range symbols {
			to, ok := d.Next(state, sym)
			if !ok || counts[remaining-1][stateIdx[to]].Sign() == 0 {
				continue
			}
			build(to, remaining-1, append(prefix, sym...))
		}
	}
	build(d.initial, k, nil)
	return words
}

// Cardinality returns the total number of accepted words, summing
// CountWordsOfLength over [min, max]. Returns an error for infinite
// languages, per spec.md's dedicated InfiniteLanguage exception.
func (d *DFA) Cardinality() (*big.Int, error) {
	if !d.IsFinite() {
		return nil, automerr.InfiniteLanguage("cardinality")
	}
	min, ok := d.MinWordLength()
	if !ok {
		return big.NewInt(0), nil
	}
	max, _ := d.MaxWordLength()

	total := big.NewInt(0)
	for k := min; k <= max; k++ {
		total.Add(total, d.CountWordsOfLength(k))
	}
	return total, nil
}

// RandomWord walks the DFA from the initial state for k steps, at each step
// choosing a symbol with probability proportional to the number of words of
// the remaining length accepted from the resulting state. rng is called with
// an exclusive upper bound and must return a value in [0, n).
func (d *DFA) RandomWord(k int, rng func(n int64) int64) (string, error) {
	counts := d.wordCountTable(k)
	order := d.stateOrder()
	stateIdx := make(map[string]int, len(order))
	for i, s := range order {
		stateIdx[s] = i
	}
	symbols := d.orderedSymbols()

	state := d.initial
	out := make([]byte, 0, k)
	for remaining := k; remaining > 0; remaining-- {
		total := counts[remaining][stateIdx[state]]
		if total.Sign() == 0 {
			return "", automerr.EmptyLanguage("random_word")
		}
		pick := big.NewInt(rng(total.Int64()))
		var chosenSym string
		var chosenTo string
		running := big.NewInt(0)
		for _, sym := range symbols {
			to, ok := d.Next(state, sym)
			if !ok {
				continue
			}
			weight := counts[remaining-1][stateIdx[to]]
			if weight.Sign() == 0 {
				continue
			}
			next := new(big.Int).Add(running, weight)
			if pick.Cmp(running) >= 0 && pick.Cmp(next) < 0 {
				chosenSym = sym
				chosenTo = to
				break
			}
			running = next
		}
		out = append(out, chosenSym...)
		state = chosenTo
	}
	return string(out), nil
}

// Iterate returns every accepted word up to and including maxLength, ordered
// first by increasing length then lexicographically within a length, per
// spec.md's iteration-order guarantee. The language must be surveyed up to
// maxLength explicitly since an infinite language has no natural stopping
// point.
func (d *DFA) Iterate(maxLength int) []string {
	var all []string
	for k := 0; k <= maxLength; k++ {
		all = append(all, d.WordsOfLength(k)...)
	}
	return all
}
