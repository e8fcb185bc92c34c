package fa

import "github.com/finlex/gofa/internal/automerr"

// lexTraverse runs the shared successor/predecessor search: an iterative
// preorder (forward) or postorder (reverse) walk of the DFA restricted to
// coaccessible states, exploring symbols in (possibly reversed) alphabet
// order via an explicit state/symbol stack, invoking onCandidate with each
// matching word in traversal order. onCandidate returning true stops the
// search early, which is all Successor/Predecessor need (the first hit).
//
// w == nil means "before the first word" (forward) or "after the last word"
// (reverse); otherwise w anchors the search at that word, walking as much
// of it as the DFA's defined transitions allow.
//
// Ported from automata.fa.dfa.DFA.successors: descending only into
// coaccessible states guarantees every completed descent reaches an
// accepting state along some continuation, so no separate termination
// bound is needed — the traversal may still revisit states (e.g. to
// prefer a smaller-but-longer word over a larger-but-shorter one), exactly
// as the reference implementation does.
func (d *DFA) lexTraverse(w *string, strict bool, reverse bool, onCandidate func(word string) bool) {
	coaccessible := d.coaccessibleStates()

	sorted := d.orderedSymbols()
	if len(sorted) == 0 {
		return
	}
	if reverse {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}

	symbolSucc := make(map[string]string, len(sorted))
	hasSucc := make(map[string]bool, len(sorted))
	for i := 0; i+1 < len(sorted); i++ {
		symbolSucc[sorted[i]] = sorted[i+1]
		hasSucc[sorted[i]] = true
	}

	stateStack := []string{d.initial}
	var charStack []string
	if w != nil {
		cur := d.initial
		for _, r := range *w {
			sym := string(r)
			to, ok := d.Next(cur, sym)
			if !ok {
				break
			}
			cur = to
			stateStack = append(stateStack, cur)
			charStack = append(charStack, sym)
		}
	}

	firstSymbol := sorted[0]
	candidate := firstSymbol
	hasCandidate := true
	if reverse && w != nil {
		hasCandidate = false
	}

	includeInput := !strict
	shouldYield := includeInput || w == nil

	for len(charStack) > 0 || hasCandidate {
		state := stateStack[len(stateStack)-1]

		if !reverse && shouldYield && hasCandidate && candidate == firstSymbol && d.IsAccepting(state) {
			if onCandidate(joinSymbols(charStack)) {
				return
			}
		}

		var candidateState string
		candidateOK := false
		if hasCandidate {
			candidateState, candidateOK = d.Next(state, candidate)
		}

		if candidateOK && coaccessible.Has(candidateState) {
			stateStack = append(stateStack, candidateState)
			charStack = append(charStack, candidate)
			candidate = firstSymbol
			hasCandidate = true
		} else {
			if reverse && shouldYield && !hasCandidate && d.IsAccepting(state) {
				if onCandidate(joinSymbols(charStack)) {
					return
				}
			}
			if !hasCandidate {
				stateStack = stateStack[:len(stateStack)-1]
				candidate = charStack[len(charStack)-1]
				charStack = charStack[:len(charStack)-1]
			}
			if hasSucc[candidate] {
				candidate = symbolSucc[candidate]
				hasCandidate = true
			} else {
				hasCandidate = false
			}
		}
		shouldYield = true
	}

	if reverse && shouldYield && !hasCandidate && d.IsAccepting(stateStack[len(stateStack)-1]) {
		onCandidate(joinSymbols(charStack))
	}
}

func joinSymbols(syms []string) string {
	var out []byte
	for _, s := range syms {
		out = append(out, s...)
	}
	return string(out)
}

// Successor returns the lexicographically next accepted word strictly
// greater than w under the alphabet's canonical order, or ("", false) if no
// such word exists. w == nil means "before the first word" (so the result
// is the least accepted word overall). If strict is false and w itself
// (non-nil) is accepted, Successor returns it unchanged. Always defined:
// unlike Predecessor, it does not require a finite language.
func (d *DFA) Successor(w *string, strict bool) (string, bool) {
	var result string
	found := false
	d.lexTraverse(w, strict, false, func(word string) bool {
		result = word
		found = true
		return true
	})
	return result, found
}

// Predecessor returns the lexicographically previous accepted word strictly
// less than w, or ("", false) if none exists. w == nil means "after the
// last word" (so the result is the greatest accepted word overall). Only
// defined for finite languages, since an infinite language has no
// well-ordered greatest word to anchor a backward search from.
func (d *DFA) Predecessor(w *string, strict bool) (string, bool, error) {
	if !d.IsFinite() {
		return "", false, automerr.InfiniteLanguage("predecessor")
	}
	var result string
	found := false
	d.lexTraverse(w, strict, true, func(word string) bool {
		result = word
		found = true
		return true
	})
	return result, found, nil
}
