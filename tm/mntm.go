package tm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finlex/gofa/internal/automerr"
	"github.com/finlex/gofa/internal/setutil"
)

// tapeMove is a single tape's write/move pair within an MNTM result.
type tapeMove struct {
	symbol    string
	direction Direction
}

// mntmResult is an MNTM transition's right-hand side: a new state plus
// one write/move pair per tape.
type mntmResult struct {
	state string
	moves []tapeMove
}

// MNTM is a multitape nondeterministic Turing machine: transitions are
// keyed by an n-tuple of symbols (one read per tape) and produce a new
// state plus n independent write/move pairs.
type MNTM struct {
	base
	tapeCount   int
	transitions map[string]map[string][]mntmResult // state -> joined-symbol-tuple -> results
}

// NewMNTM builds an MNTM. Each entry of transitions is keyed by the
// state, then by the tuple of symbols read from tape 0..n-1 (joined by
// readKey), and maps to the set of possible (new state, per-tape
// write/move) results.
func NewMNTM(
	states, inputSymbols, tapeSymbols []string,
	tapeCount int,
	transitions map[string]map[string][]mntmResult,
	initial, blank string,
	final []string,
) (*MNTM, error) {
	m := &MNTM{
		base: base{
			states:       setutil.NewStringSet(states...),
			inputSymbols: setutil.NewStringSet(inputSymbols...),
			tapeSymbols:  setutil.NewStringSet(tapeSymbols...),
			initial:      initial,
			blank:        blank,
			final:        setutil.NewStringSet(final...),
		},
		tapeCount:   tapeCount,
		transitions: transitions,
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// readKey joins a tuple of per-tape read symbols into the transition
// table's lookup key.
func readKey(symbols []string) string {
	return strings.Join(symbols, "\x00")
}

func (m *MNTM) hasTransitionsFor(state string) bool {
	bySymbols, ok := m.transitions[state]
	return ok && len(bySymbols) > 0
}

func (m *MNTM) validate() error {
	if err := m.validateCommon(); err != nil {
		return err
	}
	for state, bySymbols := range m.transitions {
		if !m.states.Has(state) {
			return automerr.InvalidState(state)
		}
		for _, results := range bySymbols {
			for _, r := range results {
				if !m.states.Has(r.state) {
					return automerr.InvalidState(r.state)
				}
				if len(r.moves) != m.tapeCount {
					return automerr.InvalidSymbol(r.state)
				}
				for _, mv := range r.moves {
					if !m.tapeSymbols.Has(mv.symbol) {
						return automerr.InvalidSymbol(mv.symbol)
					}
					if err := validateDirection(mv.direction); err != nil {
						return err
					}
				}
			}
		}
	}
	return m.validateNoFinalStateTransitions(m.hasTransitionsFor)
}

// MConfiguration is an instantaneous description of an MNTM run: the
// current state and the contents/head of each tape.
type MConfiguration struct {
	State string
	Tapes []Tape
}

func (c MConfiguration) accepted(final setutil.StringSet) bool {
	return final.Has(c.State)
}

func (c MConfiguration) readSymbols() []string {
	out := make([]string, len(c.Tapes))
	for i, t := range c.Tapes {
		out[i] = t.Read()
	}
	return out
}

// successors returns every configuration reachable from cfg in one
// step, per mntm.py's _get_next_configuration generalized over all
// matching transitions rather than just the first (the original
// executes possibleTransitions[0] immediately and queues the rest;
// this port treats all of them uniformly as a BFS expansion, matching
// NTM's single-tape semantics).
func (m *MNTM) successors(cfg MConfiguration) []MConfiguration {
	results := m.transitions[cfg.State][readKey(cfg.readSymbols())]
	out := make([]MConfiguration, 0, len(results))
	for _, r := range results {
		tapes := make([]Tape, len(cfg.Tapes))
		for i, t := range cfg.Tapes {
			tapes[i] = t.Write(r.moves[i].symbol).Move(r.moves[i].direction)
		}
		out = append(out, MConfiguration{State: r.state, Tapes: tapes})
	}
	return out
}

// MNTMWalk iterates the BFS frontier of an MNTM run.
type MNTMWalk struct {
	m        *MNTM
	frontier []MConfiguration
	done     bool
}

// initialTapes builds the starting tapes for a run on input: the
// input loaded onto tape 0, every other tape holding a single blank.
func (m *MNTM) initialTapes(input string) []Tape {
	symbols := make([]string, len(input))
	for i, r := range input {
		symbols[i] = string(r)
	}
	tapes := make([]Tape, m.tapeCount)
	tapes[0] = NewTape(symbols, m.blank)
	for i := 1; i < m.tapeCount; i++ {
		tapes[i] = NewTape(nil, m.blank)
	}
	return tapes
}

// Stepwise begins an MNTM run on input: the input is loaded onto tape
// 0, and every other tape starts out holding a single blank.
func (m *MNTM) Stepwise(input string) *MNTMWalk {
	return &MNTMWalk{m: m, frontier: []MConfiguration{{State: m.initial, Tapes: m.initialTapes(input)}}}
}

// Next advances the walk by one generation, with the same
// first-acceptance-halts/empty-frontier-rejects semantics as NTMWalk.
func (w *MNTMWalk) Next() (frontier []MConfiguration, accepted bool, err error) {
	if w.done {
		return nil, false, nil
	}

	for _, cfg := range w.frontier {
		if cfg.accepted(w.m.final) {
			w.done = true
			return w.frontier, true, nil
		}
	}

	var next []MConfiguration
	for _, cfg := range w.frontier {
		next = append(next, w.m.successors(cfg)...)
	}

	if len(next) == 0 {
		w.done = true
		return nil, false, automerr.Rejection("")
	}

	w.frontier = next
	return next, false, nil
}

// AcceptsInput runs m to completion on input and reports acceptance.
func (m *MNTM) AcceptsInput(input string) (bool, error) {
	w := m.Stepwise(input)
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

// --- MNTM -> single-tape NTM simulation ---

const (
	headMarker    = "^"
	tapeSeparator = "_"
	// resumeMarker is a breadcrumb dropped while shifting tape content
	// right to open up a cell for a virtual tape that just grew at an
	// interior boundary; it never appears in a caller's alphabet,
	// matching the same collision assumption headMarker/tapeSeparator
	// already make.
	resumeMarker = "\x00resume\x00"
)

// simTapeSymbols extends tapeSymbols with the head marker, the tape
// separator, and the resume marker, so the simulated single-tape
// NTM's tape alphabet is self-consistent. headMarker occupies its own
// cell, immediately left of whichever cell it marks, exactly as
// encodeTapes writes it.
func simTapeSymbols(tapeSymbols []string) []string {
	return append(append([]string(nil), tapeSymbols...), headMarker, tapeSeparator, resumeMarker)
}

// encodeTapes concatenates m.tapeCount virtual tapes onto one string,
// each rendered as (symbols before head) + "^" + (symbol under head) +
// (symbols after head), joined by "_", matching mntm.py's
// simulate_as_ntm encoding. The result is what SimulateAsNTM's
// returned NTM expects as its own Stepwise/AcceptsInput input.
func encodeTapes(tapes []Tape) string {
	var parts []string
	for _, t := range tapes {
		syms := t.Symbols()
		pos := t.Position()
		parts = append(parts, strings.Join(syms[:pos], "")+headMarker+strings.Join(syms[pos:], ""))
	}
	return strings.Join(parts, tapeSeparator)
}

// decodeVirtualHeads scans an encoded single-tape string for head
// markers and returns the symbol immediately to the right of each one
// (the symbol currently under that virtual tape's head), matching
// mntm.py's _read_extended_tape. Useful for inspecting an in-progress
// simulated NTM configuration the way an MConfiguration's tapes would
// read.
func decodeVirtualHeads(encoded string) []string {
	runes := []rune(encoded)
	var heads []string
	for i, r := range runes {
		if string(r) == headMarker && i+1 < len(runes) {
			heads = append(heads, string(runes[i+1]))
		}
	}
	return heads
}

// InitialEncoding returns the string SimulateAsNTM's returned NTM
// expects as its starting input for input, built the same way m's own
// Stepwise seeds its tapes.
func (m *MNTM) InitialEncoding(input string) string {
	return encodeTapes(m.initialTapes(input))
}

// ntmSim accumulates the transition table for SimulateAsNTM. Every
// read/write token it ever uses comes from symbols (m's own tape
// alphabet), so the resulting table is automatically consistent with
// the declared tapeSymbols.
type ntmSim struct {
	n        int
	symbols  []string // m.tapeSymbols, sorted
	alphabet []string // symbols plus headMarker, tapeSeparator, resumeMarker
	blank    string
	trans    map[string]map[string][][3]string
	states   map[string]struct{}
	built    map[string]bool
}

func newNTMSim(n int, symbols []string, blank string) *ntmSim {
	return &ntmSim{
		n:        n,
		symbols:  symbols,
		alphabet: simTapeSymbols(symbols),
		blank:    blank,
		trans:    map[string]map[string][][3]string{},
		states:   map[string]struct{}{},
		built:    map[string]bool{},
	}
}

func (s *ntmSim) state(name string) string {
	s.states[name] = struct{}{}
	return name
}

func (s *ntmSim) add(from, read, to, write string, dir Direction) {
	s.state(from)
	s.state(to)
	if s.trans[from] == nil {
		s.trans[from] = map[string][][3]string{}
	}
	s.trans[from][read] = append(s.trans[from][read], [3]string{to, write, string(dir)})
}

// buildFindLeft generates the entry point for mntm state q: scan left
// until the real tape's native blank marks the start of the encoded
// region, then step back onto it and start collecting. A final q gets
// no outgoing transitions at all, since q being final means m itself
// never gives it any (validateNoFinalStateTransitions), and the
// simulated walk must halt there exactly as the MNTM's own walk does.
func (s *ntmSim) buildFindLeft(q string, isFinal bool) {
	state := s.state("findleft:" + q)
	if isFinal {
		return
	}
	for _, t := range s.alphabet {
		if t == s.blank {
			continue
		}
		s.add(state, t, state, t, Left)
	}
	s.add(state, s.blank, "collect:"+q+":", s.blank, Right)
}

// buildCollect generates the left-to-right sweep that gathers the n
// heads' symbols for mntm state q into the simulated state, as a trie
// over the prefixes of q's actual transition keys: scan right over
// everything but headMarker, and on headMarker step one more cell
// right to read the symbol it marks. Reaching the nth head dispatches
// straight into the rewrite phase for every nondeterministic result.
func (s *ntmSim) buildCollect(q string, bySymbols map[string][]mntmResult) {
	seen := map[string]bool{}
	for key, results := range bySymbols {
		heads := strings.Split(key, "\x00")
		for l := 0; l < s.n; l++ {
			prefix := strings.Join(heads[:l], "\x00")
			state := "collect:" + q + ":" + prefix
			if !seen[state] {
				seen[state] = true
				for _, t := range s.alphabet {
					if t == headMarker {
						continue
					}
					s.add(state, t, state, t, Right)
				}
				s.add(state, headMarker, "collectread:"+q+":"+prefix, headMarker, Right)
			}

			readState := "collectread:" + q + ":" + prefix
			x := heads[l]
			if l < s.n-1 {
				tag := readState + "\x01" + x
				if !seen[tag] {
					seen[tag] = true
					next := "collect:" + q + ":" + strings.Join(heads[:l+1], "\x00")
					s.add(readState, x, next, x, Right)
				}
				continue
			}

			for idx, r := range results {
				rid := fmt.Sprintf("%s|%s|%d", q, key, idx)
				s.applyMove(readState, x, rid, s.n-1, r)
			}
		}
	}
}

// destAfter is where the sweep goes once tape i's head has been
// rewritten for result r: on to the next tape leftward, or if tape 0
// was just finished, back out to relocate the tape for r's state.
func (s *ntmSim) destAfter(rid string, i int, r mntmResult) string {
	if i == 0 {
		return "findleft:" + r.state
	}
	j := i - 1
	s.buildSeek(rid, j, r)
	return fmt.Sprintf("seek:%s:%d", rid, j)
}

// buildSeek scans left past tape j+1's separator into tape j's
// content, looking for tape j's own headMarker cell (the only marker
// it can encounter, since every tape with an index greater than j has
// already been rewritten this step). Finding it, it steps onto the
// symbol the marker marks and applies tape j's move, whatever that
// symbol turns out to be, since r was already chosen from the full
// read-key before any rewriting began.
func (s *ntmSim) buildSeek(rid string, j int, r mntmResult) {
	tag := fmt.Sprintf("seek:%s:%d", rid, j)
	if s.built[tag] {
		return
	}
	s.built[tag] = true

	for _, t := range s.alphabet {
		if t == tapeSeparator {
			continue
		}
		s.add(tag, t, tag, t, Left)
	}
	inner := tag + ":in"
	s.add(tag, tapeSeparator, inner, tapeSeparator, Left)
	for _, t := range s.alphabet {
		if t == headMarker {
			continue
		}
		s.add(inner, t, inner, t, Left)
	}
	readState := fmt.Sprintf("seekread:%s:%d", rid, j)
	s.add(inner, headMarker, readState, headMarker, Right)
	for _, x := range s.symbols {
		s.applyMove(readState, x, rid, j, r)
	}
}

// applyMove is standing on tape i's current symbol (having just read
// it as x from the cell right after tape i's headMarker) and knows,
// from r, what tape i should be rewritten to. Stay rewrites the
// symbol in place, leaving the marker untouched. Right/Left relocate
// the marker by swapping it past its new neighbor, or, if that
// neighbor turns out to be the tape's own separator, by growing the
// tape one cell first.
func (s *ntmSim) applyMove(from, read, rid string, i int, r mntmResult) {
	switch r.moves[i].direction {
	case Stay:
		s.add(from, read, s.destAfter(rid, i, r), r.moves[i].symbol, Stay)
	case Right:
		s.buildRightRewrite(from, read, rid, i, r)
	case Left:
		s.buildLeftRewrite(from, read, rid, i, r)
	}
}

// buildRightRewrite moves tape i's head one cell right: write the new
// symbol and step onto the old marker, write the marker there (it now
// sits between the new symbol and whatever follows), step back over
// it, and peek at the following cell. An ordinary symbol there becomes
// the new head in place; the tape's own separator means tape i just
// ran out of room and needs a cell grown for it.
func (s *ntmSim) buildRightRewrite(from, read, rid string, i int, r mntmResult) {
	markAt := fmt.Sprintf("rmark:%s:%d", rid, i)
	s.add(from, read, markAt, headMarker, Left)
	backAt := fmt.Sprintf("rback:%s:%d", rid, i)
	s.add(markAt, headMarker, backAt, r.moves[i].symbol, Right)
	peekAt := fmt.Sprintf("rpeek:%s:%d", rid, i)
	s.add(backAt, headMarker, peekAt, headMarker, Right)

	dest := s.destAfter(rid, i, r)
	for _, z := range s.alphabet {
		if z == tapeSeparator || z == resumeMarker || z == headMarker {
			continue
		}
		s.add(peekAt, z, dest, z, Stay)
	}
	carry := fmt.Sprintf("growcarry:%s:%d:%s", rid, i, tapeSeparator)
	s.add(peekAt, tapeSeparator, carry, resumeMarker, Right)
	s.buildGrowCarry(rid, i, r)
}

// buildLeftRewrite moves tape i's head one cell left: write the new
// symbol in place, step onto the old marker, then peek one cell
// further left. An ordinary symbol Y there gets swapped with the
// marker (Y becomes the new head, the marker ends up immediately
// before it); the previous tape's separator means tape i has nothing
// left to grow into and needs a fresh cell inserted for it, right
// where the new symbol was just written.
func (s *ntmSim) buildLeftRewrite(from, read, rid string, i int, r mntmResult) {
	markAt := fmt.Sprintf("lmark:%s:%d", rid, i)
	s.add(from, read, markAt, r.moves[i].symbol, Left)
	peekAt := fmt.Sprintf("lpeek:%s:%d", rid, i)
	s.add(markAt, headMarker, peekAt, headMarker, Left)

	dest := s.destAfter(rid, i, r)
	for _, y := range s.alphabet {
		if y == tapeSeparator || y == resumeMarker || y == headMarker {
			continue
		}
		writeAt := fmt.Sprintf("lwrite:%s:%d:%s", rid, i, y)
		s.add(peekAt, y, writeAt, headMarker, Right)
		s.add(writeAt, headMarker, dest, y, Stay)
	}

	backAt := fmt.Sprintf("lback:%s:%d", rid, i)
	s.add(peekAt, tapeSeparator, backAt, tapeSeparator, Right)
	resumeAt := fmt.Sprintf("lresume:%s:%d", rid, i)
	s.add(backAt, headMarker, resumeAt, headMarker, Right)
	carry := fmt.Sprintf("growcarry:%s:%d:%s", rid, i, r.moves[i].symbol)
	s.add(resumeAt, r.moves[i].symbol, carry, resumeMarker, Right)
	s.buildGrowCarry(rid, i, r)
}

// buildGrowCarry inserts one fresh blank cell at the position holding
// resumeMarker by shifting everything from there to the tape's used
// end one cell right, carrying one symbol (or another tape's marker)
// at a time, matching the standard single-tape-TM insert-by-shifting
// technique. The shift only ever needs to reach the real tape's own
// trailing blank; it never needs to stop at an interior boundary,
// since it is carrying everything, separators and markers included,
// uniformly along.
func (s *ntmSim) buildGrowCarry(rid string, i int, r mntmResult) {
	tag := fmt.Sprintf("growcarry:%s:%d", rid, i)
	if s.built[tag] {
		return
	}
	s.built[tag] = true

	dest := s.destAfter(rid, i, r)
	gb := fmt.Sprintf("growback:%s:%d", rid, i)
	for _, v := range s.alphabet {
		if v == resumeMarker {
			continue
		}
		from := fmt.Sprintf("growcarry:%s:%d:%s", rid, i, v)
		for _, y := range s.alphabet {
			if y == resumeMarker {
				continue
			}
			if y == s.blank {
				s.add(from, y, gb, v, Stay)
				continue
			}
			next := fmt.Sprintf("growcarry:%s:%d:%s", rid, i, y)
			s.add(from, y, next, v, Right)
		}
	}
	s.buildGrowBack(gb, dest)
}

// buildGrowBack scans back left for the resumeMarker breadcrumb and
// replaces it with a fresh blank cell: the newly inserted cell, which
// is exactly tape i's grown head.
func (s *ntmSim) buildGrowBack(state, dest string) {
	if s.built["growback:"+state] {
		return
	}
	s.built["growback:"+state] = true

	for _, t := range s.alphabet {
		if t == resumeMarker {
			continue
		}
		s.add(state, t, state, t, Left)
	}
	s.add(state, resumeMarker, dest, s.blank, Stay)
}

// SimulateAsNTM builds a single-tape NTM that accepts exactly the
// language m accepts. m's n tapes occupy disjoint regions of the one
// real tape, separated by tapeSeparator, each virtual head marked by
// a standalone headMarker cell immediately left of the symbol it
// reads, the same layout encodeTapes/decodeVirtualHeads use.
// Simulating one MNTM step takes several single-tape steps:
// buildFindLeft/buildCollect sweep right gathering the n heads'
// symbols into the state, and applyMove's rewrite chain
// (buildRightRewrite/buildLeftRewrite, growing a tape via
// buildGrowCarry/buildGrowBack whenever its head crosses into the
// tape separator) sweeps back left writing each tape's new symbol and
// relocating its marker, before resuming at the next MNTM state. This
// trades a quadratic step-count blowup for a single tape, matching
// spec.md's MNTM -> NTM simulation contract and
// original_source/automata/tm/mntm.py's simulate_as_ntm. Feed the
// result's Stepwise/AcceptsInput m.InitialEncoding(input), not input
// itself.
func (m *MNTM) SimulateAsNTM() (*NTM, error) {
	symbols := setutil.SortedElements(m.tapeSymbols)
	sim := newNTMSim(m.tapeCount, symbols, m.blank)

	for _, q := range setutil.SortedElements(m.states) {
		sim.buildFindLeft(q, m.final.Has(q))
	}
	for state, bySymbols := range m.transitions {
		sim.buildCollect(state, bySymbols)
	}

	states := make([]string, 0, len(sim.states))
	for st := range sim.states {
		states = append(states, st)
	}

	var final []string
	for _, q := range setutil.SortedElements(m.final) {
		final = append(final, "findleft:"+q)
	}

	return NewNTM(
		states,
		setutil.SortedElements(m.inputSymbols),
		sim.alphabet,
		sim.trans,
		"findleft:"+m.initial,
		m.blank,
		final,
	)
}
