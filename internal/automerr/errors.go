// Package automerr defines the error taxonomy shared by fa, pda, and tm:
// one Go type per error kind in spec.md §7, each constructed via a function
// rather than an exported struct literal, following the shape of the
// teacher's internal/tqerrors (technical-message constructors wrapping an
// optional cause with %w).
package automerr

import "fmt"

// InvalidStateError reports a state reference that is not a member of the
// automaton's state set.
type InvalidStateError struct {
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("state %q is not a member of the automaton's states", e.State)
}

// InvalidState returns a new InvalidStateError for the given state name.
func InvalidState(state string) error {
	return &InvalidStateError{State: state}
}

// MissingStateError reports a required transition entry that is absent for
// a non-partial DFA or DTM.
type MissingStateError struct {
	State string
}

func (e *MissingStateError) Error() string {
	return fmt.Sprintf("state %q has no transitions entry", e.State)
}

// MissingState returns a new MissingStateError for the given state.
func MissingState(state string) error {
	return &MissingStateError{State: state}
}

// InvalidSymbolError reports a symbol used in a transition that is not in
// the relevant symbol set.
type InvalidSymbolError struct {
	Symbol string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("symbol %q is not in the automaton's input symbols", e.Symbol)
}

// InvalidSymbol returns a new InvalidSymbolError for the given symbol.
func InvalidSymbol(symbol string) error {
	return &InvalidSymbolError{Symbol: symbol}
}

// MissingSymbolError reports a non-partial DFA lacking a transition for some
// (state, symbol) pair.
type MissingSymbolError struct {
	State  string
	Symbol string
}

func (e *MissingSymbolError) Error() string {
	return fmt.Sprintf("state %q has no transition on symbol %q", e.State, e.Symbol)
}

// MissingSymbol returns a new MissingSymbolError for the given pair.
func MissingSymbol(state, symbol string) error {
	return &MissingSymbolError{State: state, Symbol: symbol}
}

// InvalidDirectionError reports a TM transition specifying a head movement
// outside {L, N, R}.
type InvalidDirectionError struct {
	Direction string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid tape direction %q, want one of L, N, R", e.Direction)
}

// InvalidDirection returns a new InvalidDirectionError.
func InvalidDirection(direction string) error {
	return &InvalidDirectionError{Direction: direction}
}

// InvalidAcceptanceModeError reports a PDA specifying an acceptance mode
// outside the three defined values.
type InvalidAcceptanceModeError struct {
	Mode string
}

func (e *InvalidAcceptanceModeError) Error() string {
	return fmt.Sprintf("invalid PDA acceptance mode %q", e.Mode)
}

// InvalidAcceptanceMode returns a new InvalidAcceptanceModeError.
func InvalidAcceptanceMode(mode string) error {
	return &InvalidAcceptanceModeError{Mode: mode}
}

// InvalidRegexError reports ill-formed regex syntax.
type InvalidRegexError struct {
	Pattern string
	Reason  string
}

func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid regex %q: %s", e.Pattern, e.Reason)
}

// InvalidRegex returns a new InvalidRegexError.
func InvalidRegex(pattern, reason string) error {
	return &InvalidRegexError{Pattern: pattern, Reason: reason}
}

// NondeterminismError reports a DPDA's transitions exhibiting
// nondeterminism: either an epsilon and a symbol transition coexisting for
// the same (state, stack top), or more than one successor for the same
// (state, input symbol, stack top).
type NondeterminismError struct {
	State string
	Top   string
	Input string
}

func (e *NondeterminismError) Error() string {
	return fmt.Sprintf("nondeterministic transition at state %q, stack top %q, input %q", e.State, e.Top, e.Input)
}

// Nondeterminism returns a new NondeterminismError.
func Nondeterminism(state, top, input string) error {
	return &NondeterminismError{State: state, Top: top, Input: input}
}

// InitialStateError reports a TM whose initial state is also a final state.
type InitialStateError struct {
	State string
}

func (e *InitialStateError) Error() string {
	return fmt.Sprintf("initial state %q must not also be a final state", e.State)
}

// InitialState returns a new InitialStateError.
func InitialState(state string) error {
	return &InitialStateError{State: state}
}

// FinalStateError reports a TM final state that has outgoing transitions.
type FinalStateError struct {
	State string
}

func (e *FinalStateError) Error() string {
	return fmt.Sprintf("final state %q must not have outgoing transitions", e.State)
}

// FinalState returns a new FinalStateError.
func FinalState(state string) error {
	return &FinalStateError{State: state}
}

// SymbolMismatchError reports a binary DFA operation asked to combine two
// automata with differing alphabets.
type SymbolMismatchError struct {
	A, B []string
}

func (e *SymbolMismatchError) Error() string {
	return fmt.Sprintf("mismatched input alphabets: %v vs %v", e.A, e.B)
}

// SymbolMismatch returns a new SymbolMismatchError.
func SymbolMismatch(a, b []string) error {
	return &SymbolMismatchError{A: a, B: b}
}

// RejectionError reports stepwise or one-shot execution terminating in a
// non-accepting configuration.
type RejectionError struct {
	Input string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("input %q was rejected", e.Input)
}

// Rejection returns a new RejectionError.
func Rejection(input string) error {
	return &RejectionError{Input: input}
}

// EmptyLanguageError reports a quantity undefined on the empty language
// being requested (e.g. minimum word length).
type EmptyLanguageError struct {
	Operation string
}

func (e *EmptyLanguageError) Error() string {
	return fmt.Sprintf("%s is undefined on the empty language", e.Operation)
}

// EmptyLanguage returns a new EmptyLanguageError.
func EmptyLanguage(operation string) error {
	return &EmptyLanguageError{Operation: operation}
}

// InfiniteLanguageError reports a quantity undefined on infinite languages
// being requested (e.g. cardinality, predecessor).
type InfiniteLanguageError struct {
	Operation string
}

func (e *InfiniteLanguageError) Error() string {
	return fmt.Sprintf("%s is undefined on an infinite language", e.Operation)
}

// InfiniteLanguage returns a new InfiniteLanguageError.
func InfiniteLanguage(operation string) error {
	return &InfiniteLanguageError{Operation: operation}
}

// LexError reports the regex lexer encountering an unrecognized character,
// carrying the offending position.
type LexError struct {
	Pos  int
	Rune rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at position %d: unrecognized character %q", e.Pos, e.Rune)
}

// Lex returns a new LexError for the given position and rune.
func Lex(pos int, r rune) error {
	return &LexError{Pos: pos, Rune: r}
}

// Wrapf wraps cause with an additional formatted message, for call sites
// that want to attach extra context to one of the typed errors above
// without losing errors.As/errors.Is compatibility with the wrapped value.
func Wrapf(cause error, format string, a ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, a...), cause)
}
