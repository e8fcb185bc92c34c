// Package regex implements spec.md §4.4's regex dialect: a lexer/parser
// built on internal/lexer that compiles a regex string into an NFA
// fragment, plus the regex-level predicates (isequal/issubset/issuperset/
// validate) defined in terms of the compiled DFA.
//
// Grounded on original_source/automata/regex/parser.py: the token set
// (literal, union `|`, concat `.`, kleene `*`, option `?`, parens), the
// concat-token insertion rule's six adjacency pairs, and the evaluation
// hooks (literal -> from_string_literal, union/concat/star/option ->
// the matching NFA operation) are a direct line-for-line port, rehosted
// on internal/lexer's registrable Token/Registry machinery instead of
// the original's fixed lexer/postfix module pair.
package regex

import (
	"fmt"
	"sort"

	"github.com/finlex/gofa/fa"
	"github.com/finlex/gofa/internal/lexer"
)

// concatLexeme is the implicit concatenation operator's synthetic
// lexeme, matching original_source's ConcatToken('.') — the reason `.`
// is excluded from the literal character class.
const concatLexeme = "."

const metachars = "()|*?." // plus whitespace, handled separately by the registry

type literalToken struct {
	lexer.BaseToken
	symbols []string
}

func (t literalToken) Eval() (lexer.Value, error) {
	return fa.FromStringLiteral(t.symbols, t.Lexeme())
}

type unionToken struct{ lexer.BaseToken }

func (t unionToken) Precedence() int { return 1 }
func (t unionToken) EvalInfix(left, right lexer.Value) (lexer.Value, error) {
	return fa.Union(left.(*fa.NFA), right.(*fa.NFA))
}

type concatToken struct{ lexer.BaseToken }

func (t concatToken) Precedence() int { return 2 }
func (t concatToken) EvalInfix(left, right lexer.Value) (lexer.Value, error) {
	return fa.Concatenate(left.(*fa.NFA), right.(*fa.NFA))
}

type kleeneToken struct{ lexer.BaseToken }

func (t kleeneToken) Precedence() int { return 3 }
func (t kleeneToken) EvalPostfix(operand lexer.Value) (lexer.Value, error) {
	return fa.KleeneStar(operand.(*fa.NFA))
}

type optionToken struct{ lexer.BaseToken }

func (t optionToken) Precedence() int { return 3 }
func (t optionToken) EvalPostfix(operand lexer.Value) (lexer.Value, error) {
	return fa.Option(operand.(*fa.NFA))
}

type parenToken struct{ lexer.BaseToken }

// newRegistry builds a lexer.Registry for symbols: metacharacter patterns
// are registered first so that, on the length ties the single-character
// dialect always produces, they win over the catch-all literal pattern
// registered last.
func newRegistry(symbols []string) (*lexer.Registry, error) {
	reg := lexer.NewRegistry()
	reg.DefaultWhitespace()

	registrations := []struct {
		pat     string
		factory lexer.Factory
	}{
		{`\(`, func(lexeme string, pos int) lexer.Token {
			return parenToken{lexer.BaseToken{K: lexer.LeftParen, Lexed: lexeme, Offset: pos}}
		}},
		{`\)`, func(lexeme string, pos int) lexer.Token {
			return parenToken{lexer.BaseToken{K: lexer.RightParen, Lexed: lexeme, Offset: pos}}
		}},
		{`\|`, func(lexeme string, pos int) lexer.Token {
			return unionToken{lexer.BaseToken{K: lexer.InfixOperator, Lexed: lexeme, Offset: pos}}
		}},
		{`\*`, func(lexeme string, pos int) lexer.Token {
			return kleeneToken{lexer.BaseToken{K: lexer.PostfixOperator, Lexed: lexeme, Offset: pos}}
		}},
		{`\?`, func(lexeme string, pos int) lexer.Token {
			return optionToken{lexer.BaseToken{K: lexer.PostfixOperator, Lexed: lexeme, Offset: pos}}
		}},
		// The catch-all literal pattern: any rune not a metacharacter or
		// whitespace. Registered last so ties with the metacharacter
		// patterns above resolve in their favor.
		{`[^` + regexpEscape(metachars) + `\s]`, func(lexeme string, pos int) lexer.Token {
			return literalToken{lexer.BaseToken{K: lexer.Literal, Lexed: lexeme, Offset: pos}, symbols}
		}},
	}

	for _, r := range registrations {
		if err := reg.Register(r.pat, r.factory); err != nil {
			return nil, fmt.Errorf("regex: building token registry: %w", err)
		}
	}

	return reg, nil
}

// regexpEscape backslash-escapes metacharacter class members for use
// inside a regexp character class.
func regexpEscape(s string) string {
	var out []byte
	for _, r := range s {
		switch r {
		case '\\', ']', '^', '-':
			out = append(out, '\\')
		}
		out = append(out, string(r)...)
	}
	return string(out)
}

// insertConcatTokens inserts an implicit concatToken wherever §4.4's
// adjacency rule applies: between (literal|right-paren|postfix-operator)
// followed directly by (literal|left-paren).
func insertConcatTokens(tokens []lexer.Token) []lexer.Token {
	isLeftContext := func(k lexer.Kind) bool {
		return k == lexer.Literal || k == lexer.RightParen || k == lexer.PostfixOperator
	}
	isRightContext := func(k lexer.Kind) bool {
		return k == lexer.Literal || k == lexer.LeftParen
	}

	var out []lexer.Token
	for i, tok := range tokens {
		out = append(out, tok)
		if i+1 >= len(tokens) {
			continue
		}
		if isLeftContext(tok.Kind()) && isRightContext(tokens[i+1].Kind()) {
			out = append(out, concatToken{lexer.BaseToken{K: lexer.InfixOperator, Lexed: concatLexeme, Offset: tokens[i+1].Pos()}})
		}
	}
	return out
}

// inferAlphabet collects the distinct literal characters of r, used when
// Parse is called without an explicit alphabet.
func inferAlphabet(r string) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range r {
		s := string(c)
		if isMetachar(c) || isSpace(c) || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func isMetachar(r rune) bool {
	for _, m := range metachars {
		if r == m {
			return true
		}
	}
	return false
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// Parse compiles r, a regex in the §4.4 dialect, into an NFA fragment. If
// symbols is nil, the alphabet is inferred from r's literal characters.
// An empty r denotes the language {ε}.
func Parse(r string, symbols []string) (*fa.NFA, error) {
	alphabet := symbols
	if alphabet == nil {
		alphabet = inferAlphabet(r)
	}

	if r == "" {
		return fa.FromStringLiteral(alphabet, "")
	}

	reg, err := newRegistry(alphabet)
	if err != nil {
		return nil, err
	}

	tokens, err := reg.Lex(r)
	if err != nil {
		return nil, err
	}
	if err := lexer.Validate(tokens); err != nil {
		return nil, err
	}

	tokens = insertConcatTokens(tokens)

	postfix, err := lexer.ToPostfix(tokens)
	if err != nil {
		return nil, err
	}

	val, err := lexer.Evaluate(postfix)
	if err != nil {
		return nil, err
	}

	n, ok := val.(*fa.NFA)
	if !ok {
		return nil, fmt.Errorf("regex: evaluation produced %T, want *fa.NFA", val)
	}
	return n, nil
}

// Validate lexes, validates and compiles r (via Parse) and returns any
// error; the compiled NFA is discarded.
func Validate(r string, symbols []string) error {
	_, err := Parse(r, symbols)
	return err
}

// IsEqual reports whether r1 and r2 denote the same language, by
// compiling both to DFAs and comparing.
func IsEqual(r1, r2 string, symbols []string) (bool, error) {
	d1, err := compileToDFA(r1, symbols)
	if err != nil {
		return false, err
	}
	d2, err := compileToDFA(r2, symbols)
	if err != nil {
		return false, err
	}
	return d1.Equal(d2)
}

// IsSubset reports whether L(r1) ⊆ L(r2).
func IsSubset(r1, r2 string, symbols []string) (bool, error) {
	d1, err := compileToDFA(r1, symbols)
	if err != nil {
		return false, err
	}
	d2, err := compileToDFA(r2, symbols)
	if err != nil {
		return false, err
	}
	return d1.IsSubsetOf(d2)
}

// IsSuperset reports whether L(r1) ⊇ L(r2).
func IsSuperset(r1, r2 string, symbols []string) (bool, error) {
	return IsSubset(r2, r1, symbols)
}

func compileToDFA(r string, symbols []string) (*fa.DFA, error) {
	n, err := Parse(r, symbols)
	if err != nil {
		return nil, err
	}
	return n.ToDFA(), nil
}
