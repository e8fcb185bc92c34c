package lexer

import (
	"fmt"
	"regexp"

	"github.com/finlex/gofa/internal/automerr"
)

// Factory builds a Token from the matched lexeme and its starting position.
type Factory func(lexeme string, pos int) Token

type pattern struct {
	src     string
	re      *regexp.Regexp
	factory Factory
}

// Registry holds an ordered list of (pattern, factory) pairs used to scan
// input left to right. Patterns are tried in registration order; at each
// input position, the pattern producing the longest match wins, ties broken
// by registration order (earlier registrations win).
type Registry struct {
	patterns   []pattern
	whitespace map[rune]bool
}

// NewRegistry creates an empty Registry. By default no characters are
// treated as whitespace; call SetWhitespace to configure the skip set.
func NewRegistry() *Registry {
	return &Registry{whitespace: map[rune]bool{}}
}

// SetWhitespace marks every rune in chars as whitespace: characters the
// scanner silently skips when no pattern matches at the current position.
func (r *Registry) SetWhitespace(chars string) {
	for _, c := range chars {
		r.whitespace[c] = true
	}
}

// DefaultWhitespace configures the common ASCII whitespace runes.
func (r *Registry) DefaultWhitespace() {
	r.SetWhitespace(" \t\r\n")
}

// Register adds a pattern to the registry. pat is a regular expression
// matched against the remaining input starting at the current scan position
// (it is implicitly anchored at the start of the match window). factory
// builds the Token for a successful match.
func (r *Registry) Register(pat string, factory Factory) error {
	compiled, err := regexp.Compile(`\A(?:` + pat + `)`)
	if err != nil {
		return fmt.Errorf("cannot compile pattern %q: %w", pat, err)
	}
	r.patterns = append(r.patterns, pattern{src: pat, re: compiled, factory: factory})
	return nil
}

// Lex scans input left to right, producing a Token stream. On no pattern
// match at a position, the scanner silently skips characters belonging to
// the configured whitespace set; if the offending rune is not whitespace,
// scanning fails with a Lex error carrying the offending position.
func (r *Registry) Lex(input string) ([]Token, error) {
	runes := []rune(input)
	var tokens []Token

	pos := 0
	for pos < len(runes) {
		lexeme, tok, matched := r.longestMatch(runes[pos:], pos)
		if matched {
			tokens = append(tokens, tok)
			pos += len([]rune(lexeme))
			continue
		}

		if r.whitespace[runes[pos]] {
			pos++
			continue
		}

		return nil, automerr.Lex(pos, runes[pos])
	}

	return tokens, nil
}

func (r *Registry) longestMatch(remaining []rune, pos int) (string, Token, bool) {
	s := string(remaining)

	bestLen := -1
	var bestLexeme string
	var bestFactory Factory

	for _, p := range r.patterns {
		loc := p.re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 {
			continue
		}
		matchLen := len([]rune(s[:loc[1]]))
		if matchLen == 0 {
			continue
		}
		if matchLen > bestLen {
			bestLen = matchLen
			bestLexeme = s[:loc[1]]
			bestFactory = p.factory
		}
	}

	if bestLen < 0 {
		return "", nil, false
	}

	return bestLexeme, bestFactory(bestLexeme, pos), true
}
