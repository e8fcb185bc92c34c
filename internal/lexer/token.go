// Package lexer implements the foundations layer of spec.md §4.1: a token
// registry with longest-match scanning, token-list validation, a
// shunting-yard infix-to-postfix conversion, and postfix evaluation over an
// operand stack. It is deliberately generic over the operand type (the Value
// produced by literal/infix/postfix evaluation hooks) so that fa/regex can
// instantiate it with NFA fragments without this package knowing about NFAs.
//
// The scanning discipline (longest match, ties broken by registration order,
// silent skip of whitespace, positional lex error otherwise) mirrors
// internal/ictiobus/lex's per-state pattern table in the teacher; the
// shunting-yard/postfix evaluation pipeline is modeled on the
// preprocess/postfix/nfa pipeline in the mskv-regex-go reference, generalized
// from a fixed regex operator set to the registrable operator table spec.md
// §4.1 calls for.
package lexer

import "fmt"

// Kind categorizes a token for the purposes of token-list validation and
// shunting-yard conversion.
type Kind int

const (
	Literal Kind = iota
	InfixOperator
	PostfixOperator
	LeftParen
	RightParen
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case InfixOperator:
		return "infix operator"
	case PostfixOperator:
		return "postfix operator"
	case LeftParen:
		return "left paren"
	case RightParen:
		return "right paren"
	default:
		return "unknown"
	}
}

// Value is the type of operand produced by evaluation hooks. fa/regex
// instantiates this with NFA fragments.
type Value = interface{}

// Token is a lexeme read from input along with its category and position.
type Token interface {
	Kind() Kind
	Lexeme() string
	Pos() int
}

// LiteralToken is a Token that produces an operand with no inputs.
type LiteralToken interface {
	Token
	Eval() (Value, error)
}

// InfixToken is a Token that combines two operands into one, with an
// integer precedence (higher binds tighter).
type InfixToken interface {
	Token
	Precedence() int
	EvalInfix(left, right Value) (Value, error)
}

// PostfixToken is a Token that transforms one operand into one, with an
// integer precedence.
type PostfixToken interface {
	Token
	Precedence() int
	EvalPostfix(operand Value) (Value, error)
}

// ParenToken is a Token that is either a LeftParen or a RightParen.
type ParenToken interface {
	Token
}

// BaseToken is an embeddable Token implementation; concrete token types in
// fa/regex embed this and add Eval/EvalInfix/EvalPostfix/Precedence.
type BaseToken struct {
	K      Kind
	Lexed  string
	Offset int
}

func (t BaseToken) Kind() Kind      { return t.K }
func (t BaseToken) Lexeme() string  { return t.Lexed }
func (t BaseToken) Pos() int        { return t.Offset }
func (t BaseToken) String() string  { return fmt.Sprintf("%s(%q)@%d", t.K, t.Lexed, t.Offset) }
